package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Act
	cfg, err := Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "storefront-api", cfg.ServiceName)
	assert.Equal(t, 10, cfg.DatabaseMaxConns)
	assert.Empty(t, cfg.OrderWebhookURL)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	// Arrange
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_NAME", "shop_test")
	t.Setenv("DATABASE_MAX_CONNS", "25")

	// Act
	cfg, err := Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "shop_test", cfg.DatabaseName)
	assert.Equal(t, 25, cfg.DatabaseMaxConns)
}

func TestLoad_BadMaxConns(t *testing.T) {
	// Arrange
	t.Setenv("DATABASE_MAX_CONNS", "not-a-number")

	// Act
	_, err := Load()

	// Assert
	require.Error(t, err)
}

func TestDSN(t *testing.T) {
	// Arrange
	cfg := &Config{
		DatabaseUser:     "root",
		DatabasePassword: "pass",
		DatabaseHost:     "db",
		DatabasePort:     "5432",
		DatabaseName:     "storefront_db",
	}

	// Act / Assert
	assert.Equal(t, "postgres://root:pass@db:5432/storefront_db?sslmode=disable", cfg.DSN())
}
