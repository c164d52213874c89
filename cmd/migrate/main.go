// Command migrate applies the SQL files in migrations/ to the configured
// database and exits.
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"

	"github.com/storelab/storefront/internal/config"
	"github.com/storelab/storefront/internal/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to reach database: %v", err)
	}

	dir := "migrations"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := postgres.Migrate(db, os.DirFS("."), dir); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	fmt.Println("migrations applied")
}
