package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storelab/storefront/internal/domain"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockRepository) Get(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]User), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreate_DefaultsToUserRole(t *testing.T) {
	// Arrange
	repo := new(MockRepository)
	ctx := context.Background()
	repo.On("Create", ctx, mock.AnythingOfType("*users.User")).Return(nil)

	uc := NewUseCase(repo)

	// Act
	user, err := uc.Create(ctx, CreateUserInput{Email: "jo@example.com", FullName: "Jo Doe"})

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, RoleUser, user.Role)
	assert.Equal(t, "jo@example.com", user.Email)
}

func TestCreate_DuplicateEmailConflicts(t *testing.T) {
	// Arrange
	repo := new(MockRepository)
	ctx := context.Background()
	repo.On("Create", ctx, mock.AnythingOfType("*users.User")).
		Return(&domain.ConflictError{Entity: "user", Field: "email", Value: "jo@example.com"})

	uc := NewUseCase(repo)

	// Act
	user, err := uc.Create(ctx, CreateUserInput{Email: "jo@example.com", FullName: "Jo Doe"})

	// Assert
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "email", conflict.Field)
	assert.Nil(t, user)
}

func TestUpdate_AppliesOnlyProvidedFields(t *testing.T) {
	// Arrange
	repo := new(MockRepository)
	ctx := context.Background()

	existing := NewUser("jo@example.com", "Jo Doe")
	repo.On("Get", ctx, existing.ID).Return(existing, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*users.User")).Return(nil)

	uc := NewUseCase(repo)
	newName := "Jo Q. Doe"

	// Act
	updated, err := uc.Update(ctx, existing.ID, UpdateUserInput{FullName: &newName})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Jo Q. Doe", updated.FullName)
	assert.Equal(t, "jo@example.com", updated.Email)
	assert.Equal(t, RoleUser, updated.Role)
}
