package users

import (
	"context"

	"github.com/storelab/storefront/pkg/logging"
)

type CreateUserInput struct {
	Email    string
	FullName string
}

type UpdateUserInput struct {
	Email    *string
	FullName *string
	Role     *string
}

type UseCase struct {
	repository Repository
}

func NewUseCase(repository Repository) *UseCase {
	return &UseCase{repository: repository}
}

// Create registers a user. A duplicate email surfaces as a Conflict from
// the unique index; there is no read-then-insert race window.
func (uc *UseCase) Create(ctx context.Context, input CreateUserInput) (*User, error) {
	user := NewUser(input.Email, input.FullName)
	if err := uc.repository.Create(ctx, user); err != nil {
		return nil, err
	}

	logging.Log(logging.Fields{
		Component: "users",
		UserID:    user.ID,
		Status:    "created",
	})
	return user, nil
}

func (uc *UseCase) Get(ctx context.Context, id string) (*User, error) {
	return uc.repository.Get(ctx, id)
}

func (uc *UseCase) List(ctx context.Context) ([]User, error) {
	return uc.repository.List(ctx)
}

func (uc *UseCase) Update(ctx context.Context, id string, input UpdateUserInput) (*User, error) {
	user, err := uc.repository.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Role != nil {
		user.Role = *input.Role
	}

	if err := uc.repository.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.repository.Delete(ctx, id)
}
