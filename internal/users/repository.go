package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/storelab/storefront/internal/domain"
	"github.com/storelab/storefront/internal/postgres"
)

// Repository defines the user persistence operations.
type Repository interface {
	Create(ctx context.Context, user *User) error
	Get(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
}

const userColumns = `id, email, full_name, role, created_at, updated_at`

// uniqueViolation is the Postgres error code for a duplicate key.
const uniqueViolation = "23505"

type PostgresRepository struct {
	db postgres.Querier
}

func NewRepository(db postgres.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, email, full_name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, user.ID, user.Email, user.FullName, user.Role, user.CreatedAt, user.UpdatedAt)
	if isUniqueViolation(err) {
		return &domain.ConflictError{Entity: "user", Field: "email", Value: user.Email}
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*User, error) {
	return r.getWhere(ctx, `WHERE id = $1`, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getWhere(ctx, `WHERE email = $1`, email)
}

func (r *PostgresRepository) getWhere(ctx context.Context, where string, arg string) (*User, error) {
	var user User
	err := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users `+where,
		arg).Scan(&user.ID, &user.Email, &user.FullName, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "user", ID: arg}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	found := []User{}
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.Email, &user.FullName, &user.Role,
			&user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		found = append(found, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	return found, nil
}

func (r *PostgresRepository) Update(ctx context.Context, user *User) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET email = $2, full_name = $3, role = $4, updated_at = NOW()
		WHERE id = $1
	`, user.ID, user.Email, user.FullName, user.Role)
	if isUniqueViolation(err) {
		return &domain.ConflictError{Entity: "user", Field: "email", Value: user.Email}
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "user", ID: user.ID}
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "user", ID: id}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
