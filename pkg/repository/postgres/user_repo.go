package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/artem13815/useraccount/pkg/user"
)

// uniqueViolation is the SQLSTATE raised when the email index rejects a row.
const uniqueViolation = "23505"

// DB is the subset of pgxpool.Pool used by repositories.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository implements user.Repository backed by PostgreSQL (pgx).
type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, first_name, last_name, account_created, account_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.AccountCreated, u.AccountUpdated)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return user.ErrUserAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, email, password_hash, first_name, last_name, account_created, account_updated
		FROM users WHERE email = $1
	`, email)
	var u user.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.AccountCreated, &u.AccountUpdated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, fmt.Errorf("select user: %w", err)
	}
	u.AccountCreated = u.AccountCreated.UTC()
	u.AccountUpdated = u.AccountUpdated.UTC()
	return u, nil
}

// Update persists the mutable fields. Email and creation time are never written.
func (r *UserRepository) Update(ctx context.Context, u user.User) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET first_name = $2, last_name = $3, password_hash = $4, account_updated = $5
		WHERE id = $1
	`, u.ID, u.FirstName, u.LastName, u.PasswordHash, u.AccountUpdated)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}
	return nil
}

var _ user.Repository = (*UserRepository)(nil)
