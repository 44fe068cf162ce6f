package user

import (
	"context"
	"errors"
)

// Common errors used by repository/use cases
var (
	ErrNotFound           = errors.New("not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Repository abstracts persistence concerns from the domain layer.
// Create must fail with ErrUserAlreadyExists when the email is taken, even if
// a concurrent request passed the existence check first.
type Repository interface {
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	Update(ctx context.Context, user User) error
}

// Hasher produces and verifies one-way password hashes.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}
