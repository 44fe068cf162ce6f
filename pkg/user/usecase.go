package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TimestampPrecision is the resolution at which account timestamps are
// stored and rendered.
const TimestampPrecision = time.Millisecond

// UseCase describes the user lifecycle: registration, authentication and
// self-service updates.
type UseCase interface {
	Register(ctx context.Context, in NewUser) (User, error)
	Authenticate(ctx context.Context, email, password string) (User, error)
	Update(ctx context.Context, current User, changes Changes) (User, error)
}

type Option func(*service)

// WithClock overrides the time source used for account timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

type service struct {
	repo   Repository
	hasher Hasher
	now    func() time.Time
}

// NewService returns default implementation of UseCase.
func NewService(repo Repository, hasher Hasher, opts ...Option) UseCase {
	s := &service{repo: repo, hasher: hasher, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Register(ctx context.Context, in NewUser) (User, error) {
	if err := ValidateNewUser(in); err != nil {
		return User{}, err
	}

	// Fast path only; the unique index on email is the authoritative guard.
	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return User{}, ErrUserAlreadyExists
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, fmt.Errorf("lookup user: %w", err)
	}

	passwordHash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.timestamp()
	u := User{
		ID:             uuid.New(),
		Email:          in.Email,
		PasswordHash:   passwordHash,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		AccountCreated: now,
		AccountUpdated: now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			return User{}, ErrUserAlreadyExists
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Authenticate distinguishes an unknown email (ErrNotFound) from a wrong
// password (ErrInvalidCredentials). This discloses whether an account exists;
// clients depend on the 404/401 split so it is kept as is.
func (s *service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("lookup user: %w", err)
	}
	ok, err := s.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		return User{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *service) Update(ctx context.Context, current User, changes Changes) (User, error) {
	if err := ValidateChanges(changes); err != nil {
		return User{}, err
	}
	if changes.Empty() {
		return current, nil
	}

	updated := current
	if changes.FirstName != nil {
		updated.FirstName = *changes.FirstName
	}
	if changes.LastName != nil {
		updated.LastName = *changes.LastName
	}
	if changes.Password != nil {
		passwordHash, err := s.hasher.Hash(*changes.Password)
		if err != nil {
			return User{}, fmt.Errorf("hash password: %w", err)
		}
		updated.PasswordHash = passwordHash
	}

	now := s.timestamp()
	if !now.After(current.AccountUpdated) {
		now = current.AccountUpdated.Add(TimestampPrecision)
	}
	updated.AccountUpdated = now

	if err := s.repo.Update(ctx, updated); err != nil {
		return User{}, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

func (s *service) timestamp() time.Time {
	return s.now().UTC().Truncate(TimestampPrecision)
}
