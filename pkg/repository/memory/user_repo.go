// Package memory provides an in-process user store used as a test fake.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/artem13815/useraccount/pkg/user"
)

// UserRepository implements user.Repository over maps guarded by a mutex.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]user.User
	byEmail map[string]uuid.UUID
	pingErr error
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[uuid.UUID]user.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *UserRepository) Create(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return user.ErrUserAlreadyExists
	}
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return r.byID[id], nil
}

// Update replaces the mutable fields of an existing user. Email and creation
// time are kept from the stored record.
func (r *UserRepository) Update(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[u.ID]
	if !ok {
		return user.ErrNotFound
	}
	stored.FirstName = u.FirstName
	stored.LastName = u.LastName
	stored.PasswordHash = u.PasswordHash
	stored.AccountUpdated = u.AccountUpdated
	r.byID[u.ID] = stored
	return nil
}

// SetPingError makes Check fail with err; nil restores a healthy store.
func (r *UserRepository) SetPingError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pingErr = err
}

func (r *UserRepository) Name() string { return "memory" }

// Check implements health.Checker.
func (r *UserRepository) Check(context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pingErr
}
