package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/useraccount/pkg/user"
)

func newUser(email string) user.User {
	now := time.Now().UTC()
	return user.User{
		ID:             uuid.New(),
		Email:          email,
		PasswordHash:   "hash",
		FirstName:      "John",
		LastName:       "Doe",
		AccountCreated: now,
		AccountUpdated: now,
	}
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()
	u := newUser("a@b.com")

	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, u, got)

	_, err = repo.GetByEmail(ctx, "A@B.com")
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestUserRepository_CreateDuplicateConcurrent(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	const n = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Create(ctx, newUser("race@b.com"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, user.ErrUserAlreadyExists):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, n-1, conflicts)
}

func TestUserRepository_Update(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()
	u := newUser("a@b.com")
	require.NoError(t, repo.Create(ctx, u))

	changed := u
	changed.FirstName = "Jane"
	changed.Email = "other@b.com"
	changed.AccountUpdated = u.AccountUpdated.Add(time.Second)
	require.NoError(t, repo.Update(ctx, changed))

	got, err := repo.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.FirstName)
	assert.Equal(t, "a@b.com", got.Email)
	assert.Equal(t, changed.AccountUpdated, got.AccountUpdated)
	assert.Equal(t, u.AccountCreated, got.AccountCreated)

	assert.ErrorIs(t, repo.Update(ctx, newUser("ghost@b.com")), user.ErrNotFound)
}

func TestUserRepository_Check(t *testing.T) {
	repo := NewUserRepository()
	require.NoError(t, repo.Check(context.Background()))

	repo.SetPingError(errors.New("down"))
	assert.EqualError(t, repo.Check(context.Background()), "down")
}
