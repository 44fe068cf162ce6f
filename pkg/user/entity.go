package user

import (
	"time"

	"github.com/google/uuid"
)

// User is a domain entity representing a registered account.
type User struct {
	ID             uuid.UUID
	Email          string
	PasswordHash   string
	FirstName      string
	LastName       string
	AccountCreated time.Time
	AccountUpdated time.Time
}

// NewUser carries the client-supplied fields of a registration request.
type NewUser struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Changes describes a self-update. A nil field is left unchanged.
type Changes struct {
	FirstName *string
	LastName  *string
	Password  *string
}

// Empty reports whether no field is set.
func (c Changes) Empty() bool {
	return c.FirstName == nil && c.LastName == nil && c.Password == nil
}
