package user

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MinPasswordLength = 8
	// MaxPasswordBytes is the bcrypt input limit.
	MaxPasswordBytes = 72
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError reports a client payload that violates a field rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	ErrFirstNameEmpty   = &ValidationError{Field: "firstName", Message: "Firstname cannot be empty"}
	ErrLastNameSpaces   = &ValidationError{Field: "lastName", Message: "Lastname cannot have space"}
	ErrLastNameEmpty    = &ValidationError{Field: "lastName", Message: "Lastname cannot be empty"}
	ErrPasswordEmpty    = &ValidationError{Field: "password", Message: "Password cannot be empty"}
	ErrPasswordSpaces   = &ValidationError{Field: "password", Message: "Password cannot have space"}
	ErrPasswordTooShort = &ValidationError{Field: "password", Message: "Password should be at least 8 characters"}
	ErrPasswordTooLong  = &ValidationError{Field: "password", Message: "Password should be at most 72 bytes"}
	ErrEmailInvalid     = &ValidationError{Field: "email", Message: "Invalid email format"}
)

func ValidateFirstName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrFirstNameEmpty
	}
	return nil
}

// ValidateLastName checks for embedded spaces before emptiness, so " " is
// reported as having a space.
func ValidateLastName(name string) error {
	if hasSpace(name) {
		return ErrLastNameSpaces
	}
	if name == "" {
		return ErrLastNameEmpty
	}
	return nil
}

func ValidatePassword(password string) error {
	switch {
	case password == "":
		return ErrPasswordEmpty
	case hasSpace(password):
		return ErrPasswordSpaces
	case utf8.RuneCountInString(password) < MinPasswordLength:
		return ErrPasswordTooShort
	case len(password) > MaxPasswordBytes:
		return ErrPasswordTooLong
	}
	return nil
}

func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}

// ValidateNewUser runs the field rules in the order clients observe:
// first name, last name, password, email.
func ValidateNewUser(u NewUser) error {
	if err := ValidateFirstName(u.FirstName); err != nil {
		return err
	}
	if err := ValidateLastName(u.LastName); err != nil {
		return err
	}
	if err := ValidatePassword(u.Password); err != nil {
		return err
	}
	return ValidateEmail(u.Email)
}

// ValidateChanges applies the creation rules to every field that is present.
func ValidateChanges(c Changes) error {
	if c.FirstName != nil {
		if err := ValidateFirstName(*c.FirstName); err != nil {
			return err
		}
	}
	if c.LastName != nil {
		if err := ValidateLastName(*c.LastName); err != nil {
			return err
		}
	}
	if c.Password != nil {
		if err := ValidatePassword(*c.Password); err != nil {
			return err
		}
	}
	return nil
}

func hasSpace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}
