// Package basic authenticates requests carrying a literal "email:password"
// Authorization header.
package basic

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/artem13815/useraccount/pkg/user"
)

const localsUserKey = "user"

// Authenticator resolves credentials to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (user.User, error)
}

// ParseCredentials splits an "email:password" header value on the first
// colon. Both parts must be non-empty.
func ParseCredentials(header string) (email, password string, ok bool) {
	email, password, found := strings.Cut(header, ":")
	if !found || email == "" || password == "" {
		return "", "", false
	}
	return email, password, true
}

// NewAuthMiddleware returns a Fiber middleware that authenticates the caller
// and stores the loaded user in c.Locals.
//
// An unknown email answers 404 while a wrong password answers 401, which
// reveals whether an account exists. Existing clients rely on that split.
func NewAuthMiddleware(auth Authenticator, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Status(http.StatusUnauthorized).Send(nil)
		}
		email, password, ok := ParseCredentials(header)
		if !ok {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid credentials format. Use email:password"})
		}

		u, err := auth.Authenticate(c.UserContext(), email, password)
		if err != nil {
			switch {
			case errors.Is(err, user.ErrNotFound):
				return c.Status(http.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
			case errors.Is(err, user.ErrInvalidCredentials):
				return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid credentials"})
			}
			log.Error("authenticate request", zap.String("path", c.Path()), zap.Error(err))
			return c.Status(http.StatusInternalServerError).Send(nil)
		}

		c.Locals(localsUserKey, u)
		return c.Next()
	}
}

// CurrentUser returns the user attached by the auth middleware.
func CurrentUser(c *fiber.Ctx) (user.User, bool) {
	u, ok := c.Locals(localsUserKey).(user.User)
	return u, ok
}
