package http

import (
	"errors"
	"net/http"
	"slices"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/artem13815/useraccount/api/http/handlers"
	"github.com/artem13815/useraccount/api/http/presenter"
)

// NewApp creates the Fiber app with the shared error handler and the
// middleware every response goes through.
func NewApp(log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(log),
	})
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(noCache)
	return app
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, users *handlers.UserHandler, health *handlers.HealthHandler, authMW fiber.Handler) {
	app.All("/healthz", allowMethods(fiber.MethodGet), health.Health)

	v1 := app.Group("/v1")
	v1.Post("/user", users.Create)

	v1.All("/user/self", allowMethods(fiber.MethodGet, fiber.MethodPut))
	v1.Get("/user/self", authMW, users.GetSelf)
	v1.Put("/user/self", authMW, users.UpdateSelf)
}

func noCache(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")
	c.Set(fiber.HeaderPragma, "no-cache")
	c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
	return c.Next()
}

// allowMethods answers 405 with no body for any method not listed.
func allowMethods(methods ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !slices.Contains(methods, c.Method()) {
			return presenter.Empty(c, http.StatusMethodNotAllowed)
		}
		return c.Next()
	}
}

func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code < http.StatusInternalServerError {
			if fe.Code == http.StatusMethodNotAllowed {
				return presenter.Empty(c, fe.Code)
			}
			return presenter.Error(c, fe.Code, fe.Message)
		}
		log.Error("unhandled request error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return presenter.Error(c, http.StatusInternalServerError, "internal server error")
	}
}
