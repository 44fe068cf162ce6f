package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/artem13815/useraccount/api/http/presenter"
	"github.com/artem13815/useraccount/pkg/health"
)

// HealthHandler serves the liveness probe.
type HealthHandler struct {
	svc health.ReadinessUseCase
	log *zap.Logger
}

func NewHealthHandler(svc health.ReadinessUseCase, log *zap.Logger) *HealthHandler {
	return &HealthHandler{svc: svc, log: log}
}

// Health probes the user store on every call.
// @Summary Health check
// @Tags    health
// @Success 200
// @Failure 400
// @Failure 405
// @Failure 503
// @Router  /healthz [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	if hasQueryOrBody(c) {
		return presenter.Empty(c, http.StatusBadRequest)
	}
	if err := h.svc.Ready(c.UserContext()); err != nil {
		h.log.Warn("health check failed", zap.Error(err))
		return presenter.Empty(c, http.StatusServiceUnavailable)
	}
	return presenter.Empty(c, http.StatusOK)
}
