package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
)

// Pinger reports backing store reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	store Pinger
}

// NewHealthHandler constructs the handler. store may be nil.
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// Live reports process liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(dto.Success(fiber.Map{"status": "ok"}))
}

// Ready reports readiness including store connectivity.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	status := "ok"
	if h.store != nil {
		if err := h.store.Ping(c.UserContext()); err != nil {
			status = "degraded"
		}
	}
	return c.JSON(dto.Success(fiber.Map{"status": status}))
}
