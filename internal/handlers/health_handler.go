package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports liveness.
type HealthHandler struct {
	service string
}

// NewHealthHandler creates a new HealthHandler for the named service.
func NewHealthHandler(service string) *HealthHandler {
	return &HealthHandler{service: service}
}

// RegisterRoutes registers the health check route.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

// HandleHealth reports that the process is serving requests.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": h.service,
		"time":    time.Now().Format(time.RFC3339),
	})
}
