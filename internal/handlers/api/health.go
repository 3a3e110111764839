package api

import (
	"github.com/gofiber/fiber/v3"

	"laborstats/internal/db"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	db *db.DB
}

// NewHealthHandler creates a new API health handler.
func NewHealthHandler(database *db.DB) *HealthHandler {
	return &HealthHandler{db: database}
}

// Live reports process liveness.
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return jsonSuccess(c, fiber.Map{"alive": true})
}

// Ready reports readiness, including cache store connectivity. The service
// degrades gracefully without the cache, but readiness still surfaces the
// outage for operators.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	if h.db != nil {
		if err := h.db.Ping(c.Context()); err != nil {
			return jsonError(c, fiber.StatusServiceUnavailable, "cache store unreachable")
		}
	}
	return jsonSuccess(c, fiber.Map{"ready": true})
}
