package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/location-quest/internal/delivery/http/middleware"
	"github.com/location-quest/internal/usecase"
)

type HealthHandler struct {
	healthUC *usecase.HealthUseCase
}

func NewHealthHandler(healthUC *usecase.HealthUseCase) *HealthHandler {
	return &HealthHandler{healthUC: healthUC}
}

// Health godoc
// @Summary Service health
// @Description Reports uptime and database/redis connectivity
// @Tags System
// @Produce json
// @Param traceId query string false "Trace ID echoed in the response"
// @Success 200 {object} dto.HealthResponse
// @Router /api/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	traceID := c.Query("traceId")
	if traceID == "" {
		traceID = middleware.TraceID(c)
	}
	return c.JSON(h.healthUC.Status(c.Context(), traceID))
}
