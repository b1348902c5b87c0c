package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/celebigilfatih/omt/internal/usecase"
)

type HealthHandler struct {
	service *usecase.HealthService
}

func NewHealthHandler(service *usecase.HealthService) *HealthHandler {
	return &HealthHandler{service: service}
}

// Check handles GET /health: 200 when the database and upload storage
// respond, 503 otherwise.
func (h *HealthHandler) Check(c echo.Context) error {
	report := h.service.Check(c.Request().Context())
	if !report.Healthy() {
		return c.JSON(http.StatusServiceUnavailable, report)
	}
	return c.JSON(http.StatusOK, report)
}
