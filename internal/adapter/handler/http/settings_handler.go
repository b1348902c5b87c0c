package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/celebigilfatih/omt/internal/usecase"
)

type SettingsHandler struct {
	service *usecase.SettingsService
	logger  *zap.Logger
}

func NewSettingsHandler(service *usecase.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		service: service,
		logger:  logger,
	}
}

type setSettingRequest struct {
	Value string `json:"value"`
}

// List handles GET /admin/settings
func (h *SettingsHandler) List(c echo.Context) error {
	settings, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// Get handles GET /admin/settings/:key
func (h *SettingsHandler) Get(c echo.Context) error {
	setting, err := h.service.Get(c.Request().Context(), c.Param("key"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, setting)
}

// Set handles PUT /admin/settings/:key
func (h *SettingsHandler) Set(c echo.Context) error {
	var req setSettingRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	setting, err := h.service.Set(c.Request().Context(), usecase.SetSettingInput{
		Key:   c.Param("key"),
		Value: req.Value,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, setting)
}
