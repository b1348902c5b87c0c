package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/celebigilfatih/omt/internal/domain/entity"
	"github.com/celebigilfatih/omt/internal/usecase"
)

type ApplicationHandler struct {
	service *usecase.ApplicationService
	logger  *zap.Logger
}

func NewApplicationHandler(service *usecase.ApplicationService, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		service: service,
		logger:  logger,
	}
}

type decideRequest struct {
	Action string `json:"action"`
}

// Submit handles POST /applications
func (h *ApplicationHandler) Submit(c echo.Context) error {
	var in usecase.SubmitApplicationInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}

	application, err := h.service.Submit(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, application)
}

// List handles GET /applications?status=&q=
func (h *ApplicationHandler) List(c echo.Context) error {
	filter := entity.ApplicationFilter{
		Status: entity.ApplicationStatus(c.QueryParam("status")),
		Query:  c.QueryParam("q"),
	}

	applications, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, applications)
}

// Get handles GET /applications/:id
func (h *ApplicationHandler) Get(c echo.Context) error {
	application, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, application)
}

// Decide handles PATCH /applications/:id with {"action": "approve"|"reject"}.
func (h *ApplicationHandler) Decide(c echo.Context) error {
	var req decideRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	result, err := h.service.Decide(c.Request().Context(), c.Param("id"), req.Action)
	if err != nil {
		return err
	}

	if result.Team != nil {
		c.Response().Header().Set("X-Team-Id", result.Team.ID)
	}
	return c.JSON(http.StatusOK, result.Application)
}
