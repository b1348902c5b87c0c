package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/celebigilfatih/omt/internal/domain/entity"
	"github.com/celebigilfatih/omt/internal/usecase"
)

type PaymentHandler struct {
	service *usecase.PaymentService
	logger  *zap.Logger
}

func NewPaymentHandler(service *usecase.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger,
	}
}

// Record handles POST /payments
func (h *PaymentHandler) Record(c echo.Context) error {
	var in usecase.RecordPaymentInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}

	payment, err := h.service.Record(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, payment)
}

// List handles GET /payments?team_id=&q=
func (h *PaymentHandler) List(c echo.Context) error {
	filter := entity.PaymentFilter{
		TeamID: c.QueryParam("team_id"),
		Query:  c.QueryParam("q"),
	}

	payments, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}

// Summary handles GET /payments/summary
func (h *PaymentHandler) Summary(c echo.Context) error {
	summary, err := h.service.SummarizeByTeam(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// Get handles GET /payments/:id
func (h *PaymentHandler) Get(c echo.Context) error {
	payment, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}

// Update handles PUT /payments/:id
func (h *PaymentHandler) Update(c echo.Context) error {
	var in usecase.UpdatePaymentInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}

	payment, err := h.service.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}

// Delete handles DELETE /payments/:id
func (h *PaymentHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Payment deleted"})
}
