package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainErrors "github.com/celebigilfatih/omt/internal/domain/errors"
	"github.com/celebigilfatih/omt/internal/middleware/auth"
	"github.com/celebigilfatih/omt/internal/usecase"
	apperrors "github.com/celebigilfatih/omt/pkg/errors"
)

const actionChangePassword = "change_password"

type AdminHandler struct {
	service *usecase.AdminService
	logger  *zap.Logger
}

func NewAdminHandler(service *usecase.AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  logger,
	}
}

// patchAdminRequest is either {"action":"change_password","password":...}
// or a profile update {"email":...,"name":...}.
type patchAdminRequest struct {
	Action   string  `json:"action"`
	Password string  `json:"password"`
	Email    *string `json:"email"`
	Name     *string `json:"name"`
}

// Login handles POST /admin/login
func (h *AdminHandler) Login(c echo.Context) error {
	var in usecase.LoginInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}

	result, err := h.service.Login(c.Request().Context(), in)
	if err != nil {
		if domainErrors.IsAuth(err) {
			h.logger.Warn("Failed admin login", zap.String("remote_ip", c.RealIP()))
		}
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Me handles GET /admin/me
func (h *AdminHandler) Me(c echo.Context) error {
	principal, err := auth.GetPrincipalFromContext(c)
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrUnauthenticated, "authentication required", err)
	}
	return c.JSON(http.StatusOK, principal)
}

// List handles GET /admin/users
func (h *AdminHandler) List(c echo.Context) error {
	admins, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, admins)
}

// Create handles POST /admin/users
func (h *AdminHandler) Create(c echo.Context) error {
	var in usecase.CreateAdminInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}

	admin, err := h.service.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, admin)
}

// Get handles GET /admin/users/:id
func (h *AdminHandler) Get(c echo.Context) error {
	admin, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, admin)
}

// Patch handles PATCH /admin/users/:id
func (h *AdminHandler) Patch(c echo.Context) error {
	var req patchAdminRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	id := c.Param("id")

	switch req.Action {
	case actionChangePassword:
		admin, err := h.service.ChangePassword(ctx, id, usecase.ChangePasswordInput{Password: req.Password})
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, admin)
	case "":
		admin, err := h.service.UpdateProfile(ctx, id, usecase.UpdateProfileInput{Email: req.Email, Name: req.Name})
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, admin)
	default:
		return apperrors.NewAppError(apperrors.ErrInvalidAction, "invalid action", nil).
			WithDetails(apperrors.FieldError{Field: "action", Message: "must be change_password or omitted"})
	}
}

// Delete handles DELETE /admin/users/:id
func (h *AdminHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Admin deleted"})
}
