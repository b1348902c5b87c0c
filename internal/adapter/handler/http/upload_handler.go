package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainErrors "github.com/celebigilfatih/omt/internal/domain/errors"
	"github.com/celebigilfatih/omt/internal/usecase"
	apperrors "github.com/celebigilfatih/omt/pkg/errors"
)

// logoField is the multipart form field carrying the image.
const logoField = "logo"

type UploadHandler struct {
	service *usecase.UploadService
	logger  *zap.Logger
}

func NewUploadHandler(service *usecase.UploadService, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		service: service,
		logger:  logger,
	}
}

// UploadLogo handles POST /uploads
func (h *UploadHandler) UploadLogo(c echo.Context) error {
	header, err := c.FormFile(logoField)
	if err != nil {
		return domainErrors.NewValidationError(apperrors.FieldError{Field: logoField, Message: "no file uploaded"})
	}

	file, err := header.Open()
	if err != nil {
		return domainErrors.NewInternalError("failed to open upload", err)
	}
	defer file.Close()

	result, err := h.service.UploadLogo(c.Request().Context(), header.Filename, file)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
