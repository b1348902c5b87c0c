// Package http holds the Echo handlers. Handlers return errors and leave the
// status mapping to the server's HTTPErrorHandler.
package http

import (
	"strconv"

	"github.com/labstack/echo/v4"

	domainErrors "github.com/celebigilfatih/omt/internal/domain/errors"
	apperrors "github.com/celebigilfatih/omt/pkg/errors"
)

// MessageResponse is returned by endpoints without a resource body.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func bindJSON(c echo.Context, dst interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return domainErrors.NewValidationError(apperrors.FieldError{Field: "body", Message: "invalid request body"})
	}
	return nil
}

// queryInt parses an optional positive integer query parameter.
func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domainErrors.NewValidationError(apperrors.FieldError{Field: name, Message: "must be a positive integer"})
	}
	return n, nil
}
