// Package errors defines the domain error vocabulary on top of pkg/errors codes.
package errors

import (
	"fmt"

	apperrors "github.com/celebigilfatih/omt/pkg/errors"
)

var (
	// ErrInvalidCredentials is returned for any login mismatch. Unknown users
	// and wrong passwords are indistinguishable on purpose.
	ErrInvalidCredentials = apperrors.NewAppError(apperrors.ErrUnauthenticated, "invalid credentials", nil)

	// ErrInvalidAction is returned when decide receives anything but approve or reject.
	ErrInvalidAction = apperrors.NewAppError(apperrors.ErrInvalidAction, "invalid action", nil).
				WithDetails(apperrors.FieldError{Field: "action", Message: "must be approve or reject"})

	ErrApplicationAlreadyDecided = apperrors.NewAppError(apperrors.ErrFailedPrecondition, "application already decided", nil)
	ErrLastAdmin                 = apperrors.NewAppError(apperrors.ErrFailedPrecondition, "cannot delete the last admin", nil)
	ErrTeamHasPayments           = apperrors.NewAppError(apperrors.ErrFailedPrecondition, "team has recorded payments; delete them first", nil)
)

// NewValidationError reports every rejected field at once.
func NewValidationError(fields ...apperrors.FieldError) *apperrors.AppError {
	return apperrors.NewAppError(apperrors.ErrInvalidArgument, "validation failed", nil).WithDetails(fields...)
}

// NewNotFoundError reports an unknown id for the given resource.
func NewNotFoundError(resource, id string) *apperrors.AppError {
	return apperrors.NewAppError(apperrors.ErrNotFound, fmt.Sprintf("%s not found", resource), fmt.Errorf("id %q", id))
}

func NewConflictError(message string) *apperrors.AppError {
	return apperrors.NewAppError(apperrors.ErrConflict, message, nil)
}

func NewPolicyError(message string) *apperrors.AppError {
	return apperrors.NewAppError(apperrors.ErrFailedPrecondition, message, nil)
}

// NewInternalError wraps a store or infrastructure failure. The message is
// logged but never returned to callers.
func NewInternalError(message string, err error) *apperrors.AppError {
	return apperrors.NewAppError(apperrors.ErrInternal, message, err)
}

func IsNotFound(err error) bool {
	return apperrors.HasCode(err, apperrors.ErrNotFound)
}

func IsValidation(err error) bool {
	return apperrors.HasCode(err, apperrors.ErrInvalidArgument)
}

func IsConflict(err error) bool {
	return apperrors.HasCode(err, apperrors.ErrConflict)
}

func IsPolicy(err error) bool {
	return apperrors.HasCode(err, apperrors.ErrFailedPrecondition)
}

func IsAuth(err error) bool {
	return apperrors.HasCode(err, apperrors.ErrUnauthenticated)
}
