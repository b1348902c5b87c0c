package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the JSON body written for failed requests.
type Response struct {
	Error   string       `json:"error"`
	Code    string       `json:"code"`
	Details []FieldError `json:"details,omitempty"`
}

// ToResponse converts any error into a status code and body. Internal errors
// never expose their message.
func ToResponse(err error) (int, Response) {
	var appErr *AppError
	if As(err, &appErr) {
		status := ToHTTPStatus(appErr.Code())
		if appErr.Code() == ErrInternal {
			return status, Response{Error: "internal server error", Code: ErrInternal}
		}
		return status, Response{
			Error:   appErr.Message(),
			Code:    appErr.Code(),
			Details: appErr.Details(),
		}
	}

	if echoErr, ok := err.(*echo.HTTPError); ok {
		msg, ok := echoErr.Message.(string)
		if !ok {
			msg = http.StatusText(echoErr.Code)
		}
		return echoErr.Code, Response{Error: msg, Code: httpStatusToCode(echoErr.Code)}
	}

	return http.StatusInternalServerError, Response{Error: "internal server error", Code: ErrInternal}
}

// FromHTTPError converts an Echo HTTP error into an application error.
func FromHTTPError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if As(err, &appErr) {
		return err
	}

	if echoErr, ok := err.(*echo.HTTPError); ok {
		code := httpStatusToCode(echoErr.Code)
		var msg string
		if m, ok := echoErr.Message.(string); ok {
			msg = m
		} else {
			msg = "HTTP error"
		}
		return NewAppError(code, msg, nil)
	}

	return NewAppError(ErrInternal, err.Error(), err)
}

func httpStatusToCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType:
		return ErrInvalidArgument
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusConflict:
		return ErrConflict
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusGatewayTimeout:
		return ErrTimeout
	case http.StatusNotImplemented:
		return ErrNotImplemented
	default:
		return ErrInternal
	}
}
