package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type transportCodes struct {
	http int
	grpc codes.Code
}

var transports = map[string]transportCodes{
	ErrInternal:           {http.StatusInternalServerError, codes.Internal},
	ErrNotFound:           {http.StatusNotFound, codes.NotFound},
	ErrInvalidArgument:    {http.StatusBadRequest, codes.InvalidArgument},
	ErrInvalidAction:      {http.StatusBadRequest, codes.InvalidArgument},
	ErrUnauthenticated:    {http.StatusUnauthorized, codes.Unauthenticated},
	ErrUnauthorized:       {http.StatusForbidden, codes.PermissionDenied},
	ErrConflict:           {http.StatusConflict, codes.AlreadyExists},
	ErrFailedPrecondition: {http.StatusBadRequest, codes.FailedPrecondition},
	ErrRateLimited:        {http.StatusTooManyRequests, codes.ResourceExhausted},
	ErrTimeout:            {http.StatusGatewayTimeout, codes.DeadlineExceeded},
	ErrNotImplemented:     {http.StatusNotImplemented, codes.Unimplemented},
}

func lookup(code string) transportCodes {
	if t, ok := transports[code]; ok {
		return t
	}
	return transports[ErrInternal]
}

// ToHTTPStatus converts an error code to an HTTP status code.
func ToHTTPStatus(code string) int {
	return lookup(code).http
}

// ToGRPCCode converts an error code to a gRPC status code.
func ToGRPCCode(code string) codes.Code {
	return lookup(code).grpc
}

// ToGRPCError turns an application error into a gRPC status error. Errors
// that already carry a status pass through; internal messages are hidden.
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	code := CodeOf(err)
	if code == ErrInternal {
		return status.Error(codes.Internal, "internal server error")
	}
	var appErr *AppError
	As(err, &appErr)
	return status.Error(ToGRPCCode(code), appErr.Message())
}
