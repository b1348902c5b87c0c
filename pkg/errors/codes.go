package errors

// Error codes carried by AppError. They are part of the public JSON contract:
// clients switch on the "code" field of error bodies.
const (
	ErrInvalidArgument    = "INVALID_ARGUMENT"
	ErrInvalidAction      = "INVALID_ACTION"
	ErrFailedPrecondition = "FAILED_PRECONDITION"
	ErrNotFound           = "NOT_FOUND"
	ErrConflict           = "CONFLICT"
	ErrUnauthenticated    = "UNAUTHENTICATED"
	ErrUnauthorized       = "UNAUTHORIZED"
	ErrRateLimited        = "RATE_LIMITED"
	ErrTimeout            = "TIMEOUT"
	ErrNotImplemented     = "NOT_IMPLEMENTED"
	ErrInternal           = "INTERNAL"
)
