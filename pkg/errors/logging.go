package errors

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel is the level an error deserves: caller mistakes are warnings,
// anything the service could not handle is an error.
func LogLevel(err error) zapcore.Level {
	switch CodeOf(err) {
	case ErrInternal, ErrTimeout, ErrNotImplemented:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// LogError writes err with its code at the level LogLevel picks.
func LogError(logger *zap.Logger, err error, msg string, fields ...zap.Field) {
	if err == nil {
		return
	}

	fields = append(fields, zap.Error(err), zap.String("error_code", CodeOf(err)))
	if ce := logger.Check(LogLevel(err), msg); ce != nil {
		ce.Write(fields...)
	}
}
