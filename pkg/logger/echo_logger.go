package logger

import (
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	apperrors "github.com/celebigilfatih/omt/pkg/errors"
)

// NewEchoRequestLogger returns a request logging middleware writing through zap.
func NewEchoRequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	config := middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health" || c.Request().URL.Path == "/metrics"
		},
		HandleError: true,

		LogLatency:       true,
		LogProtocol:      true,
		LogRemoteIP:      true,
		LogHost:          true,
		LogMethod:        true,
		LogURI:           true,
		LogURIPath:       true,
		LogRoutePath:     true,
		LogRequestID:     true,
		LogReferer:       true,
		LogUserAgent:     true,
		LogStatus:        true,
		LogError:         true,
		LogContentLength: true,
		LogResponseSize:  true,

		LogHeaders:     []string{"Content-Type", "Accept", "Authorization"},
		LogQueryParams: []string{"page", "limit", "sort", "order", "status", "stage"},

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("request.remote_ip", v.RemoteIP),
				zap.String("request.host", v.Host),
				zap.String("request.protocol", v.Protocol),
				zap.String("request.method", v.Method),
				zap.String("request.uri", v.URI),
				zap.String("request.path", v.URIPath),
				zap.String("request.route", v.RoutePath),
				zap.String("request.user_agent", v.UserAgent),
				zap.String("request.referer", v.Referer),
				zap.Int("response.status", v.Status),
				zap.Duration("response.latency", v.Latency),
				zap.String("request.request_id", v.RequestID),
				zap.Int64("response.response_size", v.ResponseSize),
				zap.String("request.content_length", v.ContentLength),
			}

			if len(v.Headers) > 0 {
				headers := make(map[string]string)
				for k, values := range v.Headers {
					if len(values) == 0 {
						continue
					}
					if k == "Authorization" {
						headers[k] = maskAuthorization(values[0])
					} else {
						headers[k] = values[0]
					}
				}
				fields = append(fields, zap.Any("request.headers", headers))
			}

			if len(v.QueryParams) > 0 {
				fields = append(fields, zap.Any("request.query_params", v.QueryParams))
			}

			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
				if v.Status >= 500 || apperrors.CodeOf(v.Error) == apperrors.ErrInternal {
					logger.Error("Request failed", fields...)
				} else {
					logger.Warn("Request rejected", fields...)
				}
				return nil
			}

			switch {
			case v.Status >= 500:
				logger.Error("Server error", fields...)
			case v.Status >= 400:
				logger.Warn("Client error", fields...)
			default:
				logger.Info("Request completed", fields...)
			}
			return nil
		},
	}

	return middleware.RequestLoggerWithConfig(config)
}

// maskAuthorization keeps only the edges of a bearer token.
func maskAuthorization(val string) string {
	if len(val) > 15 {
		return val[:10] + "..." + val[len(val)-5:]
	}
	return "[MASKED]"
}

// WithEchoLogger installs a zap-backed echo.Logger and an error handler that
// renders application errors as JSON.
func WithEchoLogger(e *echo.Echo, logger *zap.Logger) {
	e.Logger = NewEchoZapLogger(logger)

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		status, body := apperrors.ToResponse(err)

		if status >= http.StatusInternalServerError {
			apperrors.LogError(logger, err, "HTTP error",
				zap.Int("status", status),
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.String("ip", c.RealIP()),
			)
		}

		if c.Response().Committed {
			return
		}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.Error("Failed to send error response", zap.Error(err))
		}
	}
}

// EchoZapLogger implements echo.Logger on top of zap. Echo only logs through
// it for startup banners and internal failures.
type EchoZapLogger struct {
	base   *zap.Logger
	sugar  *zap.SugaredLogger
	level  log.Lvl
	prefix string
}

// NewEchoZapLogger wraps logger as an echo.Logger.
func NewEchoZapLogger(logger *zap.Logger) *EchoZapLogger {
	l := &EchoZapLogger{base: logger, level: log.INFO}
	l.rebuild()
	return l
}

func (l *EchoZapLogger) rebuild() {
	z := l.base
	if l.prefix != "" {
		z = z.Named(l.prefix)
	}
	if lvl, ok := gommonLevels[l.level]; ok && z.Core().Enabled(lvl-1) {
		z = z.WithOptions(zap.IncreaseLevel(lvl))
	}
	l.sugar = z.Sugar()
}

var gommonLevels = map[log.Lvl]zapcore.Level{
	log.DEBUG: zapcore.DebugLevel,
	log.INFO:  zapcore.InfoLevel,
	log.WARN:  zapcore.WarnLevel,
	log.ERROR: zapcore.ErrorLevel,
}

func (l *EchoZapLogger) Output() io.Writer { return zapWriter{sugar: l.sugar} }

// SetOutput is ignored; zap owns its sinks.
func (l *EchoZapLogger) SetOutput(io.Writer) {}

func (l *EchoZapLogger) Level() log.Lvl { return l.level }

func (l *EchoZapLogger) SetLevel(v log.Lvl) {
	l.level = v
	l.rebuild()
}

func (l *EchoZapLogger) SetHeader(string) {}

func (l *EchoZapLogger) Prefix() string { return l.prefix }

func (l *EchoZapLogger) SetPrefix(p string) {
	l.prefix = p
	l.rebuild()
}

func (l *EchoZapLogger) Print(i ...interface{})                 { l.sugar.Info(i...) }
func (l *EchoZapLogger) Printf(format string, i ...interface{}) { l.sugar.Infof(format, i...) }
func (l *EchoZapLogger) Printj(j log.JSON)                      { l.sugar.Infow("echo", jsonFields(j)...) }
func (l *EchoZapLogger) Debug(i ...interface{})                 { l.sugar.Debug(i...) }
func (l *EchoZapLogger) Debugf(format string, i ...interface{}) { l.sugar.Debugf(format, i...) }
func (l *EchoZapLogger) Debugj(j log.JSON)                      { l.sugar.Debugw("echo", jsonFields(j)...) }
func (l *EchoZapLogger) Info(i ...interface{})                  { l.sugar.Info(i...) }
func (l *EchoZapLogger) Infof(format string, i ...interface{})  { l.sugar.Infof(format, i...) }
func (l *EchoZapLogger) Infoj(j log.JSON)                       { l.sugar.Infow("echo", jsonFields(j)...) }
func (l *EchoZapLogger) Warn(i ...interface{})                  { l.sugar.Warn(i...) }
func (l *EchoZapLogger) Warnf(format string, i ...interface{})  { l.sugar.Warnf(format, i...) }
func (l *EchoZapLogger) Warnj(j log.JSON)                       { l.sugar.Warnw("echo", jsonFields(j)...) }
func (l *EchoZapLogger) Error(i ...interface{})                 { l.sugar.Error(i...) }
func (l *EchoZapLogger) Errorf(format string, i ...interface{}) { l.sugar.Errorf(format, i...) }
func (l *EchoZapLogger) Errorj(j log.JSON)                      { l.sugar.Errorw("echo", jsonFields(j)...) }
func (l *EchoZapLogger) Fatal(i ...interface{})                 { l.sugar.Fatal(i...) }
func (l *EchoZapLogger) Fatalf(format string, i ...interface{}) { l.sugar.Fatalf(format, i...) }
func (l *EchoZapLogger) Fatalj(j log.JSON)                      { l.sugar.Fatalw("echo", jsonFields(j)...) }
func (l *EchoZapLogger) Panic(i ...interface{})                 { l.sugar.Panic(i...) }
func (l *EchoZapLogger) Panicf(format string, i ...interface{}) { l.sugar.Panicf(format, i...) }
func (l *EchoZapLogger) Panicj(j log.JSON)                      { l.sugar.Panicw("echo", jsonFields(j)...) }

// jsonFields flattens a gommon JSON map into sorted key/value pairs.
func jsonFields(j log.JSON) []interface{} {
	keys := make([]string, 0, len(j))
	for k := range j {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kv := make([]interface{}, 0, 2*len(keys))
	for _, k := range keys {
		kv = append(kv, k, j[k])
	}
	return kv
}

type zapWriter struct {
	sugar *zap.SugaredLogger
}

func (w zapWriter) Write(p []byte) (int, error) {
	w.sugar.Info(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
