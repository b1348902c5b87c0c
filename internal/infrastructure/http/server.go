package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	handlers "github.com/celebigilfatih/omt/internal/adapter/handler/http"
	"github.com/celebigilfatih/omt/internal/config"
	"github.com/celebigilfatih/omt/internal/infrastructure/metrics"
	"github.com/celebigilfatih/omt/internal/middleware/auth"
	"github.com/celebigilfatih/omt/internal/usecase"
	apperrors "github.com/celebigilfatih/omt/pkg/errors"
	"github.com/celebigilfatih/omt/pkg/logger"
)

// Services are the usecases exposed over HTTP.
type Services struct {
	Applications *usecase.ApplicationService
	Teams        *usecase.TeamService
	Payments     *usecase.PaymentService
	Admins       *usecase.AdminService
	Settings     *usecase.SettingsService
	Uploads      *usecase.UploadService
	Health       *usecase.HealthService
}

// StaticDir maps a URL prefix onto a directory of uploaded files.
type StaticDir struct {
	Prefix string
	Root   string
}

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	echo     *echo.Echo
	services Services
	tokens   *auth.TokenIssuer
	metrics  *metrics.Registry
	static   *StaticDir
}

func NewServer(cfg *config.Config, log *zap.Logger, services Services, tokens *auth.TokenIssuer, registry *metrics.Registry, static *StaticDir) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.HTTP.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.HTTP.WriteTimeout

	logger.WithEchoLogger(e, log)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(logger.NewEchoRequestLogger(log))
	if registry != nil {
		e.Use(registry.EchoMiddleware())
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	if cfg.Server.HTTP.BodyLimit != "" {
		e.Use(middleware.BodyLimit(cfg.Server.HTTP.BodyLimit))
	}

	s := &Server{
		config:   cfg,
		logger:   log,
		echo:     e,
		services: services,
		tokens:   tokens,
		metrics:  registry,
		static:   static,
	}
	s.setupRoutes()
	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	applicationHandler := handlers.NewApplicationHandler(s.services.Applications, s.logger)
	teamHandler := handlers.NewTeamHandler(s.services.Teams, s.logger)
	paymentHandler := handlers.NewPaymentHandler(s.services.Payments, s.logger)
	adminHandler := handlers.NewAdminHandler(s.services.Admins, s.logger)
	settingsHandler := handlers.NewSettingsHandler(s.services.Settings, s.logger)
	uploadHandler := handlers.NewUploadHandler(s.services.Uploads, s.logger)
	healthHandler := handlers.NewHealthHandler(s.services.Health)

	s.echo.GET("/health", healthHandler.Check)
	if s.metrics != nil {
		s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	}
	if s.static != nil {
		s.echo.Static(s.static.Prefix, s.static.Root)
	}

	requireAdmin := auth.JWTMiddleware(auth.JWTConfig{
		Issuer:   s.tokens,
		Logger:   s.logger,
		Verifier: s.services.Admins,
	})

	// Public routes
	s.echo.POST("/applications", applicationHandler.Submit)
	s.echo.POST("/uploads", uploadHandler.UploadLogo)
	s.echo.GET("/teams", teamHandler.List)
	s.echo.GET("/teams/stats", teamHandler.Stats)
	s.echo.POST("/admin/login", adminHandler.Login, s.loginRateLimiter())

	// Admin routes
	applications := s.echo.Group("/applications", requireAdmin)
	applications.GET("", applicationHandler.List)
	applications.GET("/:id", applicationHandler.Get)
	applications.PATCH("/:id", applicationHandler.Decide)

	teams := s.echo.Group("/teams", requireAdmin)
	teams.GET("/:id", teamHandler.Get)
	teams.PUT("/:id", teamHandler.Update)
	teams.DELETE("/:id", teamHandler.Delete)

	payments := s.echo.Group("/payments", requireAdmin)
	payments.POST("", paymentHandler.Record)
	payments.GET("", paymentHandler.List)
	payments.GET("/summary", paymentHandler.Summary)
	payments.GET("/:id", paymentHandler.Get)
	payments.PUT("/:id", paymentHandler.Update)
	payments.DELETE("/:id", paymentHandler.Delete)

	admin := s.echo.Group("/admin", requireAdmin)
	admin.GET("/me", adminHandler.Me)
	admin.GET("/users", adminHandler.List)
	admin.POST("/users", adminHandler.Create)
	admin.GET("/users/:id", adminHandler.Get)
	admin.PATCH("/users/:id", adminHandler.Patch)
	admin.DELETE("/users/:id", adminHandler.Delete)
	admin.GET("/settings", settingsHandler.List)
	admin.GET("/settings/:key", settingsHandler.Get)
	admin.PUT("/settings/:key", settingsHandler.Set)
}

// loginRateLimiter throttles login attempts per client IP.
func (s *Server) loginRateLimiter() echo.MiddlewareFunc {
	limit := s.config.Auth.LoginRateLimit
	if limit.Rate <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(limit.Rate),
			Burst:     limit.Burst,
			ExpiresIn: limit.Expires,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			s.logger.Warn("Login rate limit exceeded", zap.String("ip", identifier))
			return apperrors.NewAppError(apperrors.ErrRateLimited, "too many login attempts, try again later", err)
		},
	})
}
