package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/celebigilfatih/omt/internal/domain/entity"
	apperrors "github.com/celebigilfatih/omt/pkg/errors"
)

type contextKey string

const principalContextKey contextKey = "authenticated_admin"

// AccountVerifier confirms that a token subject still maps to a live account.
type AccountVerifier interface {
	VerifyAccount(ctx context.Context, p *entity.Principal) error
}

// JWTConfig holds the configuration for JWT middleware
type JWTConfig struct {
	Issuer *TokenIssuer
	Logger *zap.Logger
	// Verifier is optional. When set, tokens of deleted admins are rejected.
	Verifier AccountVerifier
}

// JWTMiddleware rejects requests without a valid admin bearer token.
func JWTMiddleware(config JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				config.Logger.Warn("Missing authorization header",
					zap.String("path", path),
					zap.String("method", c.Request().Method))
				return unauthorized(c, "Authorization header required", "MISSING_AUTH_HEADER")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader || tokenString == "" {
				config.Logger.Warn("Invalid authorization header format",
					zap.String("path", path))
				return unauthorized(c, "Invalid authorization header format. Expected: Bearer <token>", "INVALID_AUTH_FORMAT")
			}

			principal, err := config.Issuer.Parse(tokenString)
			if err != nil {
				config.Logger.Warn("JWT validation failed",
					zap.Error(err),
					zap.String("path", path))
				return unauthorized(c, "Invalid or expired token", "INVALID_TOKEN")
			}

			if config.Verifier != nil {
				if err := config.Verifier.VerifyAccount(c.Request().Context(), principal); err != nil {
					if apperrors.CodeOf(err) == apperrors.ErrInternal {
						return err
					}
					config.Logger.Warn("Token subject rejected",
						zap.String("admin_id", principal.ID),
						zap.String("path", path))
					return unauthorized(c, "Account no longer exists", "ACCOUNT_REVOKED")
				}
			}

			ctx := WithPrincipal(c.Request().Context(), principal)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set("admin_id", principal.ID)

			config.Logger.Debug("Admin authenticated",
				zap.String("admin_id", principal.ID),
				zap.String("path", path))

			return next(c)
		}
	}
}

func unauthorized(c echo.Context, message, code string) error {
	return c.JSON(http.StatusUnauthorized, apperrors.Response{Error: message, Code: code})
}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p *entity.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// GetPrincipalFromContext extracts the authenticated admin from the request context
func GetPrincipalFromContext(c echo.Context) (*entity.Principal, error) {
	p, ok := c.Request().Context().Value(principalContextKey).(*entity.Principal)
	if !ok || p == nil {
		return nil, fmt.Errorf("no authenticated admin found in context")
	}
	return p, nil
}
