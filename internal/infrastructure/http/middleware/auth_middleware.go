package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pitch-assistant-team/pitch-assistant/pkg/jwt"
)

// Echo context keys set by the auth middleware.
const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
)

// EchoAuth returns an Echo middleware that validates the JWT access token
// and sets "user_id" (uuid.UUID) and "user_email" into Echo context
func EchoAuth(manager *jwt.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization token")
			}

			claims, err := manager.ValidateAccessToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(UserIDKey, claims.UserID)
			c.Set(UserEmailKey, claims.Email)

			return next(c)
		}
	}
}

// OptionalAuth validates the token if present but doesn't require it.
// Anonymous requests pass through with no user in context.
func OptionalAuth(manager *jwt.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token != "" {
				if claims, err := manager.ValidateAccessToken(token); err == nil {
					c.Set(UserIDKey, claims.UserID)
					c.Set(UserEmailKey, claims.Email)
				}
			}
			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	// Try Authorization header first
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	// Try cookie as fallback
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}
