package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/userhub/user-api/internal/api/metrics"
	"github.com/userhub/user-api/internal/core/token"
)

// Context keys set by Auth for downstream handlers.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// MsgUnauthorized is returned on every authentication failure; it never
// reveals whether the token was missing, malformed, expired or mistyped.
const MsgUnauthorized = "Não autorizado"

// Auth validates the bearer access token and injects its claims into the
// request context. Refresh tokens are rejected here: only access tokens
// authorize API calls.
func Auth(codec *token.Codec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.GateDenialsTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, MsgUnauthorized)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.GateDenialsTotal.WithLabelValues("bad_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, MsgUnauthorized)
			}

			claims, err := codec.Verify(parts[1])
			if err != nil {
				metrics.GateDenialsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, MsgUnauthorized)
			}
			if claims.TokenType != token.TypeAccess {
				metrics.GateDenialsTotal.WithLabelValues("wrong_type").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, MsgUnauthorized)
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextRole, claims.Role)

			return next(c)
		}
	}
}
