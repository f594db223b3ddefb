package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userhub/user-api/internal/api/metrics"
	"github.com/userhub/user-api/internal/core/domain"
)

// MsgForbidden is the body returned when an authenticated caller lacks the
// required role.
const MsgForbidden = "Acesso negado. Você não tem permissão para acessar este recurso."

// RBAC enforces role-based access control over the role injected by Auth.
// It never touches storage; membership in the allowed set is the whole check.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			if _, ok := allowed[role]; !ok {
				metrics.GateDenialsTotal.WithLabelValues("forbidden_role").Inc()
				return c.JSON(http.StatusForbidden, map[string]string{"error": MsgForbidden})
			}
			return next(c)
		}
	}
}

// RequireAdmin gates routes to ADMIN only.
func RequireAdmin() echo.MiddlewareFunc {
	return RBAC(domain.RoleAdmin)
}

// RequireUser gates routes to authenticated users; ADMIN satisfies the
// USER-level gate.
func RequireUser() echo.MiddlewareFunc {
	return RBAC(domain.RoleUser, domain.RoleAdmin)
}
