package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userhub/user-api/internal/api/middleware"
)

// ctxIdentity extracts the identity injected by the Auth middleware. A
// missing role means the middleware did not run for this route; that is a
// wiring bug surfaced as 401 rather than a panic.
func ctxIdentity(c echo.Context) (userID int64, role string, err error) {
	role, _ = c.Get(middleware.ContextRole).(string)
	if role == "" {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, middleware.MsgUnauthorized)
	}

	userID, _ = c.Get(middleware.ContextUserID).(int64)
	return userID, role, nil
}
