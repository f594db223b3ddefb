package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// ExtrasHandler serves the example gated routes: an admin-only area and a
// protected area open to any authenticated user.
type ExtrasHandler struct{}

func NewExtrasHandler() *ExtrasHandler {
	return &ExtrasHandler{}
}

type adminInfoResponse struct {
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

type adminStatsResponse struct {
	TotalUsers  int    `json:"totalUsers"`
	ActiveUsers int    `json:"activeUsers"`
	LastUpdated string `json:"lastUpdated"`
}

type protectedInfoResponse struct {
	Message  string           `json:"message"`
	UserInfo protectedUserRef `json:"userInfo"`
}

type protectedUserRef struct {
	ID   int64  `json:"id"`
	Role string `json:"role"`
}

type profileResponse struct {
	ID         int64  `json:"id"`
	Role       string `json:"role"`
	LastAccess string `json:"lastAccess"`
}

// AdminInfo handles GET /api/admin.
//
// @Summary      Admin-only area
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  adminInfoResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin [get]
func (h *ExtrasHandler) AdminInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, adminInfoResponse{
		Message:   "Área administrativa - Acesso restrito a administradores",
		Timestamp: time.Now().UnixMilli(),
	})
}

// AdminStats handles GET /api/admin/stats.
//
// @Summary      Admin statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  adminStatsResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/stats [get]
func (h *ExtrasHandler) AdminStats(c echo.Context) error {
	// Placeholder numbers until a real stats source exists.
	return c.JSON(http.StatusOK, adminStatsResponse{
		TotalUsers:  150,
		ActiveUsers: 42,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	})
}

// ProtectedInfo handles GET /api/protected.
//
// @Summary      Authenticated-user area
// @Tags         protected
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  protectedInfoResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/protected [get]
func (h *ExtrasHandler) ProtectedInfo(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, protectedInfoResponse{
		Message:  "Área protegida - Acesso para usuários autenticados",
		UserInfo: protectedUserRef{ID: userID, Role: role},
	})
}

// Profile handles GET /api/protected/profile.
//
// @Summary      Caller profile snapshot
// @Tags         protected
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/protected/profile [get]
func (h *ExtrasHandler) Profile(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{
		ID:         userID,
		Role:       role,
		LastAccess: time.Now().UTC().Format(time.RFC3339),
	})
}
