package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/placement-portal/internal/handler"
	"github.com/iliyamo/placement-portal/internal/middleware"
	"github.com/iliyamo/placement-portal/internal/workflow"
)

// RegisterAdmin registers the moderation endpoints under /v1/admin.  All
// routes require a valid JWT and the ADMIN role.  Admins see every company,
// student, drive and application, and own the approval and blacklist
// decisions.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(workflow.RoleAdmin),
	)
	g.GET("/stats", h.Stats)
	g.GET("/companies", h.ListCompanies)
	g.GET("/students", h.ListStudents)
	g.GET("/drives", h.ListDrives)
	g.GET("/applications", h.ListApplications)

	g.POST("/companies/:id/approval", h.SetCompanyApproval)
	g.POST("/companies/:id/blacklist", h.SetCompanyBlacklist)
	g.POST("/students/:id/blacklist", h.SetStudentBlacklist)
	// Explicit path back after a blacklist deactivated the account.
	g.POST("/accounts/:id/activate", h.ActivateAccount)
	g.POST("/drives/:id/status", h.SetDriveStatus)
}
