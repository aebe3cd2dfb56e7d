package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/placement-portal/internal/handler"
	"github.com/iliyamo/placement-portal/internal/middleware"
	"github.com/iliyamo/placement-portal/internal/workflow"
)

// RegisterStudent registers applicant endpoints under /v1/student.  All
// routes require a valid JWT and the STUDENT role.
func RegisterStudent(e *echo.Echo, h *handler.StudentHandler, jwtSecret string) {
	g := e.Group(
		"/v1/student",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(workflow.RoleStudent),
	)
	g.GET("/drives", h.BrowseDrives)
	g.POST("/drives/:id/apply", h.Apply)
	g.GET("/applications", h.History)

	g.GET("/profile", h.Profile)
	g.PUT("/profile", h.UpdateProfile)
	g.POST("/profile/resume", h.UploadResume)
	g.GET("/profile/resume", h.DownloadResume)

	g.GET("/notifications", h.ListNotifications)
	g.POST("/notifications/read", h.MarkNotificationsRead)
}
