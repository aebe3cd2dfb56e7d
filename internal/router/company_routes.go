package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/placement-portal/internal/handler"
	"github.com/iliyamo/placement-portal/internal/middleware"
	"github.com/iliyamo/placement-portal/internal/workflow"
)

// RegisterCompany registers recruiter endpoints under /v1/company.  All
// routes require a valid JWT and the COMPANY role; ownership of drives and
// applications is enforced inside the handlers via company-scoped queries.
func RegisterCompany(e *echo.Echo, h *handler.CompanyHandler, jwtSecret string) {
	g := e.Group(
		"/v1/company",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(workflow.RoleCompany),
	)
	g.GET("/profile", h.Profile)
	g.PUT("/profile", h.UpdateProfile)

	g.POST("/drives", h.CreateDrive)
	g.GET("/drives", h.ListDrives)
	g.GET("/drives/:id", h.GetDrive)
	g.PUT("/drives/:id", h.UpdateDrive)
	g.POST("/drives/:id/close", h.CloseDrive)
	g.DELETE("/drives/:id", h.DeleteDrive)

	g.GET("/drives/:id/applications", h.ListApplications)
	g.POST("/applications/:id/status", h.SetApplicationStatus)
}
