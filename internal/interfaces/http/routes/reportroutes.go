package routes

import (
	"github.com/gin-gonic/gin"

	"tracker/internal/interfaces/http/handlers"
	"tracker/internal/interfaces/http/middleware"
)

// ReportRouteConfig covers the read-only views: dashboard, audit and users.
type ReportRouteConfig struct {
	DashboardHandler *handlers.DashboardHandler
	AuditHandler     *handlers.AuditHandler
	UserHandler      *handlers.UserHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

func SetupReportRoutes(engine *gin.Engine, config *ReportRouteConfig) {
	authed := engine.Group("")
	authed.Use(config.AuthMiddleware.RequireAuth())
	{
		authed.GET("/dashboard", config.DashboardHandler.GetDashboard)
		authed.GET("/audit", config.AuditHandler.ListActivity)
		authed.GET("/users", config.UserHandler.ListUsers)
	}
}
