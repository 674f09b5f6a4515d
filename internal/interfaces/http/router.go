package http

import (
	"tracker/internal/interfaces/http/middleware"
	"tracker/internal/interfaces/http/routes"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.CustomLogger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.SecurityHeaders())
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.MaxMultipartMemory = c.cfg.Storage.MaxUploadBytes + 1<<20

	c.engine.GET("/health", c.hdlrs.healthHandler.Health)

	routes.SetupAuthRoutes(c.engine, &routes.AuthRouteConfig{
		AuthHandler: c.hdlrs.authHandler,
		RateLimiter: c.loginLimiter,
	})

	routes.SetupTicketRoutes(c.engine, &routes.TicketRouteConfig{
		TicketHandler:     c.hdlrs.ticketHandler,
		AttachmentHandler: c.hdlrs.attachmentHandler,
		AuthMiddleware:    c.authMiddleware,
	})

	routes.SetupReportRoutes(c.engine, &routes.ReportRouteConfig{
		DashboardHandler: c.hdlrs.dashboardHandler,
		AuditHandler:     c.hdlrs.auditHandler,
		UserHandler:      c.hdlrs.userHandler,
		AuthMiddleware:   c.authMiddleware,
	})
}
