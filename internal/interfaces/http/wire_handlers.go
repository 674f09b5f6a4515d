package http

import (
	"tracker/internal/infrastructure/database"
	"tracker/internal/interfaces/http/handlers"
	ticketHandlers "tracker/internal/interfaces/http/handlers/ticket"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	authHandler       *handlers.AuthHandler
	userHandler       *handlers.UserHandler
	dashboardHandler  *handlers.DashboardHandler
	auditHandler      *handlers.AuditHandler
	healthHandler     *handlers.HealthHandler
	ticketHandler     *ticketHandlers.TicketHandler
	attachmentHandler *ticketHandlers.AttachmentHandler
}

func (c *Container) initHandlers() {
	ucs := c.ucs
	log := c.log

	c.hdlrs = &allHandlers{
		authHandler:      handlers.NewAuthHandler(ucs.loginUC, log),
		userHandler:      handlers.NewUserHandler(ucs.listUsersUC, log),
		dashboardHandler: handlers.NewDashboardHandler(ucs.getDashboardUC, log),
		auditHandler:     handlers.NewAuditHandler(ucs.listActivityUC, log),
		healthHandler:    handlers.NewHealthHandler(database.NewHealthChecker(c.db)),
		ticketHandler: ticketHandlers.NewTicketHandler(
			ucs.createTicketUC,
			ucs.updateTicketUC,
			ucs.getTicketUC,
			ucs.listTicketsUC,
			ucs.addCommentUC,
			log,
		),
		attachmentHandler: ticketHandlers.NewAttachmentHandler(
			ucs.uploadAttachmentUC,
			ucs.getAttachmentUC,
			c.cfg.Storage.MaxUploadBytes,
			log,
		),
	}
}
