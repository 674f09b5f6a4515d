package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "tracker/internal/interfaces/http/handlers/ticket"
	"tracker/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler     *tickethandlers.TicketHandler
	AttachmentHandler *tickethandlers.AttachmentHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	tickets := engine.Group("/tickets")
	tickets.Use(config.AuthMiddleware.RequireAuth())
	{
		tickets.GET("", config.TicketHandler.ListTickets)
		tickets.POST("", config.TicketHandler.CreateTicket)

		tickets.POST("/:id/comments", config.TicketHandler.AddComment)
		tickets.POST("/:id/attachments", config.AttachmentHandler.Upload)

		tickets.GET("/:id", config.TicketHandler.GetTicket)
		tickets.PATCH("/:id", config.TicketHandler.UpdateTicket)
	}

	attachments := engine.Group("/attachments")
	attachments.Use(config.AuthMiddleware.RequireAuth())
	{
		attachments.GET("/:name", config.AttachmentHandler.Download)
	}
}
