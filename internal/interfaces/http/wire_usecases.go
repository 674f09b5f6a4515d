package http

import (
	ticketUsecases "tracker/internal/application/ticket/usecases"
	"tracker/internal/application/user/usecases"
	"tracker/internal/shared/services/markdown"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// User / Auth
	loginUC     *usecases.LoginWithPasswordUseCase
	listUsersUC *usecases.ListUsersUseCase

	// Ticket
	createTicketUC     *ticketUsecases.CreateTicketUseCase
	updateTicketUC     *ticketUsecases.UpdateTicketUseCase
	getTicketUC        *ticketUsecases.GetTicketUseCase
	listTicketsUC      *ticketUsecases.ListTicketsUseCase
	addCommentUC       *ticketUsecases.AddCommentUseCase
	uploadAttachmentUC *ticketUsecases.UploadAttachmentUseCase
	getAttachmentUC    *ticketUsecases.GetAttachmentUseCase

	// Reports
	listActivityUC *ticketUsecases.ListActivityUseCase
	getDashboardUC *ticketUsecases.GetDashboardUseCase
}

func (c *Container) initUseCases() {
	r := c.repos
	log := c.log
	cfg := c.cfg

	recorder := ticketUsecases.NewActivityRecorder(r.activityRepo, r.userRepo)
	addAttachmentUC := ticketUsecases.NewAddAttachmentUseCase(
		r.ticketRepo, r.attachmentRepo, recorder, r.txMgr, c.checker, c.dispatcher, c.clock, log,
	)

	c.ucs = &allUseCases{
		loginUC:     usecases.NewLoginWithPasswordUseCase(r.userRepo, c.hasher, c.jwtSvc, log),
		listUsersUC: usecases.NewListUsersUseCase(r.userRepo, log),

		createTicketUC: ticketUsecases.NewCreateTicketUseCase(
			r.ticketRepo, r.userRepo, r.numbers, recorder, r.txMgr, c.checker, c.dispatcher, c.clock,
			cfg.Ticket.NumberMaxAttempts, log,
		),
		updateTicketUC: ticketUsecases.NewUpdateTicketUseCase(
			r.ticketRepo, r.userRepo, recorder, r.txMgr, c.checker, c.dispatcher, c.clock, log,
		),
		getTicketUC: ticketUsecases.NewGetTicketUseCase(
			r.ticketRepo, r.commentRepo, r.attachmentRepo, r.activityRepo, r.userRepo, markdown.NewRenderer(), log,
		),
		listTicketsUC: ticketUsecases.NewListTicketsUseCase(r.ticketRepo, r.userRepo, log),
		addCommentUC: ticketUsecases.NewAddCommentUseCase(
			r.ticketRepo, r.commentRepo, recorder, r.txMgr, c.checker, c.dispatcher, c.clock, log,
		),
		uploadAttachmentUC: ticketUsecases.NewUploadAttachmentUseCase(
			r.ticketRepo, c.blobs, addAttachmentUC, c.checker,
			ticketUsecases.UploadPolicy{
				MaxBytes:          cfg.Storage.MaxUploadBytes,
				AllowedExtensions: cfg.Storage.AllowedExtensions,
			},
			log,
		),
		getAttachmentUC: ticketUsecases.NewGetAttachmentUseCase(r.attachmentRepo, c.blobs, log),

		listActivityUC: ticketUsecases.NewListActivityUseCase(r.activityRepo, cfg.Ticket.AuditDefaultLimit, log),
		getDashboardUC: ticketUsecases.NewGetDashboardUseCase(r.ticketRepo, r.activityRepo, r.userRepo, c.statsCache, log),
	}
}
