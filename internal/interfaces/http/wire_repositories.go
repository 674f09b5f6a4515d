package http

import (
	"gorm.io/gorm"

	"tracker/internal/domain/activity"
	"tracker/internal/domain/ticket"
	"tracker/internal/domain/user"
	"tracker/internal/infrastructure/repository"
	"tracker/internal/infrastructure/services"
	"tracker/internal/shared/db"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	userRepo       user.Repository
	ticketRepo     ticket.TicketRepository
	commentRepo    ticket.CommentRepository
	attachmentRepo ticket.AttachmentRepository
	activityRepo   activity.Repository
	numbers        ticket.NumberGenerator
	txMgr          *db.TransactionManager
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(gdb *gorm.DB, numberPrefix string) *repositories {
	return &repositories{
		userRepo:       repository.NewUserRepository(gdb),
		ticketRepo:     repository.NewTicketRepository(gdb),
		commentRepo:    repository.NewCommentRepository(gdb),
		attachmentRepo: repository.NewAttachmentRepository(gdb),
		activityRepo:   repository.NewActivityRepository(gdb),
		numbers:        services.NewTicketNumberGenerator(gdb, numberPrefix),
		txMgr:          db.NewTransactionManager(gdb),
	}
}
