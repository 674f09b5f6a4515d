package ticket

import (
	"context"
	"time"

	vo "tracker/internal/domain/ticket/valueobjects"
)

type TicketRepository interface {
	// Create inserts t and assigns its ID. A duplicate ticket number yields a ConflictError.
	Create(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error
	// Touch sets updated_at only, leaving every other column as stored.
	Touch(ctx context.Context, id uint, at time.Time) error
	GetByID(ctx context.Context, id uint) (*Ticket, error)
	// GetByIDForUpdate reads the row under a write lock held until the
	// surrounding transaction ends. Mutations read through it.
	GetByIDForUpdate(ctx context.Context, id uint) (*Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]*Ticket, error)
	CountByStatus(ctx context.Context) (map[vo.TicketStatus]int64, error)
	CountActiveAssignedTo(ctx context.Context, userID uint) (int64, error)
}

type AssignmentMode string

const (
	AssignmentAny        AssignmentMode = ""
	AssignmentUser       AssignmentMode = "user"
	AssignmentUnassigned AssignmentMode = "unassigned"
)

// TicketFilter combines independent optional predicates with AND. Search is an
// ASCII case-insensitive substring match against number, title and description.
// Results are ordered newest first.
type TicketFilter struct {
	Status     *vo.TicketStatus
	Priority   *vo.Priority
	Category   *vo.Category
	Assignment AssignmentMode
	AssigneeID uint
	Search     string
	Limit      int
}

type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	// ListByTicket returns comments oldest first.
	ListByTicket(ctx context.Context, ticketID uint) ([]*Comment, error)
}

type AttachmentRepository interface {
	Create(ctx context.Context, a *Attachment) error
	ListByTicket(ctx context.Context, ticketID uint) ([]*Attachment, error)
	GetByStoredName(ctx context.Context, storedName string) (*Attachment, error)
}
