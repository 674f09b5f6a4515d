package activity

import (
	"context"
	"time"
)

// Repository appends and reads audit entries. There is no update or delete.
type Repository interface {
	Append(ctx context.Context, e *Entry) error
	// ListForTicket returns the ticket's entries newest first.
	ListForTicket(ctx context.Context, ticketID uint) ([]*Record, error)
	List(ctx context.Context, filter Filter) ([]*Record, error)
}

// Filter selects audit entries. From and To are inclusive instants; callers
// widen calendar dates to whole days before building the filter.
type Filter struct {
	TicketNumber string
	From         *time.Time
	To           *time.Time
	Limit        int
}
