package ticket

import (
	"fmt"
	"strings"
	"time"

	"tracker/internal/shared/errors"
)

type Comment struct {
	id        uint
	ticketID  uint
	authorID  uint
	content   string
	createdAt time.Time
}

func NewComment(ticketID, authorID uint, content string, now time.Time) (*Comment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if authorID == 0 {
		return nil, errors.NewValidationError("Author is required")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.NewValidationError("Comment cannot be empty")
	}

	return &Comment{
		ticketID:  ticketID,
		authorID:  authorID,
		content:   content,
		createdAt: now,
	}, nil
}

func ReconstructComment(id, ticketID, authorID uint, content string, createdAt time.Time) (*Comment, error) {
	if id == 0 {
		return nil, fmt.Errorf("comment ID cannot be zero")
	}
	return &Comment{
		id:        id,
		ticketID:  ticketID,
		authorID:  authorID,
		content:   content,
		createdAt: createdAt,
	}, nil
}

func (c *Comment) ID() uint             { return c.id }
func (c *Comment) TicketID() uint       { return c.ticketID }
func (c *Comment) AuthorID() uint       { return c.authorID }
func (c *Comment) Content() string      { return c.content }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }

func (c *Comment) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("comment ID is already set")
	}
	c.id = id
	return nil
}
