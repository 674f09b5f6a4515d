package ticket

import (
	"fmt"
	"strings"
	"time"

	vo "tracker/internal/domain/ticket/valueobjects"
	"tracker/internal/shared/errors"
)

const maxTitleLength = 200

type Ticket struct {
	id          uint
	number      string
	title       string
	description string
	status      vo.TicketStatus
	priority    vo.Priority
	category    vo.Category
	creatorID   uint
	assigneeID  *uint
	createdAt   time.Time
	updatedAt   time.Time
	resolvedAt  *time.Time
}

// NewTicket builds an open ticket. Title is trimmed and must not be blank;
// a blank priority or category falls back to medium / other.
func NewTicket(
	number string,
	title string,
	description string,
	priority vo.Priority,
	category vo.Category,
	creatorID uint,
	assigneeID *uint,
	now time.Time,
) (*Ticket, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLength {
		return nil, errors.NewValidationError(fmt.Sprintf("Title exceeds maximum length of %d characters", maxTitleLength))
	}
	if priority == "" {
		priority = vo.PriorityMedium
	}
	if !priority.IsValid() {
		return nil, errors.NewValidationError("Invalid priority", priority.String())
	}
	if category == "" {
		category = vo.CategoryOther
	}
	if !category.IsValid() {
		return nil, errors.NewValidationError("Invalid category", category.String())
	}
	if creatorID == 0 {
		return nil, errors.NewValidationError("Creator is required")
	}
	if number == "" {
		return nil, fmt.Errorf("ticket number is required")
	}
	if assigneeID != nil && *assigneeID == 0 {
		assigneeID = nil
	}

	return &Ticket{
		number:      number,
		title:       title,
		description: strings.TrimSpace(description),
		status:      vo.StatusOpen,
		priority:    priority,
		category:    category,
		creatorID:   creatorID,
		assigneeID:  copyID(assigneeID),
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructTicket rebuilds a persisted ticket.
func ReconstructTicket(
	id uint,
	number string,
	title string,
	description string,
	status vo.TicketStatus,
	priority vo.Priority,
	category vo.Category,
	creatorID uint,
	assigneeID *uint,
	createdAt, updatedAt time.Time,
	resolvedAt *time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if number == "" {
		return nil, fmt.Errorf("ticket number is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status %q on ticket %d", status, id)
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority %q on ticket %d", priority, id)
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category %q on ticket %d", category, id)
	}

	return &Ticket{
		id:          id,
		number:      number,
		title:       title,
		description: description,
		status:      status,
		priority:    priority,
		category:    category,
		creatorID:   creatorID,
		assigneeID:  copyID(assigneeID),
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		resolvedAt:  copyTime(resolvedAt),
	}, nil
}

func (t *Ticket) ID() uint                  { return t.id }
func (t *Ticket) Number() string            { return t.number }
func (t *Ticket) Title() string             { return t.title }
func (t *Ticket) Description() string       { return t.description }
func (t *Ticket) Status() vo.TicketStatus   { return t.status }
func (t *Ticket) Priority() vo.Priority     { return t.priority }
func (t *Ticket) Category() vo.Category     { return t.category }
func (t *Ticket) CreatorID() uint           { return t.creatorID }
func (t *Ticket) AssigneeID() *uint         { return copyID(t.assigneeID) }
func (t *Ticket) CreatedAt() time.Time      { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time      { return t.updatedAt }
func (t *Ticket) ResolvedAt() *time.Time    { return copyTime(t.resolvedAt) }
func (t *Ticket) IsAssigned() bool          { return t.assigneeID != nil }
func (t *Ticket) IsAssignedTo(id uint) bool { return t.assigneeID != nil && *t.assigneeID == id }

// SetID is called once by the repository after insert.
func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// AssigneeChange distinguishes "leave alone" from "set" for the nullable assignee.
// Set with a nil ID unassigns.
type AssigneeChange struct {
	Set bool
	ID  *uint
}

// Update carries the fields of a partial update. Nil pointers leave the field unchanged.
type Update struct {
	Title       *string
	Description *string
	Status      *vo.TicketStatus
	Priority    *vo.Priority
	Assignee    AssigneeChange
}

// Apply mutates the ticket with u and refreshes updatedAt. A blank title is
// ignored. resolvedAt is stamped the first time the ticket enters resolved
// and is never cleared afterwards.
func (t *Ticket) Apply(u Update, now time.Time) error {
	if u.Status != nil && !u.Status.IsValid() {
		return errors.NewValidationError("Invalid status", u.Status.String())
	}
	if u.Priority != nil && !u.Priority.IsValid() {
		return errors.NewValidationError("Invalid priority", u.Priority.String())
	}
	if u.Title != nil {
		title := strings.TrimSpace(*u.Title)
		if len(title) > maxTitleLength {
			return errors.NewValidationError(fmt.Sprintf("Title exceeds maximum length of %d characters", maxTitleLength))
		}
		if title != "" {
			t.title = title
		}
	}

	prior := t.status
	if u.Description != nil {
		t.description = strings.TrimSpace(*u.Description)
	}
	if u.Status != nil {
		t.status = *u.Status
	}
	if u.Priority != nil {
		t.priority = *u.Priority
	}
	if u.Assignee.Set {
		t.assigneeID = nil
		if u.Assignee.ID != nil && *u.Assignee.ID != 0 {
			t.assigneeID = copyID(u.Assignee.ID)
		}
	}

	if t.status.IsResolved() && !prior.IsResolved() && t.resolvedAt == nil {
		resolved := now
		t.resolvedAt = &resolved
	}
	t.updatedAt = now
	return nil
}

// Touch refreshes updatedAt for child activity such as comments or attachments.
func (t *Ticket) Touch(now time.Time) {
	t.updatedAt = now
}

// Snapshot captures the audited fields of the ticket.
func (t *Ticket) Snapshot() Snapshot {
	return Snapshot{
		Status:     t.status,
		Priority:   t.priority,
		AssigneeID: copyID(t.assigneeID),
	}
}

func copyID(id *uint) *uint {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
