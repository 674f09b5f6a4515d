// Package activity models the append-only audit trail of ticket changes.
package activity

import (
	"fmt"
	"time"
)

type Action string

const (
	ActionCreated         Action = "created"
	ActionStatusChanged   Action = "status_changed"
	ActionPriorityChanged Action = "priority_changed"
	ActionAssigned        Action = "assigned"
	ActionCommented       Action = "commented"
	ActionAttached        Action = "attached"
)

var validActions = map[Action]bool{
	ActionCreated:         true,
	ActionStatusChanged:   true,
	ActionPriorityChanged: true,
	ActionAssigned:        true,
	ActionCommented:       true,
	ActionAttached:        true,
}

func (a Action) String() string { return string(a) }

func (a Action) IsValid() bool { return validActions[a] }

// Entry is one immutable audit record. Old and new values are free-text
// snapshots, not references, so they stay readable after renames.
type Entry struct {
	id        uint
	ticketID  uint
	actorID   uint
	action    Action
	oldValue  *string
	newValue  *string
	createdAt time.Time
}

func NewEntry(ticketID, actorID uint, action Action, oldValue, newValue *string, now time.Time) (*Entry, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("activity entry requires a ticket")
	}
	if actorID == 0 {
		return nil, fmt.Errorf("activity entry requires an actor")
	}
	if !action.IsValid() {
		return nil, fmt.Errorf("invalid activity action: %q", action)
	}
	return &Entry{
		ticketID:  ticketID,
		actorID:   actorID,
		action:    action,
		oldValue:  copyString(oldValue),
		newValue:  copyString(newValue),
		createdAt: now,
	}, nil
}

func ReconstructEntry(id, ticketID, actorID uint, action Action, oldValue, newValue *string, createdAt time.Time) *Entry {
	return &Entry{
		id:        id,
		ticketID:  ticketID,
		actorID:   actorID,
		action:    action,
		oldValue:  copyString(oldValue),
		newValue:  copyString(newValue),
		createdAt: createdAt,
	}
}

func (e *Entry) ID() uint             { return e.id }
func (e *Entry) TicketID() uint       { return e.ticketID }
func (e *Entry) ActorID() uint        { return e.actorID }
func (e *Entry) Action() Action       { return e.action }
func (e *Entry) OldValue() *string    { return copyString(e.oldValue) }
func (e *Entry) NewValue() *string    { return copyString(e.newValue) }
func (e *Entry) CreatedAt() time.Time { return e.createdAt }

func (e *Entry) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("activity entry ID is already set")
	}
	e.id = id
	return nil
}

// Record is an entry joined with the ticket number and actor name for display.
type Record struct {
	Entry        *Entry
	TicketNumber string
	ActorName    string
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
