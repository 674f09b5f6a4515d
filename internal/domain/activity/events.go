package activity

import (
	"strconv"
	"time"

	"tracker/internal/domain/shared/events"
)

const EventTypeRecorded = "activity.recorded"

// RecordedEvent is published after an entry has been committed.
type RecordedEvent struct {
	events.BaseEvent
	EntryID      uint    `json:"entry_id"`
	TicketID     uint    `json:"ticket_id"`
	TicketNumber string  `json:"ticket_number"`
	ActorID      uint    `json:"actor_id"`
	Action       Action  `json:"action"`
	OldValue     *string `json:"old_value,omitempty"`
	NewValue     *string `json:"new_value,omitempty"`
}

func NewRecordedEvent(e *Entry, ticketNumber string) RecordedEvent {
	return RecordedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: strconv.FormatUint(uint64(e.TicketID()), 10),
			EventType:   EventTypeRecorded,
			OccurredAt:  e.CreatedAt().UTC().Truncate(time.Millisecond),
			Version:     1,
		},
		EntryID:      e.ID(),
		TicketID:     e.TicketID(),
		TicketNumber: ticketNumber,
		ActorID:      e.ActorID(),
		Action:       e.Action(),
		OldValue:     e.OldValue(),
		NewValue:     e.NewValue(),
	}
}
