package usecases

import (
	"context"
	"fmt"
	"time"

	"tracker/internal/domain/activity"
	"tracker/internal/domain/shared/events"
	"tracker/internal/domain/ticket"
	"tracker/internal/domain/user"
	"tracker/internal/shared/errors"
)

// ActivityRecorder turns ticket mutations into audit entries. It must be
// called with the transactional context of the mutation it describes.
type ActivityRecorder struct {
	activityRepo activity.Repository
	userRepo     user.Repository
}

func NewActivityRecorder(activityRepo activity.Repository, userRepo user.Repository) *ActivityRecorder {
	return &ActivityRecorder{
		activityRepo: activityRepo,
		userRepo:     userRepo,
	}
}

// Created writes "created" and, when the ticket starts assigned, "assigned".
func (r *ActivityRecorder) Created(ctx context.Context, t *ticket.Ticket, actorID uint, now time.Time) ([]*activity.Entry, error) {
	entries := make([]*activity.Entry, 0, 2)

	e, err := r.append(ctx, t.ID(), actorID, activity.ActionCreated, nil, nil, now)
	if err != nil {
		return nil, err
	}
	entries = append(entries, e)

	if t.IsAssigned() {
		name, err := r.displayName(ctx, t.AssigneeID())
		if err != nil {
			return nil, err
		}
		e, err := r.append(ctx, t.ID(), actorID, activity.ActionAssigned, nil, name, now)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Updated writes one entry per audited field that differs between before and
// the ticket's current state.
func (r *ActivityRecorder) Updated(ctx context.Context, t *ticket.Ticket, actorID uint, before ticket.Snapshot, now time.Time) ([]*activity.Entry, error) {
	changes := ticket.Diff(before, t.Snapshot())
	entries := make([]*activity.Entry, 0, len(changes))

	for _, c := range changes {
		var (
			action             activity.Action
			oldValue, newValue *string
			err                error
		)
		switch c.Field {
		case ticket.FieldStatus:
			action, oldValue, newValue = activity.ActionStatusChanged, strPtr(c.Old), strPtr(c.New)
		case ticket.FieldPriority:
			action, oldValue, newValue = activity.ActionPriorityChanged, strPtr(c.Old), strPtr(c.New)
		case ticket.FieldAssignee:
			action = activity.ActionAssigned
			if oldValue, err = r.displayName(ctx, c.OldAssignee); err != nil {
				return nil, err
			}
			if newValue, err = r.displayName(ctx, c.NewAssignee); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unaudited field %q", c.Field)
		}

		e, err := r.append(ctx, t.ID(), actorID, action, oldValue, newValue, now)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *ActivityRecorder) Commented(ctx context.Context, t *ticket.Ticket, actorID uint, now time.Time) ([]*activity.Entry, error) {
	e, err := r.append(ctx, t.ID(), actorID, activity.ActionCommented, nil, nil, now)
	if err != nil {
		return nil, err
	}
	return []*activity.Entry{e}, nil
}

func (r *ActivityRecorder) Attached(ctx context.Context, t *ticket.Ticket, actorID uint, originalName string, now time.Time) ([]*activity.Entry, error) {
	e, err := r.append(ctx, t.ID(), actorID, activity.ActionAttached, nil, &originalName, now)
	if err != nil {
		return nil, err
	}
	return []*activity.Entry{e}, nil
}

func (r *ActivityRecorder) append(ctx context.Context, ticketID, actorID uint, action activity.Action, oldValue, newValue *string, now time.Time) (*activity.Entry, error) {
	e, err := activity.NewEntry(ticketID, actorID, action, oldValue, newValue, now)
	if err != nil {
		return nil, err
	}
	if err := r.activityRepo.Append(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// displayName snapshots the user's name. A user that no longer resolves is
// recorded by ID so the entry is still written.
func (r *ActivityRecorder) displayName(ctx context.Context, id *uint) (*string, error) {
	if id == nil {
		return nil, nil
	}
	u, err := r.userRepo.GetByID(ctx, *id)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return strPtr(fmt.Sprintf("user #%d", *id)), nil
		}
		return nil, err
	}
	return strPtr(u.DisplayName()), nil
}

// recordedEvents wraps committed entries for the publisher.
func recordedEvents(entries []*activity.Entry, ticketNumber string) []events.DomainEvent {
	out := make([]events.DomainEvent, 0, len(entries))
	for _, e := range entries {
		out = append(out, activity.NewRecordedEvent(e, ticketNumber))
	}
	return out
}

func strPtr(s string) *string { return &s }
