package usecases

import (
	"context"
	"strings"

	"tracker/internal/application/ticket/dto"
	"tracker/internal/domain/activity"
	"tracker/internal/domain/shared/events"
	"tracker/internal/domain/ticket"
	vo "tracker/internal/domain/ticket/valueobjects"
	"tracker/internal/domain/user"
	"tracker/internal/shared/biztime"
	"tracker/internal/shared/errors"
	"tracker/internal/shared/logger"
)

// UpdateTicketCommand is a partial update. Nil fields are left unchanged; a
// blank status or priority also means unchanged. Assignee.Set with a nil ID
// unassigns.
type UpdateTicketCommand struct {
	Actor       Actor
	TicketID    uint
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	Assignee    ticket.AssigneeChange
}

type UpdateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	userRepo   user.Repository
	recorder   *ActivityRecorder
	txMgr      TxRunner
	checker    CapabilityChecker
	publisher  events.EventPublisher
	clock      biztime.Clock
	logger     logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.Repository,
	recorder *ActivityRecorder,
	txMgr TxRunner,
	checker CapabilityChecker,
	publisher events.EventPublisher,
	clock biztime.Clock,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		recorder:   recorder,
		txMgr:      txMgr,
		checker:    checker,
		publisher:  publisher,
		clock:      clock,
		logger:     logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing update ticket use case", "ticket_id", cmd.TicketID, "actor_id", cmd.Actor.ID)

	if err := uc.checker.Check(ctx, cmd.Actor, CapabilityUpdate); err != nil {
		uc.logger.Warnw("update ticket denied", "ticket_id", cmd.TicketID, "actor_id", cmd.Actor.ID, "error", err)
		return nil, err
	}

	update, err := uc.toUpdate(ctx, cmd)
	if err != nil {
		return nil, err
	}

	var (
		updated *ticket.Ticket
		entries []*activity.Entry
	)
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := uc.ticketRepo.GetByIDForUpdate(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}

		now := uc.clock.Now()
		before := t.Snapshot()
		if err := t.Apply(update, now); err != nil {
			return err
		}
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}

		entries, err = uc.recorder.Updated(txCtx, t, cmd.Actor.ID, before, now)
		if err != nil {
			return err
		}
		updated = t
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.publisher.Publish(ctx, recordedEvents(entries, updated.Number())...)
	uc.logger.Infow("ticket updated successfully",
		"ticket_id", updated.ID(),
		"audit_entries", len(entries),
	)
	return ticketDTO(ctx, uc.userRepo, uc.logger, updated), nil
}

// toUpdate parses the command before anything is read or written.
func (uc *UpdateTicketUseCase) toUpdate(ctx context.Context, cmd UpdateTicketCommand) (ticket.Update, error) {
	u := ticket.Update{
		Title:       cmd.Title,
		Description: cmd.Description,
	}

	if cmd.Status != nil && strings.TrimSpace(*cmd.Status) != "" {
		status, err := vo.NewTicketStatus(strings.TrimSpace(*cmd.Status))
		if err != nil {
			return u, errors.NewValidationError("Invalid status", *cmd.Status)
		}
		u.Status = &status
	}
	if cmd.Priority != nil && strings.TrimSpace(*cmd.Priority) != "" {
		priority, err := vo.NewPriority(strings.TrimSpace(*cmd.Priority))
		if err != nil {
			return u, errors.NewValidationError("Invalid priority", *cmd.Priority)
		}
		u.Priority = &priority
	}

	if cmd.Assignee.Set {
		u.Assignee.Set = true
		if id := cmd.Assignee.ID; id != nil && *id != 0 {
			if _, err := uc.userRepo.GetByID(ctx, *id); err != nil {
				return u, err
			}
			u.Assignee.ID = id
		}
	}
	return u, nil
}
