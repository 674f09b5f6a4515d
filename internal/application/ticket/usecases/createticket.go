package usecases

import (
	"context"
	"math/rand/v2"
	"time"

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

const (
	defaultNumberAttempts = 5
	numberRetryBaseDelay  = 5 * time.Millisecond
)

type CreateTicketCommand struct {
	Actor       Actor
	Title       string
	Description string
	Priority    string
	Category    string
	AssigneeID  *uint
}

type CreateTicketUseCase struct {
	ticketRepo  ticket.TicketRepository
	userRepo    user.Repository
	numbers     ticket.NumberGenerator
	recorder    *ActivityRecorder
	txMgr       TxRunner
	checker     CapabilityChecker
	publisher   events.EventPublisher
	clock       biztime.Clock
	maxAttempts int
	logger      logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.Repository,
	numbers ticket.NumberGenerator,
	recorder *ActivityRecorder,
	txMgr TxRunner,
	checker CapabilityChecker,
	publisher events.EventPublisher,
	clock biztime.Clock,
	maxAttempts int,
	logger logger.Interface,
) *CreateTicketUseCase {
	if maxAttempts <= 0 {
		maxAttempts = defaultNumberAttempts
	}
	return &CreateTicketUseCase{
		ticketRepo:  ticketRepo,
		userRepo:    userRepo,
		numbers:     numbers,
		recorder:    recorder,
		txMgr:       txMgr,
		checker:     checker,
		publisher:   publisher,
		clock:       clock,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// Execute creates the ticket and its audit entries in one transaction. A
// ticket-number collision rolls the whole attempt back and retries with a
// freshly computed number.
func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing create ticket use case", "title", cmd.Title, "actor_id", cmd.Actor.ID)

	if err := uc.checker.Check(ctx, cmd.Actor, CapabilityCreate); err != nil {
		uc.logger.Warnw("create ticket denied", "actor_id", cmd.Actor.ID, "error", err)
		return nil, err
	}

	assigneeID := cmd.AssigneeID
	if assigneeID != nil && *assigneeID == 0 {
		assigneeID = nil
	}
	if assigneeID != nil {
		if _, err := uc.userRepo.GetByID(ctx, *assigneeID); err != nil {
			return nil, err
		}
	}

	var lastErr error
	for attempt := 1; attempt <= uc.maxAttempts; attempt++ {
		t, entries, err := uc.attempt(ctx, cmd, assigneeID)
		if err == nil {
			uc.publisher.Publish(ctx, recordedEvents(entries, t.Number())...)
			uc.logger.Infow("ticket created successfully",
				"ticket_id", t.ID(),
				"ticket_number", t.Number(),
				"attempt", attempt,
			)
			return ticketDTO(ctx, uc.userRepo, uc.logger, t), nil
		}
		if !errors.IsConflictError(err) {
			uc.logger.Errorw("failed to create ticket", "error", err)
			return nil, err
		}

		lastErr = err
		uc.logger.Warnw("ticket number collision, retrying", "attempt", attempt, "error", err)
		if attempt < uc.maxAttempts {
			if err := sleepWithJitter(ctx, attempt); err != nil {
				return nil, err
			}
		}
	}

	uc.logger.Errorw("failed to create ticket after max attempts",
		"max_attempts", uc.maxAttempts,
		"last_error", lastErr,
	)
	return nil, errors.NewUnavailableError("Could not allocate a ticket number, please try again")
}

func (uc *CreateTicketUseCase) attempt(ctx context.Context, cmd CreateTicketCommand, assigneeID *uint) (*ticket.Ticket, []*activity.Entry, error) {
	var (
		created *ticket.Ticket
		entries []*activity.Entry
	)

	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		now := uc.clock.Now()

		number, err := uc.numbers.Next(txCtx, biztime.Year(now))
		if err != nil {
			return err
		}

		t, err := ticket.NewTicket(
			number,
			cmd.Title,
			cmd.Description,
			vo.Priority(cmd.Priority),
			vo.Category(cmd.Category),
			cmd.Actor.ID,
			assigneeID,
			now,
		)
		if err != nil {
			return err
		}

		if err := uc.ticketRepo.Create(txCtx, t); err != nil {
			return err
		}

		entries, err = uc.recorder.Created(txCtx, t, cmd.Actor.ID, now)
		if err != nil {
			return err
		}
		created = t
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return created, entries, nil
}

// sleepWithJitter waits attempt*base plus up to one base of jitter.
func sleepWithJitter(ctx context.Context, attempt int) error {
	d := time.Duration(attempt)*numberRetryBaseDelay + rand.N(numberRetryBaseDelay)
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
