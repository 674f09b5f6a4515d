package usecases

import (
	"context"
	"strings"

	"tracker/internal/application/ticket/dto"
	"tracker/internal/domain/ticket"
	vo "tracker/internal/domain/ticket/valueobjects"
	"tracker/internal/domain/user"
	"tracker/internal/shared/errors"
	"tracker/internal/shared/logger"
)

const (
	AssignedMine       = "mine"
	AssignedMe         = "me"
	AssignedUnassigned = "unassigned"
)

// ListTicketsQuery holds raw filter values. Blank values do not filter.
type ListTicketsQuery struct {
	Actor    Actor
	Status   string
	Priority string
	Category string
	Assigned string
	Search   string
	Limit    int
}

type ListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	userRepo   user.Repository
	logger     logger.Interface
}

func NewListTicketsUseCase(ticketRepo ticket.TicketRepository, userRepo user.Repository, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) ([]dto.TicketDTO, error) {
	filter, err := ToTicketFilter(query)
	if err != nil {
		return nil, err
	}

	tickets, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, err
	}

	ids := make([]uint, 0, len(tickets)*2)
	for _, t := range tickets {
		ids = append(ids, t.CreatorID(), optionalID(t.AssigneeID()))
	}
	names, err := resolveNames(ctx, uc.userRepo, ids...)
	if err != nil {
		return nil, err
	}
	return dto.ToTicketDTOs(tickets, names), nil
}

// ToTicketFilter validates raw query values. "me" is accepted as "mine".
func ToTicketFilter(q ListTicketsQuery) (ticket.TicketFilter, error) {
	filter := ticket.TicketFilter{
		Search: strings.TrimSpace(q.Search),
		Limit:  q.Limit,
	}

	if s := strings.TrimSpace(q.Status); s != "" {
		status, err := vo.NewTicketStatus(s)
		if err != nil {
			return filter, errors.NewValidationError("Invalid status", s)
		}
		filter.Status = &status
	}
	if p := strings.TrimSpace(q.Priority); p != "" {
		priority, err := vo.NewPriority(p)
		if err != nil {
			return filter, errors.NewValidationError("Invalid priority", p)
		}
		filter.Priority = &priority
	}
	if c := strings.TrimSpace(q.Category); c != "" {
		category, err := vo.NewCategory(c)
		if err != nil {
			return filter, errors.NewValidationError("Invalid category", c)
		}
		filter.Category = &category
	}

	switch strings.TrimSpace(q.Assigned) {
	case "":
	case AssignedMine, AssignedMe:
		filter.Assignment = ticket.AssignmentUser
		filter.AssigneeID = q.Actor.ID
	case AssignedUnassigned:
		filter.Assignment = ticket.AssignmentUnassigned
	default:
		return filter, errors.NewValidationError("Invalid assignment filter", q.Assigned)
	}
	return filter, nil
}
