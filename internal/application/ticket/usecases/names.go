package usecases

import (
	"context"

	"tracker/internal/application/ticket/dto"
	"tracker/internal/domain/ticket"
	"tracker/internal/domain/user"
	"tracker/internal/shared/logger"
)

// resolveNames looks up display names for ids in one query. Unknown IDs are absent.
func resolveNames(ctx context.Context, userRepo user.Repository, ids ...uint) (dto.Names, error) {
	seen := make(map[uint]struct{}, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	names := make(dto.Names, len(unique))
	if len(unique) == 0 {
		return names, nil
	}
	users, err := userRepo.GetByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.ID()] = u.DisplayName()
	}
	return names, nil
}

func optionalID(id *uint) uint {
	if id == nil {
		return 0
	}
	return *id
}

// ticketDTO runs after commit, so a name lookup failure only blanks the names.
func ticketDTO(ctx context.Context, userRepo user.Repository, log logger.Interface, t *ticket.Ticket) *dto.TicketDTO {
	names, err := resolveNames(ctx, userRepo, t.CreatorID(), optionalID(t.AssigneeID()))
	if err != nil {
		log.Warnw("failed to resolve user names", "ticket_id", t.ID(), "error", err)
	}
	return dto.ToTicketDTO(t, names)
}
