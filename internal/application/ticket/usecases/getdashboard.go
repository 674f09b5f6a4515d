package usecases

import (
	"context"

	"tracker/internal/application/ticket/dto"
	"tracker/internal/domain/activity"
	"tracker/internal/domain/ticket"
	"tracker/internal/domain/user"
	"tracker/internal/shared/logger"
)

const (
	dashboardRecentTickets  = 10
	dashboardRecentActivity = 15
)

type GetDashboardUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo activity.Repository
	userRepo     user.Repository
	cache        StatsCache
	logger       logger.Interface
}

func NewGetDashboardUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo activity.Repository,
	userRepo user.Repository,
	cache StatsCache,
	logger logger.Interface,
) *GetDashboardUseCase {
	if cache == nil {
		cache = NopStatsCache{}
	}
	return &GetDashboardUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		cache:        cache,
		logger:       logger,
	}
}

func (uc *GetDashboardUseCase) Execute(ctx context.Context, actor Actor) (*dto.DashboardDTO, error) {
	stats, err := uc.stats(ctx)
	if err != nil {
		return nil, err
	}

	mine, err := uc.ticketRepo.CountActiveAssignedTo(ctx, actor.ID)
	if err != nil {
		uc.logger.Errorw("failed to count assigned tickets", "actor_id", actor.ID, "error", err)
		return nil, err
	}

	recent, err := uc.ticketRepo.List(ctx, ticket.TicketFilter{Limit: dashboardRecentTickets})
	if err != nil {
		uc.logger.Errorw("failed to list recent tickets", "error", err)
		return nil, err
	}
	ids := make([]uint, 0, len(recent)*2)
	for _, t := range recent {
		ids = append(ids, t.CreatorID(), optionalID(t.AssigneeID()))
	}
	names, err := resolveNames(ctx, uc.userRepo, ids...)
	if err != nil {
		return nil, err
	}

	records, err := uc.activityRepo.List(ctx, activity.Filter{Limit: dashboardRecentActivity})
	if err != nil {
		uc.logger.Errorw("failed to list recent activity", "error", err)
		return nil, err
	}

	return &dto.DashboardDTO{
		Stats:          *stats,
		MyAssigned:     mine,
		RecentTickets:  dto.ToTicketDTOs(recent, names),
		RecentActivity: dto.ToActivityDTOs(records),
	}, nil
}

// stats reads through the cache. Cache failures fall back to the database.
func (uc *GetDashboardUseCase) stats(ctx context.Context) (*dto.StatsDTO, error) {
	cached, ok, err := uc.cache.Get(ctx)
	if err != nil {
		uc.logger.Warnw("stats cache read failed", "error", err)
	}
	if ok && cached != nil {
		return cached, nil
	}

	counts, err := uc.ticketRepo.CountByStatus(ctx)
	if err != nil {
		uc.logger.Errorw("failed to count tickets by status", "error", err)
		return nil, err
	}
	stats := dto.StatsFromCounts(counts)

	if err := uc.cache.Set(ctx, stats); err != nil {
		uc.logger.Warnw("stats cache write failed", "error", err)
	}
	return &stats, nil
}
