package usecases

import (
	"context"
	"strings"

	"tracker/internal/application/ticket/dto"
	"tracker/internal/domain/activity"
	"tracker/internal/shared/biztime"
	"tracker/internal/shared/errors"
	"tracker/internal/shared/logger"
)

// DefaultActivityLimit caps audit reports when no limit is given.
const DefaultActivityLimit = 500

// ListActivityQuery filters the audit report. Dates are YYYY-MM-DD in the
// business timezone; both ends include the whole day.
type ListActivityQuery struct {
	TicketNumber string
	StartDate    string
	EndDate      string
	Limit        int
}

type ListActivityUseCase struct {
	activityRepo activity.Repository
	defaultLimit int
	logger       logger.Interface
}

func NewListActivityUseCase(activityRepo activity.Repository, defaultLimit int, logger logger.Interface) *ListActivityUseCase {
	if defaultLimit <= 0 {
		defaultLimit = DefaultActivityLimit
	}
	return &ListActivityUseCase{
		activityRepo: activityRepo,
		defaultLimit: defaultLimit,
		logger:       logger,
	}
}

func (uc *ListActivityUseCase) Execute(ctx context.Context, query ListActivityQuery) ([]dto.ActivityDTO, error) {
	filter := activity.Filter{
		TicketNumber: strings.TrimSpace(query.TicketNumber),
		Limit:        query.Limit,
	}
	if filter.Limit <= 0 {
		filter.Limit = uc.defaultLimit
	}

	if s := strings.TrimSpace(query.StartDate); s != "" {
		d, err := biztime.ParseDate(s)
		if err != nil {
			return nil, errors.NewValidationError("Invalid start date", s)
		}
		from := biztime.StartOfDayUTC(d)
		filter.From = &from
	}
	if s := strings.TrimSpace(query.EndDate); s != "" {
		d, err := biztime.ParseDate(s)
		if err != nil {
			return nil, errors.NewValidationError("Invalid end date", s)
		}
		to := biztime.EndOfDayUTC(d)
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, errors.NewValidationError("Start date is after end date")
	}

	records, err := uc.activityRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list activity", "error", err)
		return nil, err
	}
	return dto.ToActivityDTOs(records), nil
}
