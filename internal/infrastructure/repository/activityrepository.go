package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"tracker/internal/domain/activity"
	"tracker/internal/infrastructure/persistence/mappers"
	"tracker/internal/infrastructure/persistence/models"
	"tracker/internal/shared/db"
)

const activityRecordColumns = "activity_log.id, activity_log.ticket_id, activity_log.user_id, " +
	"activity_log.action, activity_log.old_value, activity_log.new_value, activity_log.created_at, " +
	"tickets.ticket_number AS ticket_number, COALESCE(users.full_name, '') AS actor_name"

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Append(ctx context.Context, e *activity.Entry) error {
	model := mappers.ActivityToModel(e)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to append activity: %w", err)
	}
	return e.SetID(model.ID)
}

func (r *ActivityRepository) ListForTicket(ctx context.Context, ticketID uint) ([]*activity.Record, error) {
	query := r.recordQuery(ctx).Where("activity_log.ticket_id = ?", ticketID)
	return r.scan(query)
}

func (r *ActivityRepository) List(ctx context.Context, filter activity.Filter) ([]*activity.Record, error) {
	query := r.recordQuery(ctx)

	if number := strings.TrimSpace(filter.TicketNumber); number != "" {
		query = query.Where("LOWER(tickets.ticket_number) LIKE ? "+db.LikeEscape, db.ContainsPattern(number))
	}
	if filter.From != nil {
		query = query.Where("activity_log.created_at >= ?", filter.From.UnixMilli())
	}
	if filter.To != nil {
		query = query.Where("activity_log.created_at <= ?", filter.To.UnixMilli())
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	return r.scan(query)
}

// recordQuery joins entries with their ticket and actor, newest first.
func (r *ActivityRepository) recordQuery(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db).
		Table(models.ActivityLogModel{}.TableName()).
		Select(activityRecordColumns).
		Joins("JOIN tickets ON tickets.id = activity_log.ticket_id").
		Joins("LEFT JOIN users ON users.id = activity_log.user_id").
		Order("activity_log.created_at DESC").
		Order("activity_log.id DESC")
}

func (r *ActivityRepository) scan(query *gorm.DB) ([]*activity.Record, error) {
	var rows []models.ActivityRecordRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}

	records := make([]*activity.Record, 0, len(rows))
	for i := range rows {
		records = append(records, mappers.ActivityRowToRecord(&rows[i]))
	}
	return records, nil
}
