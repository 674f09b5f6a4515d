package repository

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tracker/internal/domain/ticket"
	vo "tracker/internal/domain/ticket/valueobjects"
	"tracker/internal/infrastructure/persistence/mappers"
	"tracker/internal/infrastructure/persistence/models"
	"tracker/internal/shared/db"
	"tracker/internal/shared/errors"
)

// columns written by Update; identity and creation fields never change
var ticketUpdateColumns = []string{
	"title", "description", "status", "priority", "category",
	"assigned_to", "updated_at", "resolved_at",
}

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("Ticket number already taken", t.Number())
		}
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	return t.SetID(model.ID)
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	// Select forces nil assigned_to / resolved_at to be written.
	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ?", model.ID).
		Select(ticketUpdateColumns).
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}

	// RowsAffected may be 0 on MySQL when the values are unchanged.
	return nil
}

func (r *TicketRepository) Touch(ctx context.Context, id uint, at time.Time) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ?", id).
		UpdateColumn("updated_at", at.UnixMilli())
	if result.Error != nil {
		return fmt.Errorf("failed to touch ticket: %w", result.Error)
	}
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate issues SELECT ... FOR UPDATE. SQLite has no row locks; its
// dialect drops the clause and the single connection serializes writers.
func (r *TicketRepository) GetByIDForUpdate(ctx context.Context, id uint) (*ticket.Ticket, error) {
	return r.getByID(ctx, id, true)
}

func (r *TicketRepository) getByID(ctx context.Context, id uint, lock bool) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)
	if lock {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	if err := tx.First(&model, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("Ticket not found")
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TicketModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority.String())
	}
	if filter.Category != nil {
		query = query.Where("category = ?", filter.Category.String())
	}
	switch filter.Assignment {
	case ticket.AssignmentUser:
		query = query.Where("assigned_to = ?", filter.AssigneeID)
	case ticket.AssignmentUnassigned:
		query = query.Where("assigned_to IS NULL")
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := db.ContainsPattern(search)
		query = query.Where(
			"(LOWER(ticket_number) LIKE ? "+db.LikeEscape+
				" OR LOWER(title) LIKE ? "+db.LikeEscape+
				" OR LOWER(description) LIKE ? "+db.LikeEscape+")",
			pattern, pattern, pattern,
		)
	}

	query = query.Order("created_at DESC").Order("id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []models.TicketModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets := make([]*ticket.Ticket, 0, len(rows))
	for i := range rows {
		t, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

func (r *TicketRepository) CountByStatus(ctx context.Context) (map[vo.TicketStatus]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.TicketModel{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count tickets by status: %w", err)
	}

	counts := make(map[vo.TicketStatus]int64, len(vo.AllStatuses))
	for _, s := range vo.AllStatuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[vo.TicketStatus(row.Status)] = row.Total
	}
	return counts, nil
}

func (r *TicketRepository) CountActiveAssignedTo(ctx context.Context, userID uint) (int64, error) {
	var total int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.TicketModel{}).
		Where("assigned_to = ?", userID).
		Where("status IN ?", []string{vo.StatusOpen.String(), vo.StatusInProgress.String()}).
		Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count assigned tickets: %w", err)
	}
	return total, nil
}
