package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"tracker/internal/domain/ticket"
	"tracker/internal/infrastructure/persistence/models"
	"tracker/internal/shared/db"
)

// TicketNumberGenerator derives the next number from the highest one already
// issued for the year. It holds no counter of its own: two creators reading
// the same maximum both compute the same number and the unique index on
// ticket_number rejects the second insert, which the caller retries.
type TicketNumberGenerator struct {
	db     *gorm.DB
	prefix string
}

func NewTicketNumberGenerator(db *gorm.DB, prefix string) *TicketNumberGenerator {
	return &TicketNumberGenerator{db: db, prefix: prefix}
}

func (g *TicketNumberGenerator) Next(ctx context.Context, year int) (string, error) {
	head := ticket.NumberPrefix(g.prefix, year)

	// Longest first so TKT-2024-10000 sorts above TKT-2024-9999.
	var numbers []string
	err := db.GetTxFromContext(ctx, g.db).
		Model(&models.TicketModel{}).
		Where("ticket_number LIKE ? "+db.LikeEscape, db.PrefixPattern(head)).
		Order("LENGTH(ticket_number) DESC").
		Order("ticket_number DESC").
		Limit(1).
		Pluck("ticket_number", &numbers).Error
	if err != nil {
		return "", fmt.Errorf("failed to read last ticket number: %w", err)
	}

	seq := 1
	if len(numbers) > 0 {
		last, err := ticket.ParseSequence(numbers[0], g.prefix, year)
		if err != nil {
			return "", err
		}
		seq = last + 1
	}

	return ticket.FormatNumber(g.prefix, year, seq), nil
}
