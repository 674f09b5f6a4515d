package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/internal/domain/activity"
)

func strPtr(s string) *string { return &s }

func TestActivityRepository(t *testing.T) {
	ctx := context.Background()
	db, tickets, alice, bob := setupTicketRepo(t)
	repo := NewActivityRepository(db)

	t1 := saveTicket(t, tickets, "TKT-2026-0001", "One", "", alice, nil, baseTime)
	t2 := saveTicket(t, tickets, "TKT-2026-0012", "Two", "", bob, nil, baseTime)

	appendEntry := func(ticketID, actorID uint, action activity.Action, oldV, newV *string, at time.Time) *activity.Entry {
		e, err := activity.NewEntry(ticketID, actorID, action, oldV, newV, at)
		require.NoError(t, err)
		require.NoError(t, repo.Append(ctx, e))
		return e
	}

	day1 := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 2, 23, 59, 59, 0, time.UTC)
	day3 := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	created := appendEntry(t1.ID(), alice, activity.ActionCreated, nil, strPtr("TKT-2026-0001"), day1)
	status := appendEntry(t1.ID(), bob, activity.ActionStatusChanged, strPtr("open"), strPtr("in_progress"), day2)
	ghost := appendEntry(t2.ID(), 4242, activity.ActionCommented, nil, strPtr("hello"), day3)

	t.Run("for ticket newest first with joined names", func(t *testing.T) {
		got, err := repo.ListForTicket(ctx, t1.ID())
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, status.ID(), got[0].Entry.ID())
		assert.Equal(t, "Bob Tech", got[0].ActorName)
		assert.Equal(t, "TKT-2026-0001", got[0].TicketNumber)
		assert.Equal(t, "open", *got[0].Entry.OldValue())
		assert.Equal(t, "in_progress", *got[0].Entry.NewValue())

		assert.Equal(t, created.ID(), got[1].Entry.ID())
		assert.Nil(t, got[1].Entry.OldValue())
		assert.True(t, got[1].Entry.CreatedAt().Equal(day1))
	})

	t.Run("unknown actor keeps the entry with an empty name", func(t *testing.T) {
		got, err := repo.ListForTicket(ctx, t2.ID())
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, ghost.ID(), got[0].Entry.ID())
		assert.Empty(t, got[0].ActorName)
	})

	t.Run("ticket number substring", func(t *testing.T) {
		got, err := repo.List(ctx, activity.Filter{TicketNumber: "0012"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "TKT-2026-0012", got[0].TicketNumber)
	})

	t.Run("inclusive range", func(t *testing.T) {
		from := day1
		to := day2
		got, err := repo.List(ctx, activity.Filter{From: &from, To: &to})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, status.ID(), got[0].Entry.ID())
		assert.Equal(t, created.ID(), got[1].Entry.ID())
	})

	t.Run("limit keeps the newest", func(t *testing.T) {
		got, err := repo.List(ctx, activity.Filter{Limit: 1})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, ghost.ID(), got[0].Entry.ID())
	})
}
