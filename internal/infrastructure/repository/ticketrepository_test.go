package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"tracker/internal/domain/ticket"
	vo "tracker/internal/domain/ticket/valueobjects"
	"tracker/internal/infrastructure/persistence/mappers"
	"tracker/internal/infrastructure/persistence/models"
	"tracker/internal/infrastructure/persistence/testutil"
	"tracker/internal/shared/errors"
)

var baseTime = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func saveTicket(t *testing.T, repo *TicketRepository, number, title, description string, creatorID uint, assigneeID *uint, at time.Time) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket(number, title, description, vo.PriorityMedium, vo.CategoryNetwork, creatorID, assigneeID, at)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), tk))
	return tk
}

func uintPtr(v uint) *uint { return &v }

func setupTicketRepo(t *testing.T) (*gorm.DB, *TicketRepository, uint, uint) {
	db := testutil.NewTestDB(t)
	alice := testutil.SeedUser(t, db, "alice", "Alice Admin")
	bob := testutil.SeedUser(t, db, "bob", "Bob Tech")
	return db, NewTicketRepository(db), alice.ID(), bob.ID()
}

func TestTicketRepository_Create(t *testing.T) {
	ctx := context.Background()
	gdb, repo, alice, bob := setupTicketRepo(t)

	t.Run("assigns id and round trips", func(t *testing.T) {
		tk := saveTicket(t, repo, "TKT-2026-0001", "Router down", "Core router offline", alice, uintPtr(bob), baseTime)
		assert.NotZero(t, tk.ID())

		found, err := repo.GetByID(ctx, tk.ID())
		require.NoError(t, err)
		assert.Equal(t, "TKT-2026-0001", found.Number())
		assert.Equal(t, "Router down", found.Title())
		assert.Equal(t, vo.StatusOpen, found.Status())
		assert.Equal(t, alice, found.CreatorID())
		require.NotNil(t, found.AssigneeID())
		assert.Equal(t, bob, *found.AssigneeID())
		assert.True(t, found.CreatedAt().Equal(baseTime))
		assert.Nil(t, found.ResolvedAt())
	})

	t.Run("duplicate number is a conflict", func(t *testing.T) {
		saveTicket(t, repo, "TKT-2026-0002", "First", "", alice, nil, baseTime)

		dup, err := ticket.NewTicket("TKT-2026-0002", "Second", "", vo.PriorityLow, vo.CategoryOther, alice, nil, baseTime)
		require.NoError(t, err)
		err = repo.Create(ctx, dup)
		require.Error(t, err)
		assert.True(t, errors.IsConflictError(err))
		assert.Zero(t, dup.ID())

		// the driver's own error is what the repository classifies
		raw := gdb.WithContext(ctx).Create(mappers.NewTicketMapper().ToModel(dup)).Error
		require.Error(t, raw)
		assert.True(t, errors.IsDuplicateError(raw), "unclassified driver error: %v", raw)
	})
}

func TestTicketRepository_GetByID_NotFound(t *testing.T) {
	_, repo, _, _ := setupTicketRepo(t)

	_, err := repo.GetByID(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestTicketRepository_Update(t *testing.T) {
	ctx := context.Background()
	_, repo, alice, bob := setupTicketRepo(t)

	tk := saveTicket(t, repo, "TKT-2026-0001", "Printer jam", "", alice, uintPtr(bob), baseTime)

	resolved := vo.StatusResolved
	title := "Printer jam on floor 2"
	later := baseTime.Add(time.Hour)
	require.NoError(t, tk.Apply(ticket.Update{
		Title:    &title,
		Status:   &resolved,
		Assignee: ticket.AssigneeChange{Set: true},
	}, later))
	require.NoError(t, repo.Update(ctx, tk))

	found, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, title, found.Title())
	assert.Equal(t, vo.StatusResolved, found.Status())
	assert.Nil(t, found.AssigneeID(), "unassign must write NULL")
	require.NotNil(t, found.ResolvedAt())
	assert.True(t, found.ResolvedAt().Equal(later))
	assert.True(t, found.UpdatedAt().Equal(later))
	assert.True(t, found.CreatedAt().Equal(baseTime))
	assert.Equal(t, "TKT-2026-0001", found.Number())
}

func TestTicketRepository_Touch(t *testing.T) {
	ctx := context.Background()
	gdb, repo, alice, bob := setupTicketRepo(t)

	tk := saveTicket(t, repo, "TKT-2026-0001", "VPN flaps", "", alice, nil, baseTime)

	// a write this instance never saw
	require.NoError(t, gdb.Model(&models.TicketModel{}).
		Where("id = ?", tk.ID()).
		Updates(map[string]any{"status": string(vo.StatusInProgress), "assigned_to": bob}).Error)

	later := baseTime.Add(time.Hour)
	require.NoError(t, repo.Touch(ctx, tk.ID(), later))

	found, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.True(t, found.UpdatedAt().Equal(later))
	assert.Equal(t, vo.StatusInProgress, found.Status())
	require.NotNil(t, found.AssigneeID())
	assert.Equal(t, bob, *found.AssigneeID())
	assert.Equal(t, "VPN flaps", found.Title())
}

func TestTicketRepository_GetByIDForUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("reads like GetByID on sqlite", func(t *testing.T) {
		_, repo, alice, _ := setupTicketRepo(t)
		tk := saveTicket(t, repo, "TKT-2026-0001", "Disk full", "", alice, nil, baseTime)

		found, err := repo.GetByIDForUpdate(ctx, tk.ID())
		require.NoError(t, err)
		assert.Equal(t, "TKT-2026-0001", found.Number())

		_, err = repo.GetByIDForUpdate(ctx, 999)
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("emits FOR UPDATE on mysql", func(t *testing.T) {
		gdb, err := gorm.Open(mysql.New(mysql.Config{
			DSN:                       "tracker:tracker@tcp(127.0.0.1:3306)/tracker?parseTime=true",
			SkipInitializeWithVersion: true,
		}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
		require.NoError(t, err)

		var statements []string
		require.NoError(t, gdb.Callback().Query().After("gorm:query").Register("test:capture_sql", func(d *gorm.DB) {
			statements = append(statements, d.Statement.SQL.String())
		}))
		repo := NewTicketRepository(gdb)

		// dry run rows are empty; only the generated SQL matters here
		_, _ = repo.GetByIDForUpdate(ctx, 7)
		_, _ = repo.GetByID(ctx, 7)

		require.Len(t, statements, 2)
		assert.Contains(t, statements[0], "FOR UPDATE")
		assert.NotContains(t, statements[1], "FOR UPDATE")
	})
}

func TestTicketRepository_List(t *testing.T) {
	ctx := context.Background()
	_, repo, alice, bob := setupTicketRepo(t)

	t1 := saveTicket(t, repo, "TKT-2026-0001", "Router reboot loop", "", alice, uintPtr(bob), baseTime)
	t2 := saveTicket(t, repo, "TKT-2026-0002", "VPN slow", "Probably the ROUTER again", alice, nil, baseTime.Add(time.Minute))
	t3 := saveTicket(t, repo, "TKT-2026-0003", "Disk full", "100% used", bob, nil, baseTime.Add(2*time.Minute))

	closed := vo.StatusClosed
	require.NoError(t, t3.Apply(ticket.Update{Status: &closed}, baseTime.Add(3*time.Minute)))
	require.NoError(t, repo.Update(ctx, t3))

	ids := func(ts []*ticket.Ticket) []uint {
		out := make([]uint, 0, len(ts))
		for _, tk := range ts {
			out = append(out, tk.ID())
		}
		return out
	}

	t.Run("no filter returns newest first", func(t *testing.T) {
		got, err := repo.List(ctx, ticket.TicketFilter{})
		require.NoError(t, err)
		assert.Equal(t, []uint{t3.ID(), t2.ID(), t1.ID()}, ids(got))
	})

	t.Run("search is case-insensitive across title and description", func(t *testing.T) {
		got, err := repo.List(ctx, ticket.TicketFilter{Search: "router"})
		require.NoError(t, err)
		assert.Equal(t, []uint{t2.ID(), t1.ID()}, ids(got))
	})

	t.Run("search matches ticket number", func(t *testing.T) {
		got, err := repo.List(ctx, ticket.TicketFilter{Search: "tkt-2026-0003"})
		require.NoError(t, err)
		assert.Equal(t, []uint{t3.ID()}, ids(got))
	})

	t.Run("search treats wildcards literally", func(t *testing.T) {
		got, err := repo.List(ctx, ticket.TicketFilter{Search: "100%"})
		require.NoError(t, err)
		assert.Equal(t, []uint{t3.ID()}, ids(got))

		got, err = repo.List(ctx, ticket.TicketFilter{Search: "_"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("unassigned", func(t *testing.T) {
		got, err := repo.List(ctx, ticket.TicketFilter{Assignment: ticket.AssignmentUnassigned})
		require.NoError(t, err)
		assert.Equal(t, []uint{t3.ID(), t2.ID()}, ids(got))
	})

	t.Run("assigned to user", func(t *testing.T) {
		got, err := repo.List(ctx, ticket.TicketFilter{Assignment: ticket.AssignmentUser, AssigneeID: bob})
		require.NoError(t, err)
		assert.Equal(t, []uint{t1.ID()}, ids(got))
	})

	t.Run("status combined with search", func(t *testing.T) {
		open := vo.StatusOpen
		got, err := repo.List(ctx, ticket.TicketFilter{Status: &open, Search: "disk"})
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = repo.List(ctx, ticket.TicketFilter{Status: &closed})
		require.NoError(t, err)
		assert.Equal(t, []uint{t3.ID()}, ids(got))
	})

	t.Run("priority and category", func(t *testing.T) {
		high := vo.PriorityHigh
		got, err := repo.List(ctx, ticket.TicketFilter{Priority: &high})
		require.NoError(t, err)
		assert.Empty(t, got)

		network := vo.CategoryNetwork
		got, err = repo.List(ctx, ticket.TicketFilter{Category: &network})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("limit", func(t *testing.T) {
		got, err := repo.List(ctx, ticket.TicketFilter{Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, []uint{t3.ID(), t2.ID()}, ids(got))
	})
}

func TestTicketRepository_Counts(t *testing.T) {
	ctx := context.Background()
	_, repo, alice, bob := setupTicketRepo(t)

	saveTicket(t, repo, "TKT-2026-0001", "One", "", alice, uintPtr(bob), baseTime)
	t2 := saveTicket(t, repo, "TKT-2026-0002", "Two", "", alice, uintPtr(bob), baseTime)
	saveTicket(t, repo, "TKT-2026-0003", "Three", "", alice, nil, baseTime)

	resolved := vo.StatusResolved
	require.NoError(t, t2.Apply(ticket.Update{Status: &resolved}, baseTime))
	require.NoError(t, repo.Update(ctx, t2))

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[vo.StatusOpen])
	assert.Equal(t, int64(1), counts[vo.StatusResolved])
	assert.Equal(t, int64(0), counts[vo.StatusInProgress])
	assert.Equal(t, int64(0), counts[vo.StatusClosed])

	active, err := repo.CountActiveAssignedTo(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, int64(1), active)
}
