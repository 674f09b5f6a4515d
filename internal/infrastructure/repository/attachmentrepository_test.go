package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/internal/domain/ticket"
	"tracker/internal/shared/errors"
)

func TestAttachmentRepository(t *testing.T) {
	ctx := context.Background()
	db, tickets, alice, _ := setupTicketRepo(t)
	repo := NewAttachmentRepository(db)

	tk := saveTicket(t, tickets, "TKT-2026-0001", "Logs attached", "", alice, nil, baseTime)

	a, err := ticket.NewAttachment(tk.ID(), alice, "3f2a9c.log", "router.log", baseTime)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, a))
	assert.NotZero(t, a.ID())

	list, err := repo.ListByTicket(ctx, tk.ID())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "router.log", list[0].OriginalName())
	assert.Equal(t, "3f2a9c.log", list[0].StoredName())

	found, err := repo.GetByStoredName(ctx, "3f2a9c.log")
	require.NoError(t, err)
	assert.Equal(t, a.ID(), found.ID())
	assert.Equal(t, alice, found.UploaderID())

	_, err = repo.GetByStoredName(ctx, "missing.log")
	assert.True(t, errors.IsNotFoundError(err))

	dup, err := ticket.NewAttachment(tk.ID(), alice, "3f2a9c.log", "again.log", baseTime)
	require.NoError(t, err)
	assert.Error(t, repo.Create(ctx, dup))
}
