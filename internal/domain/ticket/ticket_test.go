package ticket

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "tracker/internal/domain/ticket/valueobjects"
	"tracker/internal/shared/errors"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var baseTime = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func uintPtr(v uint) *uint { return &v }

func strPtr(s string) *string { return &s }

func statusPtr(s vo.TicketStatus) *vo.TicketStatus { return &s }

func priorityPtr(p vo.Priority) *vo.Priority { return &p }

func newOpenTicket(t *testing.T) *Ticket {
	t.Helper()
	tk, err := NewTicket("TKT-2024-0001", "Router down", "core switch unreachable",
		vo.PriorityMedium, vo.CategoryNetwork, 1, nil, baseTime)
	require.NoError(t, err)
	require.NoError(t, tk.SetID(10))
	return tk
}

// ---------------------------------------------------------------------------
// Constructor
// ---------------------------------------------------------------------------

func TestNewTicket_Defaults(t *testing.T) {
	tk, err := NewTicket("TKT-2024-0001", "  VPN issue  ", "", "", "", 3, nil, baseTime)
	require.NoError(t, err)

	assert.Equal(t, "VPN issue", tk.Title())
	assert.Equal(t, vo.StatusOpen, tk.Status())
	assert.Equal(t, vo.PriorityMedium, tk.Priority())
	assert.Equal(t, vo.CategoryOther, tk.Category())
	assert.Equal(t, baseTime, tk.CreatedAt())
	assert.Equal(t, baseTime, tk.UpdatedAt())
	assert.Nil(t, tk.ResolvedAt())
	assert.False(t, tk.IsAssigned())
}

func TestNewTicket_Validation(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		priority vo.Priority
		category vo.Category
		creator  uint
		errMsg   string
	}{
		{"blank title", "   ", "", "", 1, "Title is required"},
		{"title too long", strings.Repeat("x", 201), "", "", 1, "maximum length"},
		{"unknown priority", "t", "urgent", "", 1, "Invalid priority"},
		{"unknown category", "t", "", "billing", 1, "Invalid category"},
		{"no creator", "t", "", "", 0, "Creator is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTicket("TKT-2024-0001", tt.title, "", tt.priority, tt.category, tt.creator, nil, baseTime)
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNewTicket_ZeroAssigneeMeansUnassigned(t *testing.T) {
	tk, err := NewTicket("TKT-2024-0001", "t", "", "", "", 1, uintPtr(0), baseTime)
	require.NoError(t, err)
	assert.Nil(t, tk.AssigneeID())
}

func TestSetID_OnlyOnce(t *testing.T) {
	tk := newOpenTicket(t)
	assert.Error(t, tk.SetID(11))
	assert.Equal(t, uint(10), tk.ID())
}

// ---------------------------------------------------------------------------
// Apply
// ---------------------------------------------------------------------------

func TestApply_PartialUpdateLeavesOtherFields(t *testing.T) {
	tk := newOpenTicket(t)
	later := baseTime.Add(time.Hour)

	require.NoError(t, tk.Apply(Update{Priority: priorityPtr(vo.PriorityHigh)}, later))

	assert.Equal(t, vo.PriorityHigh, tk.Priority())
	assert.Equal(t, vo.StatusOpen, tk.Status())
	assert.Equal(t, "Router down", tk.Title())
	assert.Equal(t, "core switch unreachable", tk.Description())
	assert.Nil(t, tk.AssigneeID())
	assert.Equal(t, later, tk.UpdatedAt())
}

func TestApply_BlankTitleIgnored(t *testing.T) {
	tk := newOpenTicket(t)
	require.NoError(t, tk.Apply(Update{Title: strPtr("  ")}, baseTime))
	assert.Equal(t, "Router down", tk.Title())

	require.NoError(t, tk.Apply(Update{Title: strPtr("Router flapping")}, baseTime))
	assert.Equal(t, "Router flapping", tk.Title())
}

func TestApply_DescriptionMayBeCleared(t *testing.T) {
	tk := newOpenTicket(t)
	require.NoError(t, tk.Apply(Update{Description: strPtr("")}, baseTime))
	assert.Empty(t, tk.Description())
}

func TestApply_Assignment(t *testing.T) {
	tk := newOpenTicket(t)

	require.NoError(t, tk.Apply(Update{Assignee: AssigneeChange{Set: true, ID: uintPtr(5)}}, baseTime))
	assert.True(t, tk.IsAssignedTo(5))

	// not supplied: unchanged
	require.NoError(t, tk.Apply(Update{}, baseTime))
	assert.True(t, tk.IsAssignedTo(5))

	// explicit empty: unassign
	require.NoError(t, tk.Apply(Update{Assignee: AssigneeChange{Set: true}}, baseTime))
	assert.False(t, tk.IsAssigned())
}

func TestApply_InvalidValuesRejectedWithoutMutation(t *testing.T) {
	tk := newOpenTicket(t)

	err := tk.Apply(Update{
		Title:  strPtr("new title"),
		Status: statusPtr("pending"),
	}, baseTime.Add(time.Hour))

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, "Router down", tk.Title())
	assert.Equal(t, baseTime, tk.UpdatedAt())
}

func TestApply_ResolvedAtSetOnceAndNeverReset(t *testing.T) {
	tk := newOpenTicket(t)
	t1 := baseTime.Add(1 * time.Hour)
	t2 := baseTime.Add(2 * time.Hour)
	t3 := baseTime.Add(3 * time.Hour)

	require.NoError(t, tk.Apply(Update{Status: statusPtr(vo.StatusResolved)}, t1))
	require.NotNil(t, tk.ResolvedAt())
	assert.Equal(t, t1, *tk.ResolvedAt())

	require.NoError(t, tk.Apply(Update{Status: statusPtr(vo.StatusClosed)}, t2))
	require.NotNil(t, tk.ResolvedAt())
	assert.Equal(t, t1, *tk.ResolvedAt())

	require.NoError(t, tk.Apply(Update{Status: statusPtr(vo.StatusResolved)}, t3))
	assert.Equal(t, t1, *tk.ResolvedAt())
	assert.Equal(t, t3, tk.UpdatedAt())
}

func TestApply_ResolvedToResolvedDoesNotStamp(t *testing.T) {
	resolvedAt := baseTime
	tk, err := ReconstructTicket(1, "TKT-2024-0001", "t", "", vo.StatusResolved, vo.PriorityLow,
		vo.CategoryOther, 1, nil, baseTime, baseTime, &resolvedAt)
	require.NoError(t, err)

	require.NoError(t, tk.Apply(Update{Status: statusPtr(vo.StatusResolved)}, baseTime.Add(time.Hour)))
	assert.Equal(t, baseTime, *tk.ResolvedAt())
}

func TestTouch(t *testing.T) {
	tk := newOpenTicket(t)
	later := baseTime.Add(time.Minute)
	tk.Touch(later)
	assert.Equal(t, later, tk.UpdatedAt())
	assert.Equal(t, baseTime, tk.CreatedAt())
}

// ---------------------------------------------------------------------------
// Diff
// ---------------------------------------------------------------------------

func TestDiff(t *testing.T) {
	base := Snapshot{Status: vo.StatusOpen, Priority: vo.PriorityMedium, AssigneeID: uintPtr(2)}

	tests := []struct {
		name   string
		after  Snapshot
		fields []Field
	}{
		{"nothing changed", Snapshot{Status: vo.StatusOpen, Priority: vo.PriorityMedium, AssigneeID: uintPtr(2)}, nil},
		{"priority only", Snapshot{Status: vo.StatusOpen, Priority: vo.PriorityHigh, AssigneeID: uintPtr(2)}, []Field{FieldPriority}},
		{"unassigned", Snapshot{Status: vo.StatusOpen, Priority: vo.PriorityMedium}, []Field{FieldAssignee}},
		{"everything", Snapshot{Status: vo.StatusClosed, Priority: vo.PriorityLow, AssigneeID: uintPtr(3)},
			[]Field{FieldStatus, FieldPriority, FieldAssignee}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changes := Diff(base, tt.after)
			var got []Field
			for _, c := range changes {
				got = append(got, c.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestDiff_Values(t *testing.T) {
	changes := Diff(
		Snapshot{Status: vo.StatusOpen, Priority: vo.PriorityLow},
		Snapshot{Status: vo.StatusInProgress, Priority: vo.PriorityLow, AssigneeID: uintPtr(9)},
	)
	require.Len(t, changes, 2)

	assert.Equal(t, "open", changes[0].Old)
	assert.Equal(t, "in_progress", changes[0].New)
	assert.Nil(t, changes[1].OldAssignee)
	assert.Equal(t, uint(9), *changes[1].NewAssignee)
}
