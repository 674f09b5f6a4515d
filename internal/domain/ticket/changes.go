package ticket

import vo "tracker/internal/domain/ticket/valueobjects"

// Snapshot holds the fields whose changes are written to the audit log.
type Snapshot struct {
	Status     vo.TicketStatus
	Priority   vo.Priority
	AssigneeID *uint
}

type Field string

const (
	FieldStatus   Field = "status"
	FieldPriority Field = "priority"
	FieldAssignee Field = "assignee"
)

// FieldChange is one audited field that differs between two snapshots.
// Old and New hold the status or priority strings; for the assignee they are
// empty and OldAssignee / NewAssignee carry the user IDs instead.
type FieldChange struct {
	Field       Field
	Old         string
	New         string
	OldAssignee *uint
	NewAssignee *uint
}

// Diff returns the audited fields that differ between before and after,
// in the order status, priority, assignee.
func Diff(before, after Snapshot) []FieldChange {
	var changes []FieldChange
	if before.Status != after.Status {
		changes = append(changes, FieldChange{
			Field: FieldStatus,
			Old:   before.Status.String(),
			New:   after.Status.String(),
		})
	}
	if before.Priority != after.Priority {
		changes = append(changes, FieldChange{
			Field: FieldPriority,
			Old:   before.Priority.String(),
			New:   after.Priority.String(),
		})
	}
	if !sameID(before.AssigneeID, after.AssigneeID) {
		changes = append(changes, FieldChange{
			Field:       FieldAssignee,
			OldAssignee: copyID(before.AssigneeID),
			NewAssignee: copyID(after.AssigneeID),
		})
	}
	return changes
}

func sameID(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
