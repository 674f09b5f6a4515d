package mappers

import (
	"tracker/internal/domain/activity"
	"tracker/internal/infrastructure/persistence/models"
)

func ActivityToModel(e *activity.Entry) *models.ActivityLogModel {
	return &models.ActivityLogModel{
		ID:        e.ID(),
		TicketID:  e.TicketID(),
		UserID:    e.ActorID(),
		Action:    e.Action().String(),
		OldValue:  e.OldValue(),
		NewValue:  e.NewValue(),
		CreatedAt: e.CreatedAt().UnixMilli(),
	}
}

func ActivityRowToRecord(row *models.ActivityRecordRow) *activity.Record {
	return &activity.Record{
		Entry: activity.ReconstructEntry(
			row.ID,
			row.TicketID,
			row.UserID,
			activity.Action(row.Action),
			row.OldValue,
			row.NewValue,
			MillisToTime(row.CreatedAt),
		),
		TicketNumber: row.TicketNumber,
		ActorName:    row.ActorName,
	}
}
