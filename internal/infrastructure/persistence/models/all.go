package models

// All returns every persistence model, in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&UserModel{},
		&TicketModel{},
		&CommentModel{},
		&AttachmentModel{},
		&ActivityLogModel{},
	}
}
