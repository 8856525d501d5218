package models

// All lists every model, in dependency order, for AutoMigrate in tests and
// the auto-migrate server flag.
func All() []any {
	return []any{
		&UserModel{},
		&TicketModel{},
		&TicketReviewerModel{},
		&TicketSharedUserModel{},
		&TicketStatusHistoryModel{},
		&TicketCommentModel{},
		&CanvassFormModel{},
		&CanvassAttachmentModel{},
		&NotificationModel{},
	}
}
