package models

const (
	TableUsers               = "users"
	TableTickets             = "tickets"
	TableTicketReviewers     = "ticket_reviewers"
	TableTicketSharedUsers   = "ticket_shared_users"
	TableTicketStatusHistory = "ticket_status_history"
	TableTicketComments      = "ticket_comments"
	TableCanvassForms        = "canvass_forms"
	TableCanvassAttachments  = "canvass_attachments"
	TableNotifications       = "notifications"
)
