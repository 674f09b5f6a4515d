package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	ContentTypeJSON = "application/json"

	// Context keys set by the auth middleware
	ContextKeyUserID    = "user_id"
	ContextKeyUserName  = "user_name"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableUsers           = "users"
	TableTickets         = "tickets"
	TableTicketComments  = "ticket_comments"
	TableAttachments     = "ticket_attachments"
	TableActivityEntries = "activity_log"

	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgUnauthorized        = "Unauthorized access"
)
