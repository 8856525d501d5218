package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	HeaderAuthorization = "Authorization"

	// Context keys set by the auth middleware
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"

	MaxQuotations    = 4
	MaxShareTargets  = 50
	MaxCommentLength = 5000
	MaxAvatarSize    = 5 << 20

	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"
)
