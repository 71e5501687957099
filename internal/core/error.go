package core

// Error codes
const (
	ErrCodeInvalidNotation = "INVALID_NOTATION"
	ErrCodePathNotFound    = "PATH_NOT_FOUND"
	ErrCodeNoPath          = "NO_PATH"
	ErrCodeInvalidRequest  = "INVALID_REQUEST"
	ErrCodeRateLimit       = "RATE_LIMIT_EXCEEDED"
	ErrCodeInvalidContent  = "INVALID_CONTENT_TYPE"
	ErrCodeStorageDisabled = "STORAGE_DISABLED"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeInternalError   = "INTERNAL_ERROR"
	ErrCodeQueueFull       = "QUEUE_FULL"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
