package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Tenant scope ──────────────────────────────────────────────────
	ErrMissingScope ErrCode = "MISSING_SCOPE"
	ErrInvalidScope ErrCode = "INVALID_SCOPE"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrInvalidSort    ErrCode = "INVALID_SORT_KEY"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrConflict         ErrCode = "CONFLICT"
	ErrDuplicateMark    ErrCode = "DUPLICATE_MARK"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"

	// ─── Persistence ───────────────────────────────────────────────────
	ErrTimeout          ErrCode = "TIMEOUT"
	ErrStoreUnavailable ErrCode = "STORE_UNAVAILABLE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Invalid email or password."
	case ErrSessionInvalidated:
		return "Your session has ended. Please log in again."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid."

	// ─── Tenant scope ──────────────────────────────────────────────────
	case ErrMissingScope:
		return "The X-Branch-ID header is required."
	case ErrInvalidScope:
		return "The X-Branch-ID header is not a valid branch identifier."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "The request payload is invalid."
	case ErrInvalidSort:
		return "The sort key is not supported."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "The resource was not found."
	case ErrConflict:
		return "The resource already exists."
	case ErrDuplicateMark:
		return "A mark already exists for this exam, subject and student. Use update instead."
	case ErrDependencyExists:
		return "The resource cannot be deleted because other data still references it."

	// ─── Persistence ───────────────────────────────────────────────────
	case ErrTimeout:
		return "The data store did not respond in time. Please retry."
	case ErrStoreUnavailable:
		return "The data store is temporarily unavailable. Please retry."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
