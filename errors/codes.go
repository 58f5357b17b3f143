package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Request outcome codes carried by normalized request errors.
const (
	// ErrCodeBadRequest marks a 4xx response rejected by status validation.
	ErrCodeBadRequest ErrorCode = "ERR_BAD_REQUEST"
	// ErrCodeBadResponse marks any other response rejected by status validation.
	ErrCodeBadResponse ErrorCode = "ERR_BAD_RESPONSE"
	// ErrCodeNetwork marks a transport failure reported by the platform.
	ErrCodeNetwork ErrorCode = "ERR_NETWORK"
	// ErrCodeTimeout marks a platform failure caused by a timeout.
	ErrCodeTimeout ErrorCode = "ECONNABORTED"
	// ErrCodeCanceled marks a call canceled by its caller.
	ErrCodeCanceled ErrorCode = "ERR_CANCELED"
)

// Configuration codes.
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Platform codes.
const (
	// ErrCodeUnavailable indicates the platform refused to start an operation.
	ErrCodeUnavailable ErrorCode = "UNAVAILABLE"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeNetwork:     true,
	ErrCodeTimeout:     true,
	ErrCodeBadResponse: true,
	ErrCodeUnavailable: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
// The adapter never retries; the flag is informational for callers.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
