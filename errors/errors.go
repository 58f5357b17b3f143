package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is a coded error raised before a request reaches the platform.
type AppError struct {
	Code      ErrorCode      `json:"code"`
	Message   string         `json:"message"`
	Retryable bool           `json:"retryable"`
	Details   map[string]any `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is an *AppError with the same code, so that
// errors.Is(err, errors.New(ErrCodeMissingField, "")) matches any missing
// field.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// WithDetail records key in Details and returns e.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	e.Details[key] = value
	return e
}

// New returns an AppError whose Retryable flag follows the code.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Retryable: IsRetryableCode(code)}
}

// Validation reports one or more rejected fields.
func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message)
}

// MissingField reports a required field left empty.
func MissingField(field string) *AppError {
	return New(ErrCodeMissingField, "missing required field: "+field).WithDetail("field", field)
}

// AsAppError finds the first *AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
