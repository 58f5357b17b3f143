package adapter

import (
	stderrors "errors"
	"strings"

	"github.com/kbukum/wxadapter/errors"
	"github.com/kbukum/wxadapter/platform"
)

const networkErrorMessage = "Network Error"

// Error is the normalized rejection of a call. Response is set only when
// the call was rejected by ValidateStatus.
type Error struct {
	Message  string
	Code     errors.ErrorCode
	Config   *Config
	Request  platform.Handle
	Response *Response
}

func (e *Error) Error() string {
	return e.Message
}

// Retryable reports whether the code marks a transient failure.
func (e *Error) Retryable() bool {
	return errors.IsRetryableCode(e.Code)
}

func createError(message string, cfg *Config, code errors.ErrorCode, h platform.Handle, resp *Response) *Error {
	return &Error{
		Message:  message,
		Code:     code,
		Config:   cfg,
		Request:  h,
		Response: resp,
	}
}

// failureError converts a platform failure into an Error without response.
func failureError(f *platform.Failure, cfg *Config, h platform.Handle) *Error {
	msg := networkErrorMessage
	if f != nil && f.ErrMsg != "" {
		msg = f.ErrMsg
	}
	code := errors.ErrCodeNetwork
	if strings.Contains(strings.ToLower(msg), "timeout") {
		code = errors.ErrCodeTimeout
	}
	return createError(msg, cfg, code, h, nil)
}

// AsError extracts an *Error from err.
func AsError(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}
