package httpclient

import (
	"context"
	"errors"
	"io/fs"
	"net"

	"github.com/kbukum/wxadapter/platform"
	"github.com/kbukum/wxadapter/resilience"
)

// ErrorCode classifies transfer failures. It is reported as the ErrNo of
// the platform failure.
type ErrorCode int

const (
	// ErrCodeConnection indicates a connection failure (refused, DNS, reset).
	ErrCodeConnection ErrorCode = iota + 1
	// ErrCodeTimeout indicates the call exceeded its timeout.
	ErrCodeTimeout
	// ErrCodeAborted indicates the call was aborted or the client closed.
	ErrCodeAborted
	// ErrCodeBusy indicates no transfer slot became available.
	ErrCodeBusy
	// ErrCodeFile indicates a local file could not be read or written.
	ErrCodeFile
	// ErrCodeInvalidRequest indicates the request could not be built.
	ErrCodeInvalidRequest
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeConnection:
		return "connection"
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeAborted:
		return "abort"
	case ErrCodeBusy:
		return "busy"
	case ErrCodeFile:
		return "file"
	case ErrCodeInvalidRequest:
		return "invalid_request"
	default:
		return "unknown"
	}
}

// Error is a classified transfer failure.
type Error struct {
	// Op is the primitive name: request, uploadFile or downloadFile.
	Op string
	// Code classifies the error.
	Code ErrorCode
	// Reason is the text after ":fail ".
	Reason string
	// Err is the underlying error.
	Err error
}

func (e *Error) Error() string {
	return e.Op + ":fail " + e.Reason
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Failure converts e into the platform fail payload.
func (e *Error) Failure() *platform.Failure {
	return &platform.Failure{ErrMsg: e.Error(), ErrNo: int(e.Code)}
}

// classify wraps err for op, keeping an existing classification.
func classify(op string, err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return &Error{Op: op, Code: ErrCodeTimeout, Reason: "timeout", Err: err}
	case errors.Is(err, context.Canceled):
		return &Error{Op: op, Code: ErrCodeAborted, Reason: "abort", Err: err}
	case errors.Is(err, resilience.ErrBulkheadFull),
		errors.Is(err, resilience.ErrBulkheadTimeout):
		return &Error{Op: op, Code: ErrCodeBusy, Reason: "exceed max task count", Err: err}
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return &Error{Op: op, Code: ErrCodeFile, Reason: pathErr.Error(), Err: err}
	}
	return &Error{Op: op, Code: ErrCodeConnection, Reason: err.Error(), Err: err}
}

func invalidRequest(op string, err error) *Error {
	return &Error{Op: op, Code: ErrCodeInvalidRequest, Reason: err.Error(), Err: err}
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeTimeout
}

// IsAborted checks if an error is an abort.
func IsAborted(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeAborted
}
