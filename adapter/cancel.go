package adapter

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/kbukum/wxadapter/errors"
)

// Cancel is the reason carried by a canceled CancelToken. A call
// canceled through its token rejects with this value unchanged.
type Cancel struct {
	Message string
}

func (c *Cancel) Error() string {
	if c.Message == "" {
		return "canceled"
	}
	return c.Message
}

// Code returns ErrCodeCanceled.
func (c *Cancel) Code() errors.ErrorCode {
	return errors.ErrCodeCanceled
}

// CancelFunc cancels its token with a message. Only the first call has
// effect.
type CancelFunc func(message string)

// CancelToken is a one-shot cancellation signal that may be shared by
// several calls.
type CancelToken struct {
	once   sync.Once
	done   chan struct{}
	reason *Cancel
}

// NewCancelToken returns a token and the function that cancels it.
func NewCancelToken() (*CancelToken, CancelFunc) {
	t := &CancelToken{done: make(chan struct{})}
	return t, t.cancel
}

func (t *CancelToken) cancel(message string) {
	t.once.Do(func() {
		t.reason = &Cancel{Message: message}
		close(t.done)
	})
}

// Done is closed when the token is canceled.
func (t *CancelToken) Done() <-chan struct{} {
	return t.done
}

// Reason returns the cancellation reason, or nil while not canceled.
func (t *CancelToken) Reason() error {
	select {
	case <-t.done:
		return t.reason
	default:
		return nil
	}
}

// IsCancel reports whether err is a token cancellation or a canceled
// context.
func IsCancel(err error) bool {
	var c *Cancel
	return stderrors.As(err, &c) || stderrors.Is(err, context.Canceled)
}
