package adapter

import (
	"context"
	"sync"

	"github.com/kbukum/wxadapter/logger"
	"github.com/kbukum/wxadapter/observability"
	"github.com/kbukum/wxadapter/platform"
)

type status int

const (
	statusPending status = iota
	statusSucceeded
	statusFailed
)

// Settlement outcomes recorded on spans, metrics and logs.
const (
	outcomeSucceeded = "succeeded"
	outcomeFailed    = "failed"
	outcomeCanceled  = "canceled"
)

// call is the state of one in-flight operation. status only moves out of
// pending once; handle and listeners are held from after-send until that
// transition.
type call struct {
	id     string
	kind   Kind
	cfg    *Config
	future *Future

	log     *logger.Logger
	metrics *observability.Metrics
	op      *observability.Operation
	ctx     context.Context

	mu        sync.Mutex
	status    status
	handle    platform.Handle
	listeners *listeners
}

// options builds the call options shell with the settlement callbacks.
func (c *call) options(url string) *platform.Options {
	return &platform.Options{
		URL:      url,
		Header:   c.cfg.Headers,
		Timeout:  c.cfg.Timeout,
		Success:  c.onSuccess,
		Fail:     c.onFail,
		Complete: c.onComplete,
	}
}

// attach stores the handle and runs after-send, unless the primitive
// already settled the call before returning.
func (c *call) attach(h platform.Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != statusPending {
		return
	}
	c.handle = h
	c.listeners = afterSend(c.kind, h, c.cfg)
}

// watch drives the cancellation path from the token or ctx until the
// call settles.
func (c *call) watch(ctx context.Context) {
	token := c.cfg.CancelToken
	var tokenDone <-chan struct{}
	if token != nil {
		tokenDone = token.Done()
	}
	if tokenDone == nil && ctx.Done() == nil {
		return
	}

	go func() {
		select {
		case <-tokenDone:
			c.cancel(token.Reason())
		case <-ctx.Done():
			c.cancel(ctx.Err())
		case <-c.future.Done():
		}
	}()
}

// transition moves a pending call to the terminal status, detaches its
// listeners and releases the handle. It returns the handle held at that
// point, and false if the call had already settled.
func (c *call) transition(to status, callback string) (platform.Handle, bool) {
	c.mu.Lock()
	if c.status != statusPending {
		c.mu.Unlock()
		c.ignored(callback)
		return nil, false
	}
	c.status = to
	h := c.handle
	if h != nil {
		onComplete(h, c.listeners)
	}
	c.handle = nil
	c.listeners = nil
	c.mu.Unlock()
	return h, true
}

func (c *call) onSuccess(res *platform.Result) {
	h, ok := c.transition(statusSucceeded, "success")
	if !ok {
		return
	}
	if res == nil {
		res = &platform.Result{}
	}
	c.op.SetStatusCode(res.StatusCode)

	resp := newResponse(c.kind, res, c.cfg, h)
	if err := settle(c.future, resp); err != nil {
		c.finish(outcomeFailed, err)
		return
	}
	c.finish(outcomeSucceeded, nil)
}

func (c *call) onFail(f *platform.Failure) {
	h, ok := c.transition(statusFailed, "fail")
	if !ok {
		return
	}
	err := failureError(f, c.cfg, h)
	c.finish(outcomeFailed, err)
	c.future.reject(err)
}

func (c *call) onComplete() {
	c.log.Debug("platform complete")
}

// cancel aborts the held operation and rejects with reason. Without a
// held handle the call has settled and cancel is a no-op.
func (c *call) cancel(reason error) {
	c.mu.Lock()
	if c.status != statusPending || c.handle == nil {
		c.mu.Unlock()
		return
	}
	c.status = statusFailed
	h := c.handle
	onComplete(h, c.listeners)
	c.mu.Unlock()

	// Abort runs unlocked: a platform may report the abort through Fail.
	h.Abort()

	c.mu.Lock()
	c.handle = nil
	c.listeners = nil
	c.mu.Unlock()

	c.log.Info("call canceled", logger.Fields(logger.FieldError, reason.Error()))
	c.finish(outcomeCanceled, reason)
	c.future.reject(reason)
}

// rejectEarly settles a call that holds no handle.
func (c *call) rejectEarly(outcome string, err error) {
	c.mu.Lock()
	if c.status != statusPending {
		c.mu.Unlock()
		return
	}
	c.status = statusFailed
	c.mu.Unlock()
	c.finish(outcome, err)
	c.future.reject(err)
}

func (c *call) ignored(callback string) {
	c.log.Warn("ignoring platform callback after settlement", logger.Fields("callback", callback))
	c.metrics.RecordIgnoredCallback(c.ctx, c.kind.String(), callback)
}

func (c *call) finish(outcome string, err error) {
	c.op.End(c.ctx, outcome, err)

	fields := logger.Fields(
		logger.FieldOutcome, outcome,
		logger.FieldDuration, c.op.Elapsed().Milliseconds(),
	)
	if err != nil {
		fields[logger.FieldError] = err.Error()
	}
	c.log.Debug("call settled", fields)
}
