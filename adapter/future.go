package adapter

import (
	"context"
	"sync"
)

// Future is the single-shot result of a dispatched call.
type Future struct {
	once sync.Once
	done chan struct{}
	resp *Response
	err  error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) resolve(resp *Response) bool {
	return f.complete(resp, nil)
}

func (f *Future) reject(err error) bool {
	return f.complete(nil, err)
}

func (f *Future) complete(resp *Response, err error) bool {
	settled := false
	f.once.Do(func() {
		f.resp, f.err = resp, err
		close(f.done)
		settled = true
	})
	return settled
}

// Done is closed when the call settles.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Result blocks until the call settles.
func (f *Future) Result() (*Response, error) {
	<-f.done
	return f.resp, f.err
}

// Wait blocks until the call settles or ctx is done. Giving up on ctx
// does not cancel the call.
func (f *Future) Wait(ctx context.Context) (*Response, error) {
	select {
	case <-f.done:
		return f.resp, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
