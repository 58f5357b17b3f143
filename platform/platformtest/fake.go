// Package platformtest provides a scriptable in-memory platform for tests.
package platformtest

import (
	"sync"

	"github.com/kbukum/wxadapter/platform"
)

// Primitive names recorded by FakePlatform.
const (
	PrimitiveRequest  = "request"
	PrimitiveUpload   = "uploadFile"
	PrimitiveDownload = "downloadFile"
)

// Call is one recorded primitive invocation.
type Call struct {
	Primitive string
	Options   *platform.Options
	Handle    *FakeHandle
}

// FakePlatform records primitive invocations and lets tests drive the
// callbacks by hand. OnCall, when set, runs synchronously inside the
// primitive before the handle is returned.
type FakePlatform struct {
	mu    sync.Mutex
	calls []*Call

	OnCall func(c *Call)
}

var _ platform.Platform = (*FakePlatform)(nil)

// New creates an empty FakePlatform.
func New() *FakePlatform {
	return &FakePlatform{}
}

func (p *FakePlatform) Request(opts *platform.Options) platform.Handle {
	return p.record(PrimitiveRequest, opts)
}

func (p *FakePlatform) UploadFile(opts *platform.Options) platform.Handle {
	return p.record(PrimitiveUpload, opts)
}

func (p *FakePlatform) DownloadFile(opts *platform.Options) platform.Handle {
	return p.record(PrimitiveDownload, opts)
}

func (p *FakePlatform) record(primitive string, opts *platform.Options) platform.Handle {
	c := &Call{Primitive: primitive, Options: opts, Handle: &FakeHandle{opts: opts}}
	p.mu.Lock()
	p.calls = append(p.calls, c)
	hook := p.OnCall
	p.mu.Unlock()

	if hook != nil {
		hook(c)
	}
	return c.Handle
}

// Calls returns a copy of the recorded invocations.
func (p *FakePlatform) Calls() []*Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Call, len(p.calls))
	copy(out, p.calls)
	return out
}

// Last returns the most recent invocation, or nil.
func (p *FakePlatform) Last() *Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.calls) == 0 {
		return nil
	}
	return p.calls[len(p.calls)-1]
}

// FakeHandle is the handle returned by FakePlatform.
type FakeHandle struct {
	opts *platform.Options

	mu     sync.Mutex
	aborts int

	progress platform.ListenerSet[platform.ProgressEvent]
	headers  platform.ListenerSet[platform.HeadersEvent]

	// Attach/detach history, in order, for pairing assertions.
	ProgressAttached []*platform.Listener[platform.ProgressEvent]
	ProgressDetached []*platform.Listener[platform.ProgressEvent]
	HeadersAttached  []*platform.Listener[platform.HeadersEvent]
	HeadersDetached  []*platform.Listener[platform.HeadersEvent]
}

var _ platform.Handle = (*FakeHandle)(nil)

func (h *FakeHandle) Abort() {
	h.mu.Lock()
	h.aborts++
	h.mu.Unlock()
}

// Aborts returns how many times Abort was called.
func (h *FakeHandle) Aborts() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.aborts
}

func (h *FakeHandle) OnProgressUpdate(l *platform.Listener[platform.ProgressEvent]) {
	h.mu.Lock()
	h.ProgressAttached = append(h.ProgressAttached, l)
	h.mu.Unlock()
	h.progress.Add(l)
}

func (h *FakeHandle) OffProgressUpdate(l *platform.Listener[platform.ProgressEvent]) {
	h.mu.Lock()
	h.ProgressDetached = append(h.ProgressDetached, l)
	h.mu.Unlock()
	h.progress.Remove(l)
}

func (h *FakeHandle) OnHeadersReceived(l *platform.Listener[platform.HeadersEvent]) {
	h.mu.Lock()
	h.HeadersAttached = append(h.HeadersAttached, l)
	h.mu.Unlock()
	h.headers.Add(l)
}

func (h *FakeHandle) OffHeadersReceived(l *platform.Listener[platform.HeadersEvent]) {
	h.mu.Lock()
	h.HeadersDetached = append(h.HeadersDetached, l)
	h.mu.Unlock()
	h.headers.Remove(l)
}

// ActiveListeners returns the number of attached progress and headers
// listeners.
func (h *FakeHandle) ActiveListeners() (progress, headers int) {
	return h.progress.Len(), h.headers.Len()
}

// Succeed invokes the success callback followed by complete.
func (h *FakeHandle) Succeed(res *platform.Result) {
	if h.opts.Success != nil {
		h.opts.Success(res)
	}
	h.complete()
}

// Fail invokes the fail callback followed by complete.
func (h *FakeHandle) Fail(f *platform.Failure) {
	if h.opts.Fail != nil {
		h.opts.Fail(f)
	}
	h.complete()
}

// Progress emits a progress event to attached listeners.
func (h *FakeHandle) Progress(ev platform.ProgressEvent) {
	h.progress.Emit(ev)
}

// Headers emits a headers-received event to attached listeners.
func (h *FakeHandle) Headers(ev platform.HeadersEvent) {
	h.headers.Emit(ev)
}

func (h *FakeHandle) complete() {
	if h.opts.Complete != nil {
		h.opts.Complete()
	}
}
