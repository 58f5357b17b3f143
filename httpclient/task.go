package httpclient

import (
	"context"
	"sync/atomic"

	"github.com/kbukum/wxadapter/platform"
)

// Task is the handle of one in-flight transfer.
type Task struct {
	id     string
	op     string
	ctx    context.Context
	cancel context.CancelFunc

	aborted atomic.Bool

	progress platform.ListenerSet[platform.ProgressEvent]
	headers  platform.ListenerSet[platform.HeadersEvent]
}

var _ platform.Handle = (*Task)(nil)

func newTask(parent context.Context, id, op string) *Task {
	ctx, cancel := context.WithCancel(parent)
	return &Task{id: id, op: op, ctx: ctx, cancel: cancel}
}

// ID returns the task id used in logs.
func (t *Task) ID() string {
	return t.id
}

// Abort cancels the transfer. No callback is delivered once Abort has
// returned, except one that was already being delivered.
func (t *Task) Abort() {
	if t.aborted.CompareAndSwap(false, true) {
		t.cancel()
	}
}

// Aborted reports whether Abort was called.
func (t *Task) Aborted() bool {
	return t.aborted.Load()
}

func (t *Task) OnProgressUpdate(l *platform.Listener[platform.ProgressEvent]) {
	t.progress.Add(l)
}

func (t *Task) OffProgressUpdate(l *platform.Listener[platform.ProgressEvent]) {
	t.progress.Remove(l)
}

func (t *Task) OnHeadersReceived(l *platform.Listener[platform.HeadersEvent]) {
	t.headers.Add(l)
}

func (t *Task) OffHeadersReceived(l *platform.Listener[platform.HeadersEvent]) {
	t.headers.Remove(l)
}

func (t *Task) emitHeaders(status int, header map[string]string) {
	if t.Aborted() {
		return
	}
	t.headers.Emit(platform.HeadersEvent{StatusCode: status, Header: header})
}

func (t *Task) emitProgress(ev platform.ProgressEvent) {
	if t.Aborted() {
		return
	}
	t.progress.Emit(ev)
}
