package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"testing"

	"github.com/kbukum/wxadapter/resilience"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   ErrorCode
		reason string
	}{
		{"deadline", context.DeadlineExceeded, ErrCodeTimeout, "timeout"},
		{"wrapped deadline", &url.Error{Op: "Get", URL: "http://x", Err: context.DeadlineExceeded}, ErrCodeTimeout, "timeout"},
		{"canceled", fmt.Errorf("do: %w", context.Canceled), ErrCodeAborted, "abort"},
		{"bulkhead full", resilience.ErrBulkheadFull, ErrCodeBusy, "exceed max task count"},
		{"bulkhead timeout", resilience.ErrBulkheadTimeout, ErrCodeBusy, "exceed max task count"},
		{"path", &fs.PathError{Op: "open", Path: "/nope", Err: os.ErrNotExist}, ErrCodeFile, "open /nope: file does not exist"},
		{"other", errors.New("connection refused"), ErrCodeConnection, "connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := classify(OpDownload, tt.err)
			if e.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, e.Code)
			}
			if e.Reason != tt.reason {
				t.Errorf("expected reason %q, got %q", tt.reason, e.Reason)
			}
			if want := "downloadFile:fail " + tt.reason; e.Error() != want {
				t.Errorf("expected %q, got %q", want, e.Error())
			}
			if !errors.Is(e, tt.err) {
				t.Error("expected classified error to wrap the cause")
			}
		})
	}
}

func TestClassify_KeepsExisting(t *testing.T) {
	orig := invalidRequest(OpRequest, errors.New("bad url"))
	if got := classify(OpRequest, fmt.Errorf("wrap: %w", orig)); got != orig {
		t.Errorf("expected existing classification to be kept, got %v", got)
	}
}

func TestError_Failure(t *testing.T) {
	e := &Error{Op: OpRequest, Code: ErrCodeTimeout, Reason: "timeout"}
	f := e.Failure()
	if f.ErrMsg != "request:fail timeout" {
		t.Errorf("expected request:fail timeout, got %s", f.ErrMsg)
	}
	if f.ErrNo != int(ErrCodeTimeout) {
		t.Errorf("expected errno %d, got %d", ErrCodeTimeout, f.ErrNo)
	}
	if !IsTimeout(e) || IsAborted(e) {
		t.Error("expected IsTimeout only")
	}
}

func TestErrorCode_String(t *testing.T) {
	if ErrCodeBusy.String() != "busy" {
		t.Errorf("expected busy, got %s", ErrCodeBusy)
	}
	if ErrorCode(99).String() != "unknown" {
		t.Errorf("expected unknown, got %s", ErrorCode(99))
	}
}
