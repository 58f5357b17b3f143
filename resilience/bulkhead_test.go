package resilience

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestBulkhead_CapsConcurrency(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{Name: "test", MaxConcurrent: 2, MaxWait: time.Second})

	var (
		mu      sync.Mutex
		active  int
		maxSeen int
		wg      sync.WaitGroup
	)
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := b.Acquire(context.Background())
			if err != nil {
				t.Errorf("expected no error, got %v", err)
				return
			}
			defer release()
			mu.Lock()
			active++
			maxSeen = max(maxSeen, active)
			mu.Unlock()
			time.Sleep(5 * time.Millisecond)
			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxSeen > 2 {
		t.Errorf("expected at most 2 concurrent holders, saw %d", maxSeen)
	}
	if s := b.Stats(); s.InUse != 0 || s.Waiting != 0 {
		t.Errorf("expected an idle bulkhead, got %+v", s)
	}
}

func TestBulkhead_RejectsWhenFull(t *testing.T) {
	var rejected string
	b := NewBulkhead(BulkheadConfig{
		Name:          "platform",
		MaxConcurrent: 1,
		MaxWait:       -1,
		OnReject:      func(name string, _ error) { rejected = name },
	})

	release, err := b.Acquire(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer release()

	if _, err = b.Acquire(context.Background()); !errors.Is(err, ErrBulkheadFull) {
		t.Errorf("expected ErrBulkheadFull, got %v", err)
	}
	if rejected != "platform" {
		t.Errorf("expected OnReject with 'platform', got %q", rejected)
	}
}

func TestBulkhead_WaitsForSlot(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{Name: "test", MaxConcurrent: 1, MaxWait: time.Second})

	release, err := b.Acquire(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := make(chan error, 1)
	go func() {
		r, err := b.Acquire(context.Background())
		if err == nil {
			r()
		}
		got <- err
	}()

	deadline := time.Now().Add(time.Second)
	for b.Stats().Waiting != 1 {
		if time.Now().After(deadline) {
			t.Fatal("expected one waiter")
		}
		time.Sleep(time.Millisecond)
	}
	release()

	if err := <-got; err != nil {
		t.Fatalf("expected the waiter to get the slot, got %v", err)
	}
}

func TestBulkhead_WaitTimeout(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{Name: "test", MaxConcurrent: 1, MaxWait: 20 * time.Millisecond})

	release, _ := b.Acquire(context.Background())
	defer release()

	if _, err := b.Acquire(context.Background()); !errors.Is(err, ErrBulkheadTimeout) {
		t.Errorf("expected ErrBulkheadTimeout, got %v", err)
	}
}

func TestBulkhead_ContextCanceledWhileWaiting(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{Name: "test", MaxConcurrent: 1, MaxWait: time.Second})

	release, _ := b.Acquire(context.Background())
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := b.Acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestBulkhead_ReleaseIsIdempotent(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{})
	if s := b.Stats(); s.Capacity != defaultCapacity || s.Free() != defaultCapacity {
		t.Fatalf("expected default capacity %d, got %+v", defaultCapacity, s)
	}

	release, _ := b.Acquire(context.Background())
	if b.Stats().InUse != 1 {
		t.Fatalf("expected 1 in use, got %d", b.Stats().InUse)
	}
	release()
	release()
	if s := b.Stats(); s.InUse != 0 || s.Free() != defaultCapacity {
		t.Errorf("expected all slots free after double release, got %+v", s)
	}
}
