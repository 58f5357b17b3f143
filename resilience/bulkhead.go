package resilience

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrBulkheadFull is returned when no slot is free and waiting is off.
	ErrBulkheadFull = errors.New("bulkhead is full")
	// ErrBulkheadTimeout is returned when MaxWait passes without a slot.
	ErrBulkheadTimeout = errors.New("bulkhead wait timeout")
)

const defaultCapacity = 10

// BulkheadConfig configures a bulkhead.
type BulkheadConfig struct {
	Name string
	// MaxConcurrent is the number of slots. Defaults to 10.
	MaxConcurrent int
	// MaxWait bounds the wait for a slot. Zero or negative fails at once.
	MaxWait time.Duration
	// OnReject, if set, is called with every rejection.
	OnReject func(name string, err error)
}

// BulkheadStats is a point-in-time view of a bulkhead.
type BulkheadStats struct {
	Capacity int
	InUse    int
	Waiting  int
}

// Free returns the number of unused slots.
func (s BulkheadStats) Free() int {
	return s.Capacity - s.InUse
}

// Bulkhead caps the number of concurrent operations.
type Bulkhead struct {
	cfg     BulkheadConfig
	slots   chan struct{}
	waiting atomic.Int64
}

func NewBulkhead(cfg BulkheadConfig) *Bulkhead {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = defaultCapacity
	}
	return &Bulkhead{cfg: cfg, slots: make(chan struct{}, cfg.MaxConcurrent)}
}

// Acquire takes a slot, waiting up to MaxWait, and returns its release
// func. Release may be called more than once. On failure the error is
// ErrBulkheadFull, ErrBulkheadTimeout or ctx.Err().
func (b *Bulkhead) Acquire(ctx context.Context) (release func(), err error) {
	if err := b.take(ctx); err != nil {
		if b.cfg.OnReject != nil {
			b.cfg.OnReject(b.cfg.Name, err)
		}
		return nil, err
	}
	var once sync.Once
	return func() { once.Do(func() { <-b.slots }) }, nil
}

func (b *Bulkhead) take(ctx context.Context) error {
	select {
	case b.slots <- struct{}{}:
		return nil
	default:
	}
	if b.cfg.MaxWait <= 0 {
		return ErrBulkheadFull
	}

	b.waiting.Add(1)
	defer b.waiting.Add(-1)
	timer := time.NewTimer(b.cfg.MaxWait)
	defer timer.Stop()
	select {
	case b.slots <- struct{}{}:
		return nil
	case <-timer.C:
		return ErrBulkheadTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bulkhead) Stats() BulkheadStats {
	return BulkheadStats{
		Capacity: cap(b.slots),
		InUse:    len(b.slots),
		Waiting:  int(b.waiting.Load()),
	}
}
