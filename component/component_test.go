package component

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kbukum/wxadapter/logger"
)

type fakeComponent struct {
	name     string
	startErr error
	stopErr  error
	health   Health
	events   *[]string
}

func (f *fakeComponent) Name() string { return f.name }

func (f *fakeComponent) Start(context.Context) error {
	*f.events = append(*f.events, "start:"+f.name)
	return f.startErr
}

func (f *fakeComponent) Stop(context.Context) error {
	*f.events = append(*f.events, "stop:"+f.name)
	return f.stopErr
}

func (f *fakeComponent) Health(context.Context) Health { return f.health }

type describedComponent struct {
	fakeComponent
}

func (d *describedComponent) Describe() Description {
	return Description{Type: "fake", Details: "d=1"}
}

func newRegistry() *Registry {
	return NewRegistry(logger.NewNop())
}

func TestRegisterDuplicate(t *testing.T) {
	var events []string
	r := newRegistry()
	if err := r.Register(&fakeComponent{name: "a", events: &events}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(&fakeComponent{name: "a", events: &events}); err == nil {
		t.Error("expected error for duplicate registration")
	}
	if r.Get("a") == nil || r.Get("missing") != nil {
		t.Error("expected Get to find only registered components")
	}
}

func TestStartStopOrder(t *testing.T) {
	var events []string
	r := newRegistry()
	for _, name := range []string{"fixture", "platform", "cli"} {
		_ = r.Register(&fakeComponent{name: name, events: &events})
	}

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll: %v", err)
	}

	want := "start:fixture,start:platform,start:cli,stop:cli,stop:platform,stop:fixture"
	if got := strings.Join(events, ","); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}

	events = events[:0]
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("second StopAll: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected stopped components to be skipped, got %v", events)
	}
}

func TestStartAllRollsBack(t *testing.T) {
	var events []string
	r := newRegistry()
	_ = r.Register(&fakeComponent{name: "a", events: &events})
	_ = r.Register(&fakeComponent{name: "b", events: &events, startErr: errors.New("boom")})
	_ = r.Register(&fakeComponent{name: "c", events: &events})

	err := r.StartAll(context.Background())
	if err == nil || !strings.Contains(err.Error(), "failed to start b") {
		t.Fatalf("expected start failure for b, got %v", err)
	}
	want := "start:a,start:b,stop:a"
	if got := strings.Join(events, ","); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestStopAllJoinsErrors(t *testing.T) {
	var events []string
	r := newRegistry()
	_ = r.Register(&fakeComponent{name: "a", events: &events, stopErr: errors.New("x")})
	_ = r.Register(&fakeComponent{name: "b", events: &events, stopErr: errors.New("y")})
	_ = r.StartAll(context.Background())

	err := r.StopAll(context.Background())
	if err == nil {
		t.Fatal("expected error from StopAll")
	}
	if !strings.Contains(err.Error(), "failed to stop a") || !strings.Contains(err.Error(), "failed to stop b") {
		t.Errorf("expected both stop failures, got %v", err)
	}
}

func TestHealthAll(t *testing.T) {
	var events []string
	r := newRegistry()
	_ = r.Register(&fakeComponent{name: "a", events: &events, health: Health{Name: "a", Status: StatusHealthy}})
	_ = r.Register(&fakeComponent{name: "b", events: &events, health: Health{Name: "b", Status: StatusUnhealthy, Message: "busy"}})

	results := r.HealthAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Status != StatusHealthy || results[1].Status != StatusUnhealthy {
		t.Errorf("unexpected health: %+v", results)
	}
}

func TestDescribe(t *testing.T) {
	var events []string
	r := newRegistry()
	_ = r.Register(&fakeComponent{name: "plain", events: &events})
	_ = r.Register(&describedComponent{fakeComponent{name: "described", events: &events}})

	got := r.Describe()
	if len(got) != 1 {
		t.Fatalf("expected 1 description, got %d", len(got))
	}
	if got[0].Name != "described" || got[0].Type != "fake" {
		t.Errorf("expected name to default to component name, got %+v", got[0])
	}
}
