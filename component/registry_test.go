package component

import (
	"context"
	"errors"
	"testing"
)

// fakeComponent records lifecycle calls for assertions.
type fakeComponent struct {
	name     string
	startErr error
	stopErr  error
	calls    *[]string
}

func (f *fakeComponent) Name() string { return f.name }

func (f *fakeComponent) Start(_ context.Context) error {
	*f.calls = append(*f.calls, "start:"+f.name)
	return f.startErr
}

func (f *fakeComponent) Stop(_ context.Context) error {
	*f.calls = append(*f.calls, "stop:"+f.name)
	return f.stopErr
}

func (f *fakeComponent) Health(_ context.Context) Health {
	return Health{Name: f.name, Status: StatusHealthy}
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := NewRegistry()
	calls := []string{}

	if err := r.Register(&fakeComponent{name: "a", calls: &calls}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if err := r.Register(&fakeComponent{name: "a", calls: &calls}); err == nil {
		t.Error("expected error for duplicate component name")
	}
}

func TestRegistry_StartStopOrder(t *testing.T) {
	r := NewRegistry()
	calls := []string{}

	_ = r.Register(&fakeComponent{name: "a", calls: &calls})
	_ = r.Register(&fakeComponent{name: "b", calls: &calls})

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}

	want := []string{"start:a", "start:b", "stop:b", "stop:a"}
	if len(calls) != len(want) {
		t.Fatalf("expected %d calls, got %d: %v", len(want), len(calls), calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d: expected %s, got %s", i, want[i], calls[i])
		}
	}
}

func TestRegistry_StartFailureStopsEarly(t *testing.T) {
	r := NewRegistry()
	calls := []string{}

	_ = r.Register(&fakeComponent{name: "a", calls: &calls})
	_ = r.Register(&fakeComponent{name: "b", startErr: errors.New("boom"), calls: &calls})
	_ = r.Register(&fakeComponent{name: "c", calls: &calls})

	if err := r.StartAll(context.Background()); err == nil {
		t.Fatal("expected StartAll to fail")
	}

	for _, call := range calls {
		if call == "start:c" {
			t.Error("component after the failing one should not be started")
		}
	}

	// Only started components get stopped.
	calls = calls[:0]
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}
	if len(calls) != 1 || calls[0] != "stop:a" {
		t.Errorf("expected only 'stop:a', got %v", calls)
	}
}

func TestRegistry_HealthAll(t *testing.T) {
	r := NewRegistry()
	calls := []string{}

	_ = r.Register(&fakeComponent{name: "a", calls: &calls})
	_ = r.Register(&fakeComponent{name: "b", calls: &calls})

	healths := r.HealthAll(context.Background())
	if len(healths) != 2 {
		t.Fatalf("expected 2 health entries, got %d", len(healths))
	}
	if healths[0].Status != StatusHealthy {
		t.Errorf("expected healthy, got %s", healths[0].Status)
	}
}
