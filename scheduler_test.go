package logicsim

import "testing"

func Test_scheduler_consume(t *testing.T) {
	var s scheduler
	var fired []string
	log := func(name string) func() {
		return func() { fired = append(fired, name) }
	}
	s.schedule(3, "a", log("a"))
	s.schedule(5, "b", log("b"))
	s.schedule(3, "c", log("c"))

	if !s.pending(3) || !s.pending(5) || s.pending(4) {
		t.Fatal("pending reports wrong ticks")
	}

	due := s.consume(3)
	if len(due) != 2 {
		t.Fatalf("expected 2 events for tick 3, got %d", len(due))
	}
	for _, ev := range due {
		ev.fn()
	}
	// insertion order within a tick
	if fired[0] != "a" || fired[1] != "c" {
		t.Fatalf("wrong firing order: %v", fired)
	}
	if s.pending(3) {
		t.Fatal("tick 3 still pending after consume")
	}
	if s.len() != 1 || !s.pending(5) {
		t.Fatal("tick 5 event lost during consume")
	}

	if due := s.consume(4); len(due) != 0 {
		t.Fatalf("expected no events for tick 4, got %d", len(due))
	}
}
