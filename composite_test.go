package logicsim_test

import (
	"errors"
	"testing"

	sim "github.com/hwx/logicsim"
)

func Test_composite_arity(t *testing.T) {
	_, err := sim.NewComposite("x", newXor(t), sim.NewInput(0)) // xor takes 2
	var am *sim.ArityMismatchError
	if !errors.As(err, &am) {
		t.Fatalf("expected ArityMismatchError, got %v", err)
	}
	if am.Want != 2 || am.Got != 1 {
		t.Errorf("want/got = %d/%d, expected 2/1", am.Want, am.Got)
	}
}

func Test_composite_output_range(t *testing.T) {
	cp, err := sim.NewComposite("x", newXor(t), sim.NewInput(0), sim.NewInput(1))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cp.Output(0); err != nil {
		t.Fatal(err)
	}
	_, err = cp.Output(1)
	var ie *sim.IndexError
	if !errors.As(err, &ie) {
		t.Fatalf("expected IndexError, got %v", err)
	}
}

func Test_composite_placements_do_not_alias(t *testing.T) {
	// a sticky-bit template with internal state
	q := sim.NewFeedback("q", sim.Low, 0)
	q.SetDriver(sim.NewGate(sim.GateOr, sim.NewInput(0), q))
	tmpl := sim.NewCircuit("sticky", q)
	sim.RegisterStandardGates(tmpl)
	tmpl.RegisterFeedback(q)

	p1, err := sim.NewComposite("s1", tmpl, sim.NewInput(0))
	if err != nil {
		t.Fatal(err)
	}
	p2, err := sim.NewComposite("s2", tmpl, sim.NewInput(1))
	if err != nil {
		t.Fatal(err)
	}
	c := sim.NewCircuit("pair", p1, p2)
	sim.RegisterStandardGates(c)

	// latch only the first placement
	out, err := c.Tick([]sim.Bit{1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if out[0] != sim.High || out[1] != sim.Low {
		t.Fatalf("tick 0: got %v, want [1 0]", out)
	}
	// state must stay separate
	out, _ = c.Tick([]sim.Bit{0, 0})
	if out[0] != sim.High || out[1] != sim.Low {
		t.Fatalf("tick 1: placements share state: %v", out)
	}
	// the template itself must be untouched
	if q.Value() != sim.Low {
		t.Fatal("template circuit state mutated by placement")
	}
}

// One composite fanning out to several consumers is evaluated once per
// tick; the counting gate function observes the number of evaluations.
func Test_composite_cached_per_tick(t *testing.T) {
	calls := 0
	inner := sim.NewCircuit("counted", sim.NewGate("COUNT", sim.NewInput(0)))
	inner.RegisterGate("COUNT", func(in []sim.Bit) (sim.Bit, error) {
		calls++
		return in[0], nil
	})

	cp, err := sim.NewComposite("c", inner, sim.NewInput(0))
	if err != nil {
		t.Fatal(err)
	}
	o1, err := cp.Output(0)
	if err != nil {
		t.Fatal(err)
	}
	c := sim.NewCircuit("fanout",
		sim.NewGate(sim.GateAnd, cp, o1),
		sim.NewGate(sim.GateOr, cp, o1))
	sim.RegisterStandardGates(c)

	if _, err := c.Tick([]sim.Bit{1}); err != nil {
		t.Fatal(err)
	}
	// EvaluateUntilStable needs two equal ticks of the sub-circuit, but
	// the four consumer references must not add further evaluations.
	if calls != 2 {
		t.Errorf("sub-circuit evaluated %d times in one tick, want 2", calls)
	}

	calls = 0
	if _, err := c.Tick([]sim.Bit{1}); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("cache leaked across ticks: %d evaluations", calls)
	}
}
