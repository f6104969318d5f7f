// Copyright 2024 The logicsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// Iteration caps for the fixed-point loops. Both are plain bounded
// retries: hitting a cap degrades the result (the tick is flagged
// unstable) instead of blocking or failing.
const (
	DefaultMaxDeltaCycles = 50
	DefaultMaxOuterTicks  = 100
)

// An EdgeTrigger describes the clock transition between the two most
// recent SetClock calls.
type EdgeTrigger int

const (
	EdgeSame EdgeTrigger = iota
	EdgePositive
	EdgeNegative
)

func (e EdgeTrigger) String() string {
	switch e {
	case EdgePositive:
		return "POSITIVE_EDGE"
	case EdgeNegative:
		return "NEGATIVE_EDGE"
	}
	return "SAME"
}

// A TickRecord is the diagnostic trace of one simulated tick.
type TickRecord struct {
	CircuitID   uuid.UUID
	Tick        int64
	DeltaCycles int
	EventsFired int
	Outputs     [][]Bit // output vector per delta cycle
	Unstable    bool
}

// Circuit owns an expression graph and simulates it over discrete time.
//
// A Circuit must not be used from more than one goroutine at a time;
// evaluation is strictly single-threaded per instance.
type Circuit struct {
	name   string
	id     uuid.UUID
	parent uuid.UUID // id of the circuit this one was cloned from

	roots     []Node
	gates     map[string]GateFunc
	feedbacks []*Feedback

	sched     scheduler
	clock     Bit
	prevClock Bit

	totalTicks  int64 // ticks completed
	currentTick int64 // tick being processed; delay targets are relative to it

	history []TickRecord
	logger  *slog.Logger
}

// NewCircuit returns a circuit with the given root (output) nodes.
// Empty and singleton root lists are both legal.
func NewCircuit(name string, roots ...Node) *Circuit {
	return &Circuit{
		name:  name,
		id:    uuid.New(),
		roots: roots,
		gates: make(map[string]GateFunc),
	}
}

// Name returns the circuit's name.
func (c *Circuit) Name() string { return c.name }

// ID returns the circuit instance's unique id.
func (c *Circuit) ID() uuid.UUID { return c.id }

// ParentID returns the id of the circuit this one was cloned from, or the
// zero uuid for a circuit built directly.
func (c *Circuit) ParentID() uuid.UUID { return c.parent }

// Roots returns the circuit's root nodes. The slice must not be modified.
func (c *Circuit) Roots() []Node { return c.roots }

// SetLogger attaches a structured logger for engine diagnostics
// (scheduled events, non-stabilizing ticks). A nil logger disables them.
func (c *Circuit) SetLogger(l *slog.Logger) { c.logger = l }

// RegisterGate binds a gate function to a kind, overwriting any prior
// registration under the same kind.
func (c *Circuit) RegisterGate(kind string, fn GateFunc) {
	c.gates[kind] = fn
}

// RegisterFeedback adds a feedback node to the per-delta-cycle update set.
// Updates are two-phase, so registration order affects history only.
func (c *Circuit) RegisterFeedback(f *Feedback) {
	c.feedbacks = append(c.feedbacks, f)
}

// Feedbacks returns the registered feedback nodes in registration order.
func (c *Circuit) Feedbacks() []*Feedback { return c.feedbacks }

// SetClock shifts the current clock level into the previous one and sets
// the new level. It does not advance simulation time.
func (c *Circuit) SetClock(v Bit) {
	c.prevClock = c.clock
	c.clock = v
}

// Clock returns the current clock level.
func (c *Circuit) Clock() Bit { return c.clock }

// EdgeTrigger compares the current clock level with the previous one.
func (c *Circuit) EdgeTrigger() EdgeTrigger {
	switch {
	case c.clock == c.prevClock:
		return EdgeSame
	case c.clock > c.prevClock:
		return EdgePositive
	}
	return EdgeNegative
}

// InputLength is one plus the highest input index reachable from any root
// or registered feedback node, or 0 if no input node is reachable. The
// walk tracks visited nodes, so feedback cycles terminate.
func (c *Circuit) InputLength() int {
	max := -1
	visited := make(map[Node]bool)
	var walk func(n Node)
	walk = func(n Node) {
		if n == nil || visited[n] {
			return
		}
		visited[n] = true
		switch n := n.(type) {
		case *Input:
			if n.Index > max {
				max = n.Index
			}
		case *Gate:
			for _, ch := range n.Children {
				walk(ch)
			}
		case *Feedback:
			walk(n.Driver)
		case *Composite:
			for _, b := range n.bindings {
				walk(b)
			}
		case *SubOutput:
			walk(n.Composite)
		}
	}
	for _, r := range c.roots {
		walk(r)
	}
	for _, f := range c.feedbacks {
		walk(f)
	}
	return max + 1
}

// OutputLength is the number of root nodes.
func (c *Circuit) OutputLength() int { return len(c.roots) }

// History returns the per-tick diagnostic records accumulated so far.
func (c *Circuit) History() []TickRecord { return c.history }

// Tick advances simulation time by one step and returns the stabilized
// output vector.
func (c *Circuit) Tick(inputs []Bit) ([]Bit, error) {
	return c.Evaluate(inputs, DefaultMaxDeltaCycles)
}

// Evaluate runs one tick to a fixed point, iterating up to maxDeltaCycles
// delta cycles. Each delta cycle fires the tick's due scheduled events,
// updates all feedback nodes in two phases and re-evaluates the roots.
// Iteration stops once nothing changed during a cycle, or once the output
// vector repeats with no events left for this tick.
//
// Exhausting maxDeltaCycles is not an error: the tick is flagged unstable
// in the history and the last computed vector is returned.
func (c *Circuit) Evaluate(inputs []Bit, maxDeltaCycles int) ([]Bit, error) {
	if maxDeltaCycles <= 0 {
		maxDeltaCycles = DefaultMaxDeltaCycles
	}
	c.currentTick = c.totalTicks

	rec := TickRecord{CircuitID: c.id, Tick: c.currentTick}
	var out, prev []Bit
	stable := false
	for cycle := 0; cycle < maxDeltaCycles; cycle++ {
		rec.DeltaCycles = cycle + 1

		due := c.sched.consume(c.currentTick)
		for _, ev := range due {
			ev.fn()
			if c.logger != nil {
				c.logger.Debug("event fired",
					"circuit", c.name, "tick", c.currentTick, "event", ev.desc)
			}
		}
		rec.EventsFired += len(due)

		changed, err := c.updateFeedbacks(inputs)
		if err != nil {
			return nil, err
		}

		out, err = c.evalRoots(inputs)
		if err != nil {
			return nil, err
		}
		rec.Outputs = append(rec.Outputs, out)

		// Fixed point: either this cycle was a no-op (nothing fired,
		// nothing latched, nothing due), or the output repeated and no
		// event remains for this tick.
		quiet := len(due) == 0 && !changed
		if !c.sched.pending(c.currentTick) && (quiet || equalBits(out, prev)) {
			stable = true
			break
		}
		prev = out
	}
	if !stable {
		rec.Unstable = true
		if c.logger != nil {
			c.logger.Warn("tick did not stabilize",
				"circuit", c.name, "id", c.id,
				"tick", c.currentTick, "deltaCycles", rec.DeltaCycles)
		}
	}
	c.history = append(c.history, rec)
	c.totalTicks++
	return out, nil
}

// EvaluateUntilStable repeatedly ticks the circuit with the clock held
// fixed until two consecutive outputs are equal, up to maxOuterTicks.
// Composite nodes use it to drive their private sub-circuits to a steady
// state without advancing the caller's own tick count.
func (c *Circuit) EvaluateUntilStable(inputs []Bit, maxOuterTicks int) ([]Bit, error) {
	if maxOuterTicks <= 0 {
		maxOuterTicks = DefaultMaxOuterTicks
	}
	var prev []Bit
	for i := 0; i < maxOuterTicks; i++ {
		out, err := c.Tick(inputs)
		if err != nil {
			return nil, err
		}
		if prev != nil && equalBits(out, prev) {
			return out, nil
		}
		prev = out
	}
	return prev, nil
}

// updateFeedbacks runs one two-phase feedback update: all driving
// expressions are evaluated first, then all results are latched, so one
// node's update never leaks into another's evaluation within the phase.
// It reports whether any immediately-applied value changed.
func (c *Circuit) updateFeedbacks(inputs []Bit) (bool, error) {
	if len(c.feedbacks) == 0 {
		return false, nil
	}
	next := make([]Bit, len(c.feedbacks))
	for i, f := range c.feedbacks {
		v, err := f.computeDriver(c, inputs)
		if err != nil {
			return false, err
		}
		next[i] = v
	}
	changed := false
	for i, f := range c.feedbacks {
		if f.Delay == 0 && f.current != next[i] {
			changed = true
		}
		f.apply(c, next[i])
	}
	return changed, nil
}

func (c *Circuit) evalRoots(inputs []Bit) ([]Bit, error) {
	out := make([]Bit, len(c.roots))
	for i, r := range c.roots {
		v, err := r.Evaluate(c, inputs)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// schedule queues a delayed update delay ticks after the tick currently
// being processed.
func (c *Circuit) schedule(delay int, desc string, fn func()) {
	target := c.currentTick + int64(delay)
	c.sched.schedule(target, desc, fn)
	if c.logger != nil {
		c.logger.Debug("event scheduled",
			"circuit", c.name, "tick", c.currentTick, "target", target, "event", desc)
	}
}

// Describe renders the circuit's roots as expression strings, one per
// line. A single visited map is shared across the whole traversal so
// feedback cycles print as back-references.
func (c *Circuit) Describe() string {
	visited := make(map[Node]string)
	var b strings.Builder
	for i, r := range c.roots {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "out%d: %s", i, r.Describe(visited))
	}
	return b.String()
}
