package logicsim

import "github.com/google/uuid"

// cloner copies a node graph while preserving topology: shared children
// stay shared and cyclic edges resolve to the already-allocated copy. The
// original→copy map is therefore populated before recursing into children
// that might cycle back.
type cloner struct {
	preserveState bool
	seen          map[Node]Node
}

func (cl *cloner) clone(n Node) (Node, error) {
	if n == nil {
		return nil, nil
	}
	if cp, ok := cl.seen[n]; ok {
		return cp, nil
	}
	switch n := n.(type) {
	case *Literal:
		cp := &Literal{Value: n.Value}
		cl.seen[n] = cp
		return cp, nil

	case *Input:
		cp := &Input{Index: n.Index}
		cl.seen[n] = cp
		return cp, nil

	case *Clock:
		cp := &Clock{}
		cl.seen[n] = cp
		return cp, nil

	case *Gate:
		cp := &Gate{Kind: n.Kind, Name: n.Name, Delay: n.Delay}
		if cl.preserveState {
			cp.last = n.last
		}
		cl.seen[n] = cp
		cp.Children = make([]Node, len(n.Children))
		for i, ch := range n.Children {
			cc, err := cl.clone(ch)
			if err != nil {
				return nil, err
			}
			cp.Children[i] = cc
		}
		return cp, nil

	case *Feedback:
		cp := &Feedback{Name: n.Name, Initial: n.Initial, Delay: n.Delay, current: n.Initial}
		if cl.preserveState {
			cp.current = n.current
		}
		// map before the driver so the cycle-closing edge lands here
		cl.seen[n] = cp
		d, err := cl.clone(n.Driver)
		if err != nil {
			return nil, err
		}
		cp.Driver = d
		return cp, nil

	case *Composite:
		cp := &Composite{Name: n.Name, cacheTick: -1}
		cl.seen[n] = cp
		sub, err := n.sub.Clone(cl.preserveState)
		if err != nil {
			return nil, err
		}
		cp.sub = sub
		if cl.preserveState {
			cp.cacheTick = n.cacheTick
			cp.cached = n.cached
			cp.outputs = append([]Bit(nil), n.outputs...)
		}
		cp.bindings = make([]Node, len(n.bindings))
		for i, b := range n.bindings {
			bc, err := cl.clone(b)
			if err != nil {
				return nil, err
			}
			cp.bindings[i] = bc
		}
		return cp, nil

	case *SubOutput:
		comp, err := cl.clone(n.Composite)
		if err != nil {
			return nil, err
		}
		cp := &SubOutput{Composite: comp.(*Composite), Index: n.Index}
		cl.seen[n] = cp
		return cp, nil
	}
	return nil, &UncloneableNodeError{Node: n}
}

// Clone returns a structural copy of the circuit sharing no mutable state
// with the original.
//
// With preserveState false the copy starts from a clean slate: feedback
// nodes revert to their declared initial values, gate latches reset to
// zero, the scheduler is empty and the tick counters are zero. Truth-table
// generation relies on this to evaluate every row fresh.
//
// With preserveState true, feedback values, gate latches, clock bits and
// tick counters carry over, forking an in-progress simulation. Pending
// scheduler events are not carried: their callbacks close over the
// original's nodes and cannot be rebound to the copies.
func (c *Circuit) Clone(preserveState bool) (*Circuit, error) {
	cl := &cloner{preserveState: preserveState, seen: make(map[Node]Node)}
	nc := &Circuit{
		name:   c.name,
		id:     uuid.New(),
		parent: c.id,
		gates:  make(map[string]GateFunc, len(c.gates)),
		logger: c.logger,
	}
	for k, fn := range c.gates {
		nc.gates[k] = fn
	}
	nc.roots = make([]Node, len(c.roots))
	for i, r := range c.roots {
		n, err := cl.clone(r)
		if err != nil {
			return nil, err
		}
		nc.roots[i] = n
	}
	for _, f := range c.feedbacks {
		n, err := cl.clone(f)
		if err != nil {
			return nil, err
		}
		nc.feedbacks = append(nc.feedbacks, n.(*Feedback))
	}
	if preserveState {
		nc.clock, nc.prevClock = c.clock, c.prevClock
		nc.totalTicks, nc.currentTick = c.totalTicks, c.currentTick
	}
	return nc, nil
}
