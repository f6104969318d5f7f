// Copyright 2024 The logicsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import "strconv"

// A Node is one vertex in a circuit's expression graph.
//
// Evaluate must be a function only of the node's own stored state, the
// evaluated values of its children and circuit-level or caller-supplied
// values. It must never mutate unrelated nodes, and must not schedule work
// except through the gate/feedback delay mechanism.
//
// Describe renders the node as an expression string. The visited map is
// scoped to a single traversal and must be shared across it; it lets
// cyclic references (a feedback node inside its own driving expression)
// render as a short back-reference instead of recursing forever.
type Node interface {
	Evaluate(c *Circuit, inputs []Bit) (Bit, error)
	Describe(visited map[Node]string) string
}

// Literal is a constant bit.
type Literal struct {
	Value Bit
}

// NewLiteral returns a constant node.
func NewLiteral(v Bit) *Literal { return &Literal{Value: v} }

func (l *Literal) Evaluate(*Circuit, []Bit) (Bit, error) {
	return l.Value, nil
}

func (l *Literal) Describe(map[Node]string) string {
	return strconv.Itoa(int(l.Value))
}

// Input reads one lane of the caller-supplied input vector.
// An index past the end of the vector reads 0.
type Input struct {
	Index int
}

// NewInput returns an input node reading lane index.
func NewInput(index int) *Input { return &Input{Index: index} }

func (in *Input) Evaluate(_ *Circuit, inputs []Bit) (Bit, error) {
	if in.Index < 0 || in.Index >= len(inputs) {
		return Low, nil
	}
	return inputs[in.Index], nil
}

func (in *Input) Describe(map[Node]string) string {
	return "in[" + strconv.Itoa(in.Index) + "]"
}

// Clock reads the owning circuit's current clock level.
type Clock struct{}

func (*Clock) Evaluate(c *Circuit, _ []Bit) (Bit, error) {
	return c.clock, nil
}

func (*Clock) Describe(map[Node]string) string { return "CLK" }
