// Copyright 2024 The logicsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Composite embeds another circuit's logic as a single node. The target is
// cloned once, privately, at construction, so several placements of the
// same template never share latch or feedback state.
//
// The composite's output vector is computed at most once per parent tick:
// it binds its inputs, drives the private sub-circuit to a stable fixed
// point and caches the result keyed by the parent's current tick. Without
// the cache, evaluation cost would grow exponentially with fan-out depth.
type Composite struct {
	Name string

	sub      *Circuit
	bindings []Node

	cacheTick int64
	cached    bool
	outputs   []Bit
}

// NewComposite embeds sub into a parent graph, binding one node per
// sub-circuit input lane. It fails with an ArityMismatchError when the
// binding count differs from sub's input length.
func NewComposite(name string, sub *Circuit, bindings ...Node) (*Composite, error) {
	if want := sub.InputLength(); len(bindings) != want {
		return nil, &ArityMismatchError{Circuit: sub.Name(), Want: want, Got: len(bindings)}
	}
	priv, err := sub.Clone(false)
	if err != nil {
		return nil, errors.Wrap(err, "composite "+name)
	}
	return &Composite{Name: name, sub: priv, bindings: bindings, cacheTick: -1}, nil
}

// Output returns an accessor node tapping one lane of the composite's
// output vector.
func (cp *Composite) Output(index int) (*SubOutput, error) {
	if index < 0 || index >= cp.sub.OutputLength() {
		return nil, &IndexError{What: "composite output", Index: index, Length: cp.sub.OutputLength()}
	}
	return &SubOutput{Composite: cp, Index: index}, nil
}

// Evaluate returns output lane 0. Use Output to tap other lanes.
func (cp *Composite) Evaluate(c *Circuit, inputs []Bit) (Bit, error) {
	out, err := cp.evalAll(c, inputs)
	if err != nil {
		return Low, err
	}
	if len(out) == 0 {
		return Low, nil
	}
	return out[0], nil
}

// evalAll returns the sub-circuit's stabilized output vector for the
// parent's current tick, computing it only on the first call per tick.
func (cp *Composite) evalAll(c *Circuit, inputs []Bit) ([]Bit, error) {
	if cp.cached && cp.cacheTick == c.currentTick {
		return cp.outputs, nil
	}
	bound := make([]Bit, len(cp.bindings))
	for i, b := range cp.bindings {
		v, err := b.Evaluate(c, inputs)
		if err != nil {
			return nil, errors.Wrapf(err, "%s binding %d", cp.Name, i)
		}
		bound[i] = v
	}
	// clocked sub-circuits observe the parent's clock level
	cp.sub.clock, cp.sub.prevClock = c.clock, c.prevClock
	out, err := cp.sub.EvaluateUntilStable(bound, DefaultMaxOuterTicks)
	if err != nil {
		return nil, errors.Wrap(err, cp.Name)
	}
	cp.outputs = out
	cp.cacheTick = c.currentTick
	cp.cached = true
	return out, nil
}

func (cp *Composite) Describe(visited map[Node]string) string {
	if s, ok := visited[cp]; ok {
		return s
	}
	visited[cp] = "@" + cp.Name
	var b strings.Builder
	b.WriteString(cp.Name)
	b.WriteByte('(')
	for i, bind := range cp.bindings {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(bind.Describe(visited))
	}
	b.WriteByte(')')
	return b.String()
}

// SubOutput taps a single lane of a Composite's output vector. It is a
// pure accessor with no caching of its own.
type SubOutput struct {
	Composite *Composite
	Index     int
}

func (s *SubOutput) Evaluate(c *Circuit, inputs []Bit) (Bit, error) {
	out, err := s.Composite.evalAll(c, inputs)
	if err != nil {
		return Low, err
	}
	if s.Index < 0 || s.Index >= len(out) {
		return Low, &IndexError{What: "composite output", Index: s.Index, Length: len(out)}
	}
	return out[s.Index], nil
}

func (s *SubOutput) Describe(visited map[Node]string) string {
	return s.Composite.Describe(visited) + "." + strconv.Itoa(s.Index)
}
