// Copyright 2024 The logicsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package logic provides ready-made circuits built on the logicsim node
// graph: arithmetic blocks, a multiplexer and the classic memory elements.
// They double as worked examples of composites and feedback loops.
package logic

import (
	"github.com/pkg/errors"

	sim "github.com/hwx/logicsim"
)

// HalfAdder returns a circuit with inputs [a, b] and outputs [sum, carry].
func HalfAdder() *sim.Circuit {
	a, b := sim.NewInput(0), sim.NewInput(1)
	sum := sim.NewGate(sim.GateXor, a, b)
	carry := sim.NewGate(sim.GateAnd, a, b)
	c := sim.NewCircuit("half-adder", sum, carry)
	sim.RegisterStandardGates(c)
	return c
}

// FullAdder composes two half adders and an OR for the carry chain.
// Inputs [a, b, cin], outputs [sum, cout].
func FullAdder() (*sim.Circuit, error) {
	ha := HalfAdder()

	h1, err := sim.NewComposite("ha1", ha, sim.NewInput(0), sim.NewInput(1))
	if err != nil {
		return nil, errors.Wrap(err, "full adder")
	}
	s1, err := h1.Output(0)
	if err != nil {
		return nil, err
	}
	c1, err := h1.Output(1)
	if err != nil {
		return nil, err
	}

	h2, err := sim.NewComposite("ha2", ha, s1, sim.NewInput(2))
	if err != nil {
		return nil, errors.Wrap(err, "full adder")
	}
	s2, err := h2.Output(0)
	if err != nil {
		return nil, err
	}
	c2, err := h2.Output(1)
	if err != nil {
		return nil, err
	}

	cout := sim.NewGate(sim.GateOr, c1, c2)
	c := sim.NewCircuit("full-adder", s2, cout)
	sim.RegisterStandardGates(c)
	return c, nil
}

// Mux2 returns a 2-way multiplexer: inputs [a, b, sel], output a when
// sel=0, b when sel=1.
func Mux2() *sim.Circuit {
	a, b, sel := sim.NewInput(0), sim.NewInput(1), sim.NewInput(2)
	out := sim.NewGate(sim.GateOr,
		sim.NewGate(sim.GateAnd, a, sim.NewGate(sim.GateNot, sel)),
		sim.NewGate(sim.GateAnd, b, sel),
	)
	c := sim.NewCircuit("mux2", out)
	sim.RegisterStandardGates(c)
	return c
}

// SRLatch returns a set/reset latch built from cross-coupled NOR gates.
// Inputs [s, r], outputs [q, qn]. S=R=1 is the usual forbidden state.
func SRLatch() *sim.Circuit {
	q := sim.NewFeedback("q", sim.Low, 0)
	qn := sim.NewFeedback("qn", sim.High, 0)
	q.SetDriver(sim.NewGate(sim.GateNor, sim.NewInput(1), qn))
	qn.SetDriver(sim.NewGate(sim.GateNor, sim.NewInput(0), q))

	c := sim.NewCircuit("sr-latch", q, qn)
	sim.RegisterStandardGates(c)
	c.RegisterFeedback(q)
	c.RegisterFeedback(qn)
	return c
}

// DFlipFlop returns a rising-edge D flip-flop: input [d], output [q].
// The edge detector is itself built in the graph: a feedback node tracks
// the previously seen clock level, so Q latches D only in the first delta
// cycle after the clock goes high.
func DFlipFlop() *sim.Circuit {
	clk := &sim.Clock{}
	prev := sim.NewFeedback("prevclk", sim.Low, 0)
	prev.SetDriver(clk)

	d := sim.NewInput(0)
	q := sim.NewFeedback("q", sim.Low, 0)
	rising := sim.NewGate(sim.GateAnd, clk, sim.NewGate(sim.GateNot, prev))
	hold := sim.NewGate(sim.GateAnd, q, sim.NewGate(sim.GateNot, rising))
	load := sim.NewGate(sim.GateAnd, d, rising)
	q.SetDriver(sim.NewGate(sim.GateOr, hold, load))

	c := sim.NewCircuit("dff", q)
	sim.RegisterStandardGates(c)
	c.RegisterFeedback(q)
	c.RegisterFeedback(prev)
	return c
}
