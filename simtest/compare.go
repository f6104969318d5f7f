// Copyright 2024 The logicsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package simtest provides utility functions for testing circuits.
package simtest

import (
	"math/rand"
	"testing"

	sim "github.com/hwx/logicsim"
)

// Compare checks that two circuits implement the same logic: first every
// input combination is swept on fresh clones of both (via TruthTable),
// then a random input sequence is run on one persistent clone of each.
// Circuits with memory elements should only be compared when their state
// evolution is expected to match under identical input sequences.
func Compare(t *testing.T, a, b *sim.Circuit) {
	t.Helper()

	if a.InputLength() != b.InputLength() {
		t.Fatalf("input length mismatch: %s=%d, %s=%d",
			a.Name(), a.InputLength(), b.Name(), b.InputLength())
	}
	if a.OutputLength() != b.OutputLength() {
		t.Fatalf("output length mismatch: %s=%d, %s=%d",
			a.Name(), a.OutputLength(), b.Name(), b.OutputLength())
	}

	for _, clock := range []sim.Bit{sim.Low, sim.High} {
		ta, err := a.TruthTable(clock)
		if err != nil {
			t.Fatal(err)
		}
		tb, err := b.TruthTable(clock)
		if err != nil {
			t.Fatal(err)
		}
		for r := range ta {
			if !equal(ta[r].Outputs, tb[r].Outputs) {
				t.Fatalf("clock=%d inputs=%v: %s => %v, %s => %v",
					clock, ta[r].Inputs, a.Name(), ta[r].Outputs, b.Name(), tb[r].Outputs)
			}
		}
	}

	ca, err := a.Clone(false)
	if err != nil {
		t.Fatal(err)
	}
	cb, err := b.Clone(false)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(1))
	in := make([]sim.Bit, a.InputLength())
	for i := 0; i < 256; i++ {
		for k := range in {
			in[k] = sim.Bit(rng.Intn(2))
		}
		clock := sim.Bit(rng.Intn(2))
		ca.SetClock(clock)
		cb.SetClock(clock)
		oa, err := ca.Tick(in)
		if err != nil {
			t.Fatal(err)
		}
		ob, err := cb.Tick(in)
		if err != nil {
			t.Fatal(err)
		}
		if !equal(oa, ob) {
			t.Fatalf("step %d clock=%d inputs=%v: %s => %v, %s => %v",
				i, clock, in, a.Name(), oa, b.Name(), ob)
		}
	}
}

func equal(a, b []sim.Bit) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
