// Copyright 2024 The logicsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package logicsim simulates synchronous and combinational digital logic
circuits represented as expression graphs.

A circuit owns a set of root (output) nodes, a registry of named gate
functions and a set of feedback nodes modelling memory elements. Each call
to Tick advances simulation time by one step and runs a bounded fixed-point
iteration (delta cycles) until the output vector stabilizes, resolving
delayed gate propagation and feedback loops along the way.

The package also includes a combinational-logic minimizer (Quine–McCluskey
with Petrick's method): Simplify sweeps the full truth table of a circuit
and returns a new, equivalent circuit in minimal sum-of-products form.
*/
package logicsim
