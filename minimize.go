// Copyright 2024 The logicsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import "github.com/pkg/errors"

// Quine–McCluskey minimization over a circuit's truth table, with
// Petrick's method for the covering step. Minimal cover selection is
// NP-hard in general and Petrick's product-of-sums can grow exponentially
// with the input count; the algorithm is exact and is not capped.

// An implicant cell is a fixed 0, a fixed 1 or a merged-out position.
const (
	cellZero uint8 = 0
	cellOne  uint8 = 1
	cellAny  uint8 = 2 // printed as '-'
)

// mintermCells encodes minterm m over n variables, lane 0 as MSB.
func mintermCells(m uint, n int) []uint8 {
	cells := make([]uint8, n)
	for i := 0; i < n; i++ {
		cells[i] = uint8(m >> uint(n-1-i) & 1)
	}
	return cells
}

func ones(cells []uint8) int {
	n := 0
	for _, c := range cells {
		if c == cellOne {
			n++
		}
	}
	return n
}

func cellsKey(cells []uint8) string {
	b := make([]byte, len(cells))
	for i, c := range cells {
		switch c {
		case cellZero:
			b[i] = '0'
		case cellOne:
			b[i] = '1'
		default:
			b[i] = '-'
		}
	}
	return string(b)
}

// merge combines two terms at Hamming distance exactly 1 (merged-out
// positions must match), replacing the differing cell with a don't-care.
func merge(a, b []uint8) ([]uint8, bool) {
	diff := -1
	for i := range a {
		if a[i] == b[i] {
			continue
		}
		if a[i] == cellAny || b[i] == cellAny {
			return nil, false
		}
		if diff >= 0 {
			return nil, false
		}
		diff = i
	}
	if diff < 0 {
		return nil, false
	}
	m := append([]uint8(nil), a...)
	m[diff] = cellAny
	return m, true
}

// covers reports whether expanding the term's don't-care positions yields
// minterm m.
func covers(cells []uint8, m uint, n int) bool {
	for i, c := range cells {
		if c == cellAny {
			continue
		}
		if c != uint8(m>>uint(n-1-i)&1) {
			return false
		}
	}
	return true
}

// lanes extracts the minterms of one output lane: the row numbers whose
// target output bit is 1.
func laneMinterms(rows []Row, lane int) []uint {
	var ms []uint
	for r, row := range rows {
		if lane < len(row.Outputs) && row.Outputs[lane] == High {
			ms = append(ms, uint(r))
		}
	}
	return ms
}

// primeImplicants repeatedly merges adjacent-popcount terms at distance 1
// until no merge applies. Terms never merged into a larger one are the
// prime implicants, in discovery order.
func primeImplicants(ms []uint, n int) [][]uint8 {
	terms := make([][]uint8, len(ms))
	for i, m := range ms {
		terms[i] = mintermCells(m, n)
	}

	var primes [][]uint8
	primeSeen := make(map[string]bool)

	for len(terms) > 0 {
		// bucket term indices by ascending count of set cells
		buckets := make([][]int, n+1)
		for i, t := range terms {
			o := ones(t)
			buckets[o] = append(buckets[o], i)
		}

		used := make([]bool, len(terms))
		var next [][]uint8
		nextSeen := make(map[string]bool)
		for b := 0; b < n; b++ {
			for _, i := range buckets[b] {
				for _, j := range buckets[b+1] {
					m, ok := merge(terms[i], terms[j])
					if !ok {
						continue
					}
					used[i], used[j] = true, true
					if k := cellsKey(m); !nextSeen[k] {
						nextSeen[k] = true
						next = append(next, m)
					}
				}
			}
		}
		for i, t := range terms {
			if used[i] {
				continue
			}
			if k := cellsKey(t); !primeSeen[k] {
				primeSeen[k] = true
				primes = append(primes, t)
			}
		}
		terms = next
	}
	return primes
}

// selectCover picks the primes forming a cover of ms: essential primes
// first (any minterm covered by exactly one prime makes it essential),
// then Petrick's method over the remainder. Among minimum-size Petrick
// covers the first one found wins, so the selected form is not unique but
// its truth table is.
func selectCover(primes [][]uint8, ms []uint, n int) ([][]uint8, error) {
	coverIdx := make([][]int, len(ms))
	for k, m := range ms {
		for p, pr := range primes {
			if covers(pr, m, n) {
				coverIdx[k] = append(coverIdx[k], p)
			}
		}
	}

	var chosen []int
	isEssential := make(map[int]bool)
	for k := range ms {
		if len(coverIdx[k]) == 1 {
			p := coverIdx[k][0]
			if !isEssential[p] {
				isEssential[p] = true
				chosen = append(chosen, p)
			}
		}
	}

	// clauses over non-essential primes for minterms still uncovered
	var clauses [][]int
	for k, m := range ms {
		covered := false
		for _, p := range coverIdx[k] {
			if isEssential[p] {
				covered = true
				break
			}
		}
		if covered {
			continue
		}
		var cl []int
		for _, p := range coverIdx[k] {
			if !isEssential[p] {
				cl = append(cl, p)
			}
		}
		if len(cl) == 0 {
			return nil, &InfeasibleCoverError{Minterm: m}
		}
		clauses = append(clauses, cl)
	}

	if len(clauses) > 0 {
		// product of sums: multiplying two sum-terms unions their
		// literal sets
		var sums [][]int
		for _, p := range clauses[0] {
			sums = append(sums, []int{p})
		}
		for _, cl := range clauses[1:] {
			var next [][]int
			seen := make(map[string]bool)
			for _, sum := range sums {
				for _, p := range cl {
					u := unionSorted(sum, p)
					if k := intsKey(u); !seen[k] {
						seen[k] = true
						next = append(next, u)
					}
				}
			}
			sums = next
		}
		best := sums[0]
		for _, s := range sums[1:] {
			if len(s) < len(best) {
				best = s
			}
		}
		chosen = append(chosen, best...)
	}

	sel := make([][]uint8, len(chosen))
	for i, p := range chosen {
		sel[i] = primes[p]
	}
	return sel, nil
}

// unionSorted inserts p into the sorted set s, returning a new slice.
func unionSorted(s []int, p int) []int {
	i := 0
	for i < len(s) && s[i] < p {
		i++
	}
	if i < len(s) && s[i] == p {
		return s
	}
	u := make([]int, 0, len(s)+1)
	u = append(u, s[:i]...)
	u = append(u, p)
	u = append(u, s[i:]...)
	return u
}

func intsKey(s []int) string {
	b := make([]byte, 0, len(s)*2)
	for _, v := range s {
		b = append(b, byte(v), byte(v>>8))
	}
	return string(b)
}

// buildSOP reconstructs a sum-of-products graph from selected primes: each
// prime becomes an AND of (possibly negated) input nodes over its fixed
// positions, and the lane output is the OR of the terms. Single-node terms
// and single-term sums are not wrapped.
func buildSOP(sel [][]uint8) Node {
	terms := make([]Node, 0, len(sel))
	for _, pr := range sel {
		var lits []Node
		for i, c := range pr {
			switch c {
			case cellOne:
				lits = append(lits, NewInput(i))
			case cellZero:
				lits = append(lits, NewGate(GateNot, NewInput(i)))
			}
		}
		switch len(lits) {
		case 0:
			terms = append(terms, NewLiteral(High))
		case 1:
			terms = append(terms, lits[0])
		default:
			terms = append(terms, NewGate(GateAnd, lits...))
		}
	}
	if len(terms) == 1 {
		return terms[0]
	}
	return NewGate(GateOr, terms...)
}

// Simplify sweeps the circuit's full truth table and returns a new,
// equivalent circuit in minimal sum-of-products form, one minimized
// expression per output lane. The original circuit is not modified. The
// standard gate functions are pre-registered on the result.
func (c *Circuit) Simplify() (*Circuit, error) {
	rows, err := c.TruthTable(Low)
	if err != nil {
		return nil, err
	}
	n := c.InputLength()
	roots := make([]Node, c.OutputLength())
	for lane := range roots {
		ms := laneMinterms(rows, lane)
		switch {
		case len(ms) == 0:
			roots[lane] = NewLiteral(Low)
		case len(ms) == len(rows):
			roots[lane] = NewLiteral(High)
		default:
			primes := primeImplicants(ms, n)
			sel, err := selectCover(primes, ms, n)
			if err != nil {
				return nil, errors.Wrapf(err, "output %d", lane)
			}
			roots[lane] = buildSOP(sel)
		}
	}
	sc := NewCircuit(c.name+" (minimized)", roots...)
	sc.parent = c.id
	RegisterStandardGates(sc)
	return sc, nil
}
