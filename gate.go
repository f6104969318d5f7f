package logicsim

import (
	"strings"

	"github.com/pkg/errors"
)

// A GateFunc computes one output bit from a gate's evaluated children.
type GateFunc func(in []Bit) (Bit, error)

// Gate applies a function, resolved by kind in the circuit's registry, to
// its children. A nonzero Delay models propagation delay: the freshly
// computed value is scheduled to become visible Delay ticks later, and
// evaluation returns the previously latched value until then.
type Gate struct {
	Kind     string
	Name     string // optional label used in diagnostics
	Children []Node
	Delay    int

	last Bit
}

// NewGate returns a zero-delay gate of the given kind.
func NewGate(kind string, children ...Node) *Gate {
	return &Gate{Kind: kind, Children: children}
}

// NewDelayedGate returns a gate whose output becomes visible delay ticks
// after evaluation.
func NewDelayedGate(kind string, delay int, children ...Node) *Gate {
	return &Gate{Kind: kind, Children: children, Delay: delay}
}

func (g *Gate) label() string {
	if g.Name != "" {
		return g.Name
	}
	return g.Kind
}

func (g *Gate) Evaluate(c *Circuit, inputs []Bit) (Bit, error) {
	fn, ok := c.gates[g.Kind]
	if !ok {
		return Low, &UnregisteredGateError{Kind: g.Kind}
	}
	in := make([]Bit, len(g.Children))
	for i, ch := range g.Children {
		v, err := ch.Evaluate(c, inputs)
		if err != nil {
			return Low, errors.Wrapf(err, "%s input %d", g.label(), i)
		}
		in[i] = v
	}
	v, err := fn(in)
	if err != nil {
		return Low, errors.Wrap(err, g.label())
	}
	if g.Delay == 0 {
		g.last = v
		return v, nil
	}
	out := g.last
	c.schedule(g.Delay, "gate "+g.label(), func() { g.last = v })
	return out, nil
}

func (g *Gate) Describe(visited map[Node]string) string {
	var b strings.Builder
	b.WriteString(g.Kind)
	b.WriteByte('(')
	for i, ch := range g.Children {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(ch.Describe(visited))
	}
	b.WriteByte(')')
	return b.String()
}

// Standard gate kinds.
const (
	GateAnd  = "AND"
	GateOr   = "OR"
	GateNot  = "NOT"
	GateXor  = "XOR"
	GateNand = "NAND"
	GateNor  = "NOR"
	GateXnor = "XNOR"
)

// And is the standard AND function. It accepts any number of inputs;
// with none it returns 1.
func And(in []Bit) (Bit, error) {
	for _, b := range in {
		if b == Low {
			return Low, nil
		}
	}
	return High, nil
}

// Or is the standard OR function. It accepts any number of inputs;
// with none it returns 0.
func Or(in []Bit) (Bit, error) {
	for _, b := range in {
		if b != Low {
			return High, nil
		}
	}
	return Low, nil
}

// Not is the standard NOT function. It requires exactly one input.
func Not(in []Bit) (Bit, error) {
	if len(in) != 1 {
		return Low, &ArityError{Gate: GateNot, Want: 1, Got: len(in)}
	}
	return in[0] ^ High, nil
}

// Xor is the standard XOR (odd parity) function.
func Xor(in []Bit) (Bit, error) {
	var v Bit
	for _, b := range in {
		v ^= b & High
	}
	return v, nil
}

// Nand, Nor and Xnor invert their base functions.

func Nand(in []Bit) (Bit, error) {
	v, err := And(in)
	return v ^ High, err
}

func Nor(in []Bit) (Bit, error) {
	v, err := Or(in)
	return v ^ High, err
}

func Xnor(in []Bit) (Bit, error) {
	v, err := Xor(in)
	return v ^ High, err
}

// RegisterStandardGates registers the AND, OR, NOT, XOR, NAND, NOR and
// XNOR functions on c under their standard kinds.
func RegisterStandardGates(c *Circuit) {
	c.RegisterGate(GateAnd, And)
	c.RegisterGate(GateOr, Or)
	c.RegisterGate(GateNot, Not)
	c.RegisterGate(GateXor, Xor)
	c.RegisterGate(GateNand, Nand)
	c.RegisterGate(GateNor, Nor)
	c.RegisterGate(GateXnor, Xnor)
}
