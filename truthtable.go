package logicsim

import "github.com/pkg/errors"

// A Row pairs one input combination with the outputs it produced.
type Row struct {
	Inputs  []Bit
	Outputs []Bit
}

// TruthTable evaluates all 2^InputLength input combinations, each on a
// fresh stateless clone so rows cannot influence one another, with the
// clock held at clockLevel. Rows are binary-encoded in counting order with
// input lane 0 as the most significant bit.
func (c *Circuit) TruthTable(clockLevel Bit) ([]Row, error) {
	n := c.InputLength()
	rows := make([]Row, 0, 1<<uint(n))
	for r := 0; r < 1<<uint(n); r++ {
		in := make([]Bit, n)
		for i := 0; i < n; i++ {
			in[i] = Bit(r >> uint(n-1-i) & 1)
		}
		cc, err := c.Clone(false)
		if err != nil {
			return nil, err
		}
		cc.SetClock(clockLevel)
		out, err := cc.Tick(in)
		if err != nil {
			return nil, errors.Wrapf(err, "truth table row %d", r)
		}
		rows = append(rows, Row{Inputs: in, Outputs: out})
	}
	return rows, nil
}
