package netlist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/hwx/logicsim"
	"github.com/hwx/logicsim/internal/netlist"
)

const xorYAML = `
name: xor
inputs: [a, b]
gates:
  - {name: nab, kind: NAND, args: [a, b]}
  - {name: w0, kind: NAND, args: [a, nab]}
  - {name: w1, kind: NAND, args: [b, nab]}
  - {name: out, kind: NAND, args: [w0, w1]}
outputs: [out]
`

const latchYAML = `
name: sr-latch
inputs: [s, r]
feedback:
  - {name: q, initial: 0, driver: norR}
  - {name: qn, initial: 1, driver: norS}
gates:
  - {name: norR, kind: NOR, args: [r, qn]}
  - {name: norS, kind: NOR, args: [s, q]}
outputs: [q, qn]
`

func TestBuildCombinational(t *testing.T) {
	def, err := netlist.Parse([]byte(xorYAML))
	require.NoError(t, err)
	c, err := def.Build()
	require.NoError(t, err)

	require.Equal(t, 2, c.InputLength())
	rows, err := c.TruthTable(sim.Low)
	require.NoError(t, err)
	want := []sim.Bit{0, 1, 1, 0}
	for r, w := range want {
		assert.Equal(t, w, rows[r].Outputs[0], "row %d", r)
	}
}

func TestBuildFeedback(t *testing.T) {
	def, err := netlist.Parse([]byte(latchYAML))
	require.NoError(t, err)
	c, err := def.Build()
	require.NoError(t, err)

	out, err := c.EvaluateUntilStable([]sim.Bit{1, 0}, 0)
	require.NoError(t, err)
	assert.Equal(t, []sim.Bit{1, 0}, out, "set")

	out, err = c.EvaluateUntilStable([]sim.Bit{0, 0}, 0)
	require.NoError(t, err)
	assert.Equal(t, []sim.Bit{1, 0}, out, "hold")

	out, err = c.EvaluateUntilStable([]sim.Bit{0, 1}, 0)
	require.NoError(t, err)
	assert.Equal(t, []sim.Bit{0, 1}, out, "reset")
}

func TestConstantsAndClock(t *testing.T) {
	def, err := netlist.Parse([]byte(`
name: clocked
inputs: [a]
gates:
  - {name: one, kind: AND, args: [a, "1"]}
  - {name: gated, kind: AND, args: [one, clk]}
outputs: [gated]
`))
	require.NoError(t, err)
	c, err := def.Build()
	require.NoError(t, err)

	out, err := c.Tick([]sim.Bit{1})
	require.NoError(t, err)
	assert.Equal(t, sim.Bit(0), out[0], "clock low")

	c.SetClock(sim.High)
	out, err = c.Tick([]sim.Bit{1})
	require.NoError(t, err)
	assert.Equal(t, sim.Bit(1), out[0], "clock high")
}

func TestParseErrors(t *testing.T) {
	td := []struct {
		name string
		yaml string
	}{
		{"missing name", "inputs: [a]\noutputs: [a]"},
		{"no outputs", "name: x\ninputs: [a]"},
		{"gate without kind", "name: x\ninputs: [a]\ngates:\n  - {name: g, args: [a]}\noutputs: [g]"},
		{"gate without args", "name: x\ninputs: [a]\ngates:\n  - {name: g, kind: NOT}\noutputs: [g]"},
		{"bad initial", "name: x\ninputs: [a]\nfeedback:\n  - {name: q, initial: 2, driver: a}\noutputs: [q]"},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			_, err := netlist.Parse([]byte(d.yaml))
			assert.Error(t, err)
		})
	}
}

func TestBuildErrors(t *testing.T) {
	td := []struct {
		name string
		yaml string
		msg  string
	}{
		{
			"unknown wire",
			"name: x\ninputs: [a]\ngates:\n  - {name: g, kind: NOT, args: [missing]}\noutputs: [g]",
			"unknown wire",
		},
		{
			"duplicate wire",
			"name: x\ninputs: [a, a]\noutputs: [a]",
			"duplicate wire",
		},
		{
			"unknown output",
			"name: x\ninputs: [a]\noutputs: [nope]",
			"unknown wire",
		},
		{
			"unknown driver",
			"name: x\ninputs: [a]\nfeedback:\n  - {name: q, initial: 0, driver: nope}\noutputs: [q]",
			"unknown driver",
		},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			def, err := netlist.Parse([]byte(d.yaml))
			require.NoError(t, err)
			_, err = def.Build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), d.msg)
		})
	}
}
