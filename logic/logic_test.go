package logic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/hwx/logicsim"
	"github.com/hwx/logicsim/logic"
)

func TestHalfAdder(t *testing.T) {
	ha := logic.HalfAdder()
	require.Equal(t, 2, ha.InputLength())
	require.Equal(t, 2, ha.OutputLength())

	td := []struct {
		a, b       sim.Bit
		sum, carry sim.Bit
	}{
		{0, 0, 0, 0},
		{0, 1, 1, 0},
		{1, 0, 1, 0},
		{1, 1, 0, 1},
	}
	for _, d := range td {
		out, err := ha.Tick([]sim.Bit{d.a, d.b})
		require.NoError(t, err)
		assert.Equal(t, []sim.Bit{d.sum, d.carry}, out, "a=%d b=%d", d.a, d.b)
	}
}

func TestFullAdder(t *testing.T) {
	fa, err := logic.FullAdder()
	require.NoError(t, err)
	require.Equal(t, 3, fa.InputLength())
	require.Equal(t, 2, fa.OutputLength())

	td := []struct {
		a, b, cin sim.Bit
		sum, cout sim.Bit
	}{
		{0, 0, 0, 0, 0},
		{0, 0, 1, 1, 0},
		{0, 1, 0, 1, 0},
		{0, 1, 1, 0, 1},
		{1, 0, 0, 1, 0},
		{1, 0, 1, 0, 1},
		{1, 1, 0, 0, 1},
		{1, 1, 1, 1, 1},
	}
	for _, d := range td {
		out, err := fa.Tick([]sim.Bit{d.a, d.b, d.cin})
		require.NoError(t, err)
		assert.Equal(t, []sim.Bit{d.sum, d.cout}, out, "a=%d b=%d cin=%d", d.a, d.b, d.cin)
	}
}

func TestMux2(t *testing.T) {
	mux := logic.Mux2()
	td := []struct {
		a, b, sel, want sim.Bit
	}{
		{0, 1, 0, 0},
		{0, 1, 1, 1},
		{1, 0, 0, 1},
		{1, 0, 1, 0},
	}
	for _, d := range td {
		out, err := mux.Tick([]sim.Bit{d.a, d.b, d.sel})
		require.NoError(t, err)
		assert.Equal(t, d.want, out[0], "a=%d b=%d sel=%d", d.a, d.b, d.sel)
	}
}

func TestSRLatch(t *testing.T) {
	sr := logic.SRLatch()

	steps := []struct {
		name  string
		s, r  sim.Bit
		q, qn sim.Bit
	}{
		{"set", 1, 0, 1, 0},
		{"hold set", 0, 0, 1, 0},
		{"reset", 0, 1, 0, 1},
		{"hold reset", 0, 0, 0, 1},
		{"set again", 1, 0, 1, 0},
	}
	for _, st := range steps {
		out, err := sr.EvaluateUntilStable([]sim.Bit{st.s, st.r}, 0)
		require.NoError(t, err, st.name)
		assert.Equal(t, []sim.Bit{st.q, st.qn}, out, st.name)
	}
}
