// Package netlist loads circuit definitions from a small YAML format and
// compiles them into logicsim node graphs.
//
// A definition names its input lanes, then lists gates in dependency
// order; every gate output is a named wire. Gate arguments reference input
// names, earlier wire names, feedback names, the clock wire "clk" or the
// constants "0" and "1". Feedback entries may reference any wire as their
// driver, including wires defined after the point of use — that is what
// closes memory loops.
package netlist

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	sim "github.com/hwx/logicsim"
)

// Gate is one named product of the netlist. Kind must be registered on
// the built circuit; the standard kinds always are.
type Gate struct {
	Name  string   `yaml:"name" validate:"required"`
	Kind  string   `yaml:"kind" validate:"required"`
	Args  []string `yaml:"args" validate:"required,min=1,dive,required"`
	Delay int      `yaml:"delay" validate:"gte=0"`
}

// Feedback declares a memory element driven by the named wire.
type Feedback struct {
	Name    string `yaml:"name" validate:"required"`
	Initial uint8  `yaml:"initial" validate:"lte=1"`
	Delay   int    `yaml:"delay" validate:"gte=0"`
	Driver  string `yaml:"driver" validate:"required"`
}

// Definition is a full circuit description.
type Definition struct {
	Name     string     `yaml:"name" validate:"required"`
	Inputs   []string   `yaml:"inputs" validate:"dive,required"`
	Gates    []Gate     `yaml:"gates" validate:"dive"`
	Feedback []Feedback `yaml:"feedback" validate:"dive"`
	Outputs  []string   `yaml:"outputs" validate:"required,min=1,dive,required"`
}

// Parse decodes and validates a YAML definition.
func Parse(data []byte) (*Definition, error) {
	var d Definition
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(err, "parse netlist")
	}
	if err := validator.New().Struct(&d); err != nil {
		return nil, errors.Wrap(err, "validate netlist")
	}
	return &d, nil
}

// Load reads and parses a definition file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "load netlist")
	}
	return Parse(data)
}

// Build compiles the definition into a circuit with the standard gates
// registered and all feedback nodes wired and registered.
func (d *Definition) Build() (*sim.Circuit, error) {
	wires := map[string]sim.Node{
		"0":   sim.NewLiteral(sim.Low),
		"1":   sim.NewLiteral(sim.High),
		"clk": &sim.Clock{},
	}
	declare := func(name string, n sim.Node) error {
		if _, ok := wires[name]; ok {
			return errors.Errorf("duplicate wire name %q", name)
		}
		wires[name] = n
		return nil
	}

	for i, name := range d.Inputs {
		if err := declare(name, sim.NewInput(i)); err != nil {
			return nil, err
		}
	}
	// feedback nodes exist before any gate so cycles can reference them
	fbs := make([]*sim.Feedback, len(d.Feedback))
	for i, f := range d.Feedback {
		fbs[i] = sim.NewFeedback(f.Name, sim.Bit(f.Initial), f.Delay)
		if err := declare(f.Name, fbs[i]); err != nil {
			return nil, err
		}
	}
	for _, g := range d.Gates {
		args := make([]sim.Node, len(g.Args))
		for i, a := range g.Args {
			n, ok := wires[a]
			if !ok {
				return nil, errors.Errorf("gate %q: unknown wire %q", g.Name, a)
			}
			args[i] = n
		}
		node := sim.NewDelayedGate(g.Kind, g.Delay, args...)
		node.Name = g.Name
		if err := declare(g.Name, node); err != nil {
			return nil, err
		}
	}
	for i, f := range d.Feedback {
		drv, ok := wires[f.Driver]
		if !ok {
			return nil, errors.Errorf("feedback %q: unknown driver wire %q", f.Name, f.Driver)
		}
		fbs[i].SetDriver(drv)
	}

	roots := make([]sim.Node, len(d.Outputs))
	for i, name := range d.Outputs {
		n, ok := wires[name]
		if !ok {
			return nil, errors.Errorf("output %d: unknown wire %q", i, name)
		}
		roots[i] = n
	}

	c := sim.NewCircuit(d.Name, roots...)
	sim.RegisterStandardGates(c)
	for _, f := range fbs {
		c.RegisterFeedback(f)
	}
	return c, nil
}
