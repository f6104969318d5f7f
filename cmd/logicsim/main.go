// Copyright 2024 The logicsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Command logicsim loads circuit definitions from YAML netlists and
// simulates, tabulates or minimizes them.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	sim "github.com/hwx/logicsim"
	"github.com/hwx/logicsim/internal/netlist"
)

var verbose bool

func load(path string) (*sim.Circuit, error) {
	def, err := netlist.Load(path)
	if err != nil {
		return nil, err
	}
	c, err := def.Build()
	if err != nil {
		return nil, err
	}
	if verbose {
		c.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
	return c, nil
}

func bits(s string) ([]sim.Bit, error) {
	v := make([]sim.Bit, len(s))
	for i, r := range s {
		switch r {
		case '0':
			v[i] = sim.Low
		case '1':
			v[i] = sim.High
		default:
			return nil, errors.Errorf("invalid bit %q in %q", r, s)
		}
	}
	return v, nil
}

func bitString(v []sim.Bit) string {
	var b strings.Builder
	for _, x := range v {
		b.WriteByte('0' + byte(x))
	}
	return b.String()
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <netlist.yaml>",
		Short: "Print a circuit's expression tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := load(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d inputs, %d outputs\n%s\n",
				c.Name(), c.InputLength(), c.OutputLength(), c.Describe())
			return nil
		},
	}
}

func tableCmd() *cobra.Command {
	var clock uint8
	cmd := &cobra.Command{
		Use:   "table <netlist.yaml>",
		Short: "Print a circuit's full truth table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := load(args[0])
			if err != nil {
				return err
			}
			rows, err := c.TruthTable(sim.Bit(clock))
			if err != nil {
				return err
			}
			for _, r := range rows {
				fmt.Printf("%s | %s\n", bitString(r.Inputs), bitString(r.Outputs))
			}
			return nil
		},
	}
	cmd.Flags().Uint8Var(&clock, "clock", 0, "clock level held during evaluation (0 or 1)")
	return cmd
}

func minimizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "minimize <netlist.yaml>",
		Short: "Print a minimal sum-of-products form of the circuit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := load(args[0])
			if err != nil {
				return err
			}
			m, err := c.Simplify()
			if err != nil {
				return err
			}
			fmt.Println(m.Describe())
			return nil
		},
	}
}

func runCmd() *cobra.Command {
	var clocks string
	cmd := &cobra.Command{
		Use:   "run <netlist.yaml> <inputs>...",
		Short: "Tick a circuit through a sequence of input vectors",
		Long: `Tick a circuit through a sequence of input vectors, one tick per
argument. Each vector is a string of 0s and 1s, one bit per input lane.
With --clocks, the clock is set per tick from the given bit string before
the corresponding input vector is applied.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := load(args[0])
			if err != nil {
				return err
			}
			steps := args[1:]
			if clocks != "" && len(clocks) != len(steps) {
				return errors.Errorf("%d clock levels for %d ticks", len(clocks), len(steps))
			}
			for i, s := range steps {
				in, err := bits(s)
				if err != nil {
					return err
				}
				if len(in) != c.InputLength() {
					return errors.Errorf("tick %d: %d input bits, circuit takes %d",
						i, len(in), c.InputLength())
				}
				if clocks != "" {
					cl, err := bits(clocks[i : i+1])
					if err != nil {
						return err
					}
					c.SetClock(cl[0])
				}
				out, err := c.Tick(in)
				if err != nil {
					return err
				}
				fmt.Printf("%s | %s\n", s, bitString(out))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&clocks, "clocks", "", "per-tick clock levels, e.g. 0101")
	return cmd
}

func main() {
	root := &cobra.Command{
		Use:           "logicsim",
		Short:         "Simulate and minimize digital logic circuits",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log engine events")
	root.AddCommand(showCmd(), tableCmd(), minimizeCmd(), runCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
