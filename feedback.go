package logicsim

import "github.com/pkg/errors"

// Feedback models a memory element: a node whose value is read during graph
// evaluation but written only by an explicit, circuit-driven update step.
// Evaluate never descends into the driving expression, which is what keeps
// cyclic graphs finite — the cycle is split into a read operation and a
// write operation on the same node.
//
// Register the node with Circuit.RegisterFeedback so the engine updates it
// once per delta cycle.
type Feedback struct {
	Name    string
	Driver  Node
	Initial Bit
	Delay   int

	current Bit
}

// NewFeedback returns a feedback node latched at initial. Attach the
// driving expression with SetDriver; it is a separate step so the driver
// may reference the node itself.
func NewFeedback(name string, initial Bit, delay int) *Feedback {
	return &Feedback{Name: name, Initial: initial, Delay: delay, current: initial}
}

// SetDriver attaches the expression whose value the node latches.
func (f *Feedback) SetDriver(n Node) { f.Driver = n }

// Value returns the currently latched bit.
func (f *Feedback) Value() Bit { return f.current }

// Evaluate returns the latched value. It never evaluates the driver.
func (f *Feedback) Evaluate(*Circuit, []Bit) (Bit, error) {
	return f.current, nil
}

// computeDriver evaluates the driving expression without applying it.
// The circuit computes all drivers first and applies them after, so one
// node's update never leaks into another's evaluation in the same phase.
func (f *Feedback) computeDriver(c *Circuit, inputs []Bit) (Bit, error) {
	if f.Driver == nil {
		return f.current, nil
	}
	v, err := f.Driver.Evaluate(c, inputs)
	if err != nil {
		return Low, errors.Wrap(err, "feedback "+f.Name)
	}
	return v, nil
}

// apply latches a previously computed value, honoring the delay rule.
func (f *Feedback) apply(c *Circuit, v Bit) {
	if f.Delay == 0 {
		f.current = v
		return
	}
	c.schedule(f.Delay, "feedback "+f.Name, func() { f.current = v })
}

func (f *Feedback) Describe(visited map[Node]string) string {
	if s, ok := visited[f]; ok {
		return s
	}
	visited[f] = "@" + f.Name
	if f.Driver == nil {
		return f.Name
	}
	return f.Name + "{" + f.Driver.Describe(visited) + "}"
}
