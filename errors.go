package logicsim

import "fmt"

// UnregisteredGateError is returned when a Gate node's kind has no function
// registered on the circuit evaluating it.
type UnregisteredGateError struct {
	Kind string
}

func (e *UnregisteredGateError) Error() string {
	return fmt.Sprintf("no gate function registered for kind %q", e.Kind)
}

// ArityError is returned by a gate function given the wrong number of inputs.
type ArityError struct {
	Gate string
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: want %d inputs, got %d", e.Gate, e.Want, e.Got)
}

// ArityMismatchError is returned when a composite node binds a different
// number of inputs than its sub-circuit expects.
type ArityMismatchError struct {
	Circuit string
	Want    int
	Got     int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("sub-circuit %q takes %d inputs, %d bound", e.Circuit, e.Want, e.Got)
}

// IndexError is returned for an out-of-range sub-circuit output index.
type IndexError struct {
	What   string
	Index  int
	Length int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0, %d)", e.What, e.Index, e.Length)
}

// UncloneableNodeError is returned when the cloner meets a Node
// implementation it does not recognize. It guards future extension and
// should not occur with the node types defined in this package.
type UncloneableNodeError struct {
	Node Node
}

func (e *UncloneableNodeError) Error() string {
	return fmt.Sprintf("cannot clone node of type %T", e.Node)
}

// InfeasibleCoverError is returned by the minimizer when Petrick's method
// finds a minterm no remaining prime implicant covers. It indicates a bug
// in prime-implicant generation, not a user error.
type InfeasibleCoverError struct {
	Minterm uint
}

func (e *InfeasibleCoverError) Error() string {
	return fmt.Sprintf("no prime implicant covers minterm %d", e.Minterm)
}
