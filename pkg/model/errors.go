package model

import "fmt"

// InputError reports a graph description that cannot be loaded
type InputError struct {
	Line uint64 // 1-based line of the offending input, 0 when it doesn't refer to a line
	Err  error
}

func (err *InputError) Error() string {
	if err.Line == 0 {
		return fmt.Sprintf("invalid graph input: %v", err.Err)
	}
	return fmt.Sprintf("invalid graph input at line %d: %v", err.Line, err.Err)
}

func (err *InputError) Unwrap() error {
	return err.Err
}

// InvariantViolation reports a satisfying model which does not decode into a Hamiltonian cycle.
// It points at a bug in the encoding, the decoding or the solver, never at the input graph.
type InvariantViolation struct {
	Position uint64
	Reason   string
}

func (err *InvariantViolation) Error() string {
	return fmt.Sprintf("model does not decode into a cycle at position %d: %v", err.Position, err.Reason)
}
