package sat

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Model lists one signed literal per variable: entry i-1 is +i when variable i is true and -i when it is false
type Model []int64

// Value reports whether variable is true in the model
func (model Model) Value(variable uint64) (bool, bool) {
	if variable == 0 || variable > uint64(len(model)) {
		return false, false
	}
	return model[variable-1] > 0, true
}

// Formula is a CNF formula: a conjunction of clauses, each clause a disjunction of signed literals
type Formula struct {
	Variables uint64
	Clauses   [][]int64
}

func NewFormula(variables uint64) *Formula {
	return &Formula{
		Variables: variables,
		Clauses:   [][]int64{},
	}
}

// AddClause appends clause after the ones already present. Duplicates are kept.
func (f *Formula) AddClause(clause []int64) {
	f.Clauses = append(f.Clauses, clause)
}

func (f Formula) ClauseCount() uint64 {
	return uint64(len(f.Clauses))
}

func (f Formula) ToDIMACS() string {
	var builder strings.Builder
	f.WriteDIMACS(&builder) // strings.Builder never fails
	return builder.String()
}

// WriteDIMACS serializes the formula in DIMACS CNF, keeping the clause order
func (f Formula) WriteDIMACS(w io.Writer) error {
	buffer := make([]byte, 0, 64)
	buffer = fmt.Appendf(buffer, "p cnf %d %d\n", f.Variables, len(f.Clauses))
	if _, err := w.Write(buffer); err != nil {
		return fmt.Errorf("cannot write DIMACS header: %w", err)
	}

	for _, clause := range f.Clauses {
		buffer = buffer[:0]
		for _, literal := range clause {
			buffer = strconv.AppendInt(buffer, literal, 10)
			buffer = append(buffer, ' ')
		}
		buffer = append(buffer, '0', '\n')
		if _, err := w.Write(buffer); err != nil {
			return fmt.Errorf("cannot write DIMACS clause: %w", err)
		}
	}
	return nil
}
