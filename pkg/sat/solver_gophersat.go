package sat

import (
	"context"
	"fmt"

	"github.com/crillab/gophersat/solver"
	"github.com/samber/lo"
)

type gophersatSolver struct {
	clauses [][]int
	model   Model
}

func NewGophersatSolver() Solver {
	return &gophersatSolver{}
}

func (s *gophersatSolver) AddClause(clause []int64) {
	s.clauses = append(s.clauses, lo.Map(clause, func(literal int64, _ int) int { return int(literal) }))
}

// Solve runs gophersat's CDCL search. The search itself cannot be interrupted, so the context is only checked before it starts.
func (s *gophersatSolver) Solve(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("gophersat was not started: %w", err)
	}

	s.model = nil
	instance := solver.New(solver.ParseSlice(s.clauses))

	switch status := instance.Solve(); status {
	case solver.Sat:
		values := instance.Model()
		s.model = make(Model, len(values))
		for i, value := range values {
			if value {
				s.model[i] = int64(i + 1)
			} else {
				s.model[i] = -int64(i + 1)
			}
		}
		return true, nil
	case solver.Unsat:
		return false, nil
	default:
		return false, fmt.Errorf("gophersat finished with status %v", status)
	}
}

func (s *gophersatSolver) Model() (Model, error) {
	if s.model == nil {
		return nil, fmt.Errorf("gophersat has no model: the last solve was not satisfiable")
	}
	return s.model, nil
}
