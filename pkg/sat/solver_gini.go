package sat

import (
	"context"
	"fmt"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// How often a running gini search is polled for completion or cancellation
const giniPollInterval = 5 * time.Millisecond

type giniSolver struct {
	solver    *gini.Gini
	variables int
	solved    bool
}

func NewGiniSolver() Solver {
	return &giniSolver{
		solver: gini.New(),
	}
}

func (s *giniSolver) AddClause(clause []int64) {
	for _, literal := range clause {
		s.solver.Add(z.Dimacs2Lit(int(literal)))
		s.variables = max(s.variables, int(max(literal, -literal)))
	}
	s.solver.Add(z.LitNull)
}

// Solve runs gini on a background goroutine and stops it as soon as ctx is done
func (s *giniSolver) Solve(ctx context.Context) (bool, error) {
	s.solved = false
	search := s.solver.GoSolve()

	ticker := time.NewTicker(giniPollInterval)
	defer ticker.Stop()

	for {
		if result, done := search.Test(); done {
			return s.result(result)
		}

		select {
		case <-ctx.Done():
			// The search may have finished between Test and Stop, in which case its result is still valid
			if result := search.Stop(); result != 0 {
				return s.result(result)
			}
			return false, fmt.Errorf("gini search was stopped: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

// gini reports 1 for satisfiable, -1 for unsatisfiable and 0 for undetermined
func (s *giniSolver) result(result int) (bool, error) {
	switch result {
	case 1:
		s.solved = true
		return true, nil
	case -1:
		return false, nil
	default:
		return false, fmt.Errorf("gini finished without a verdict: %d", result)
	}
}

func (s *giniSolver) Model() (Model, error) {
	if !s.solved {
		return nil, fmt.Errorf("gini has no model: the last solve was not satisfiable")
	}

	model := make(Model, s.variables)
	for i := range model {
		variable := z.Var(i + 1)
		if s.solver.Value(variable.Pos()) {
			model[i] = int64(variable)
		} else {
			model[i] = -int64(variable)
		}
	}
	return model, nil
}
