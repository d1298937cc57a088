package sat

import "context"

type cadicalSolver struct {
	clauseBuffer
	path string
}

func NewCadicalSolver(path string) Solver {
	return &cadicalSolver{path: path}
}

func (solver *cadicalSolver) Solve(ctx context.Context) (bool, error) {
	return runCompetitionSolver(ctx, &solver.clauseBuffer, "cadical", solver.path, "-q")
}
