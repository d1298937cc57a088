package sat

import "context"

type kissatSolver struct {
	clauseBuffer
	path string
}

func NewKissatSolver(path string) Solver {
	return &kissatSolver{path: path}
}

func (solver *kissatSolver) Solve(ctx context.Context) (bool, error) {
	return runCompetitionSolver(ctx, &solver.clauseBuffer, "kissat", solver.path, "-q", "--relaxed")
}
