package sat

import "context"

type cryptominisatSolver struct {
	clauseBuffer
	path string
}

func NewCryptominisatSolver(path string) Solver {
	return &cryptominisatSolver{path: path}
}

func (solver *cryptominisatSolver) Solve(ctx context.Context) (bool, error) {
	return runCompetitionSolver(ctx, &solver.clauseBuffer, "cryptominisat", solver.path, "--verb", "0")
}
