package sat

import "context"

type slimeSolver struct {
	clauseBuffer
	path string
}

func NewSlimeSolver(path string) Solver {
	return &slimeSolver{path: path}
}

func (solver *slimeSolver) Solve(ctx context.Context) (bool, error) {
	return runCompetitionSolverOnFile(ctx, &solver.clauseBuffer, "slime", solver.path)
}

// ortoolsat wraps the CP-SAT solver of OR-Tools behind the SAT-competition interface
type ortoolsatSolver struct {
	clauseBuffer
	path string
}

func NewOrtoolsatSolver(path string) Solver {
	return &ortoolsatSolver{path: path}
}

func (solver *ortoolsatSolver) Solve(ctx context.Context) (bool, error) {
	return runCompetitionSolverOnFile(ctx, &solver.clauseBuffer, "ortoolsat", solver.path)
}
