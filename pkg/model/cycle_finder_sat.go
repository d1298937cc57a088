package model

import (
	"context"
	"fmt"
	"time"

	"github.com/Chleb0/NAIL062-Hamiltonian-Path-with-SAT/pkg/sat"
	"github.com/charmbracelet/log"
)

type satCycleFinder struct {
	newSolver func() sat.Solver
	precheck  bool
	logger    *log.Logger
}

// NewSATCycleFinder returns a finder which encodes the graph, solves the formula with a fresh solver from newSolver and decodes the model.
// With precheck set, graphs without a perfect successor matching are rejected before encoding.
func NewSATCycleFinder(newSolver func() sat.Solver, precheck bool, logger *log.Logger) CycleFinder {
	if logger == nil {
		logger = log.Default()
	}
	return &satCycleFinder{
		newSolver: newSolver,
		precheck:  precheck,
		logger:    logger,
	}
}

func (finder *satCycleFinder) Find(ctx context.Context, graph Graph) (Path, uint64, uint64, error) {
	//** Discard graphs that cannot have a cycle cover
	if finder.precheck {
		admits, err := admitsCycleCover(graph)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("cannot compute the successor matching: %w", err)
		} else if !admits {
			finder.logger.Debug("Graph has no perfect successor matching, skipping the solver", "vertices", graph.Vertices)
			return nil, 0, 0, nil
		}
	}

	//** Build SAT instance
	start := time.Now()
	formula := Encode(graph)
	variables, clauses := formula.Variables, formula.ClauseCount()
	finder.logger.Debug("Encoded graph", "vertices", graph.Vertices, "variables", variables, "clauses", clauses, "elapsed", time.Since(start).Round(time.Millisecond))

	//** Solve SAT instance
	start = time.Now()
	model, err := sat.Solve(ctx, finder.newSolver(), formula)
	if err != nil {
		return nil, variables, clauses, err
	}
	finder.logger.Debug("Solved formula", "satisfiable", model != nil, "elapsed", time.Since(start).Round(time.Millisecond))
	if model == nil { // Return nil if the SAT instance is not satisfiable
		return nil, variables, clauses, nil
	}

	//** Decode cycle
	path, err := Decode(model, NewIndexer(graph.Vertices), graph.Vertices)
	if err != nil {
		return nil, variables, clauses, err
	}
	return path, variables, clauses, nil
}

func (finder *satCycleFinder) Verify(path Path, graph Graph) bool {
	return verify(path, graph)
}
