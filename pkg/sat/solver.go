package sat

import (
	"context"
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Solver is the boundary to a SAT solver. An instance owns the clauses added to it and is meant for a single problem.
type Solver interface {
	AddClause(clause []int64)
	// Returns true if the clauses added so far are satisfiable. A cancelled context aborts the search where the solver supports it.
	Solve(ctx context.Context) (bool, error)
	// Returns the model found by the last successful Solve
	Model() (Model, error)
}

// Solve loads formula into solver and solves it. It returns a nil model (and a nil error) when the formula is unsatisfiable.
func Solve(ctx context.Context, solver Solver, formula Formula) (Model, error) {
	// Nothing to decide: the empty formula is satisfied by the empty assignment
	if formula.Variables == 0 && len(formula.Clauses) == 0 {
		return Model{}, nil
	}

	for _, clause := range formula.Clauses {
		solver.AddClause(clause)
	}

	satisfiable, err := solver.Solve(ctx)
	if err != nil {
		return nil, err
	} else if !satisfiable {
		return nil, nil
	}

	model, err := solver.Model()
	if err != nil {
		return nil, err
	}
	return completeModel(model, formula.Variables), nil
}

// Some solvers omit variables they never had to decide; those are reported as false
func completeModel(model Model, variables uint64) Model {
	if uint64(len(model)) >= variables {
		return model
	}
	completed := make(Model, variables)
	for i := range completed {
		completed[i] = -int64(i + 1)
	}
	for _, literal := range model {
		variable := max(literal, -literal)
		if variable > 0 && uint64(variable) <= variables {
			completed[variable-1] = literal
		}
	}
	return completed
}

var solvers = map[string]func(path string) Solver{
	"gini":          func(string) Solver { return NewGiniSolver() },
	"gophersat":     func(string) Solver { return NewGophersatSolver() },
	"kissat":        NewKissatSolver,
	"cadical":       NewCadicalSolver,
	"cryptominisat": NewCryptominisatSolver,
	"minisat":       NewMinisatSolver,
	"glucose":       NewGlucoseSolver,
	"slime":         NewSlimeSolver,
	"ortoolsat":     NewOrtoolsatSolver,
}

// SolverNames lists the accepted solver names in a stable order
func SolverNames() []string {
	names := lo.Keys(solvers)
	slices.Sort(names)
	return names
}

// InProcess reports whether the named solver runs inside this process (no executable required)
func InProcess(name string) bool {
	return name == "gini" || name == "gophersat"
}

// NewSolverFactory returns a constructor of fresh solvers for name. paths maps solver names to executable paths; missing entries default to the solver's name.
func NewSolverFactory(name string, paths map[string]string) (func() Solver, error) {
	constructor, ok := solvers[name]
	if !ok {
		return nil, fmt.Errorf("unknown solver %q, allowed values are %v", name, SolverNames())
	}

	path, ok := paths[name]
	if !ok || path == "" {
		path = name
	}
	return func() Solver { return constructor(path) }, nil
}
