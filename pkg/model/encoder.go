package model

import (
	"github.com/Chleb0/NAIL062-Hamiltonian-Path-with-SAT/pkg/sat"
)

// Constraint families in emission order
var constraints = []func(state constraintState) [][]int64{
	adjacencyConstraints,
	positionCompletenessConstraints,
	vertexCompletenessConstraints,
	uniquenessConstraints,
}

// Encode builds the formula whose models are exactly the Hamiltonian cycles of graph, written as permutation matrices
// of V positions by V vertices. Two encodings of the same graph are identical clause by clause.
func Encode(graph Graph) sat.Formula {
	indexer := NewIndexer(graph.Vertices)
	state := constraintState{
		graph:    graph,
		indexer:  indexer,
		vertices: graph.Vertices,
	}
	return buildSat(indexer.Variables(), constraints, state)
}

func buildSat(variables uint64, constraints []func(state constraintState) [][]int64, state constraintState) sat.Formula {
	formula := sat.NewFormula(variables)

	type result struct {
		index   int
		clauses [][]int64
	}
	constraintsChannel := make(chan result, len(constraints)) // Channel to collect constraints

	// Execute constraints functions on different goroutines, they only read the shared state
	for i, constraint := range constraints {
		go func() {
			constraintsChannel <- result{index: i, clauses: constraint(state)}
		}()
	}

	// Collect generated constraints, then append them in declaration order to keep the output deterministic
	collected := make([][][]int64, len(constraints))
	for range constraints {
		r := <-constraintsChannel
		collected[r.index] = r.clauses
	}
	for _, clauses := range collected {
		for _, clause := range clauses {
			formula.AddClause(clause)
		}
	}

	return *formula
}
