package model

// constraintState is the read-only input shared by every constraint family
type constraintState struct {
	graph    Graph
	indexer  Indexer
	vertices uint64
}

// literal returns the variable of (position, vertex) as a positive literal
func (state constraintState) literal(position, vertex uint64) int64 {
	return int64(state.indexer.Index(position, vertex))
}

// Two consecutive positions can only hold vertices joined by an edge; the last position wraps around to the first
func adjacencyConstraints(state constraintState) [][]int64 {
	clauses := make([][]int64, 0)

	for position := range state.vertices {
		next := (position + 1) % state.vertices
		for from := range state.vertices {
			for to := range state.vertices {
				if from != to && !state.graph.Adjacent(from, to) {
					clauses = append(clauses, []int64{-state.literal(position, from), -state.literal(next, to)})
				}
			}
		}
	}

	return clauses
}

// Every position holds at least one vertex
func positionCompletenessConstraints(state constraintState) [][]int64 {
	clauses := make([][]int64, 0, state.vertices)

	for position := range state.vertices {
		clause := make([]int64, 0, state.vertices)
		for vertex := range state.vertices {
			clause = append(clause, state.literal(position, vertex))
		}
		clauses = append(clauses, clause)
	}

	return clauses
}

// Every vertex is visited at least once
func vertexCompletenessConstraints(state constraintState) [][]int64 {
	clauses := make([][]int64, 0, state.vertices)

	for vertex := range state.vertices {
		clause := make([]int64, 0, state.vertices)
		for position := range state.vertices {
			clause = append(clause, state.literal(position, vertex))
		}
		clauses = append(clauses, clause)
	}

	return clauses
}

// A position holds at most one vertex and a vertex is visited at most once
func uniquenessConstraints(state constraintState) [][]int64 {
	clauses := make([][]int64, 0, state.vertices*state.vertices*max(state.vertices, 1))

	for position := range state.vertices {
		for i := range state.vertices {
			for j := i + 1; j < state.vertices; j++ {
				clauses = append(clauses, []int64{-state.literal(position, i), -state.literal(position, j)})
			}
		}
	}

	for vertex := range state.vertices {
		for i := range state.vertices {
			for j := i + 1; j < state.vertices; j++ {
				clauses = append(clauses, []int64{-state.literal(i, vertex), -state.literal(j, vertex)})
			}
		}
	}

	return clauses
}
