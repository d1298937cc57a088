package model

import "context"

type CycleFinder interface {
	// Returns a Hamiltonian cycle of graph, or a nil path if there is none, together with the size of the formula that decided it
	Find(
		ctx context.Context,
		graph Graph,
	) (path Path, variables uint64, clauses uint64, err error)

	Verify(
		path Path,
		graph Graph,
	) bool
}

// verify checks path independently of the encoding: it must be a permutation of the vertices where consecutive positions, including the last and the first one, are adjacent
func verify(path Path, graph Graph) bool {
	if uint64(len(path)) != graph.Vertices {
		return false
	}

	visited := make([]bool, graph.Vertices)
	for _, vertex := range path {
		if vertex >= graph.Vertices || visited[vertex] {
			return false
		}
		visited[vertex] = true
	}

	// A single vertex closes its cycle on its own
	if len(path) < 2 {
		return true
	}
	for position, vertex := range path {
		if !graph.Adjacent(vertex, path[(position+1)%len(path)]) {
			return false
		}
	}
	return true
}
