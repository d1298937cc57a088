package model

import (
	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

// admitsCycleCover reports whether every vertex can be given a distinct neighbour as successor, i.e. whether the
// bipartite graph vertices × vertices joined by the edges has a perfect matching. Following a Hamiltonian cycle
// gives such a successor for every vertex, so graphs failing this check have no Hamiltonian cycle.
// The check is meaningless with fewer than 2 vertices, where the cycle needs no edge at all.
func admitsCycleCover(graph Graph) (bool, error) {
	if graph.Vertices < 2 {
		return true, nil
	}

	// Build neighbors predicate based on adjacency
	neighbors := func(fromAny any, toAny any) (bool, error) {
		return graph.Adjacent(fromAny.(uint64), toAny.(uint64)), nil
	}

	vertices := lo.Map(lo.Range(int(graph.Vertices)), func(vertex int, _ int) any { return uint64(vertex) })

	bipartite, err := bipartitegraph.NewBipartiteGraph(vertices, vertices, neighbors)
	if err != nil {
		return false, err
	}

	matching := bipartite.LargestMatching()
	return uint64(len(matching)) == graph.Vertices, nil
}
