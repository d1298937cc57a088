package model

import (
	"fmt"

	"github.com/Chleb0/NAIL062-Hamiltonian-Path-with-SAT/pkg/sat"
)

// Path lists the vertex held by every position; the last position is followed by the first one
type Path []uint64

// Decode reads the cycle out of a model of the formula produced by Encode.
// Any model that doesn't describe a permutation of the vertices is reported as an *InvariantViolation.
func Decode(model sat.Model, indexer Indexer, vertices uint64) (Path, error) {
	if uint64(len(model)) < indexer.Variables() {
		return nil, &InvariantViolation{Reason: fmt.Sprintf("model assigns %d variables out of %d", len(model), indexer.Variables())}
	}

	path := make(Path, 0, vertices)
	visited := make([]bool, vertices)

	for position := range vertices {
		found := false
		for vertex := range vertices {
			index := indexer.Index(position, vertex)
			literal := model[index-1]
			if literal != int64(index) && literal != -int64(index) {
				return nil, &InvariantViolation{Position: position, Reason: fmt.Sprintf("entry %d of the model is %d", index, literal)}
			}
			if literal < 0 {
				continue
			}

			// The first true vertex is taken, a genuine model has exactly one
			if visited[vertex] {
				return nil, &InvariantViolation{Position: position, Reason: fmt.Sprintf("vertex %d is visited twice", vertex)}
			}
			visited[vertex] = true
			path = append(path, vertex)
			found = true
			break
		}

		if !found {
			return nil, &InvariantViolation{Position: position, Reason: "no vertex holds the position"}
		}
	}

	return path, nil
}
