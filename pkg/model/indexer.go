package model

// Indexer gives a unique SAT variable to every (position, vertex) pair of a path and vice versa
type Indexer interface {
	// Returns the 1-based variable stating that vertex occupies position
	Index(position, vertex uint64) uint64
	// Returns the position and vertex behind a variable, which must lie in [1, Variables()]
	Attributes(index uint64) (position uint64, vertex uint64)
	// Returns how many variables the mapping covers
	Variables() uint64
}

func NewIndexer(vertices uint64) Indexer {
	return &indexerImplementation{
		vertices: vertices,
	}
}
