package model

type indexerImplementation struct {
	vertices uint64
}

func (indexer *indexerImplementation) Index(position, vertex uint64) uint64 {
	return position*indexer.vertices + vertex + 1
}

func (indexer *indexerImplementation) Attributes(index uint64) (position, vertex uint64) {
	index = index - 1
	vertex = index % indexer.vertices
	position = index / indexer.vertices
	return position, vertex
}

func (indexer *indexerImplementation) Variables() uint64 {
	return indexer.vertices * indexer.vertices
}
