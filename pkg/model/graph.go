package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// MaxVertices bounds the graphs that can be loaded; the encoding needs V² variables and O(V³) clauses
const MaxVertices = 1 << 12

// Graph is a simple undirected graph over the vertices [0, Vertices)
type Graph struct {
	Vertices  uint64
	Adjacency [][]bool // Adjacency[u][v] = Adjacency[v][u] = true if and only if u and v are joined by an edge. The diagonal is always false
}

// Adjacent reports whether u and v are joined by an edge
func (graph Graph) Adjacent(u, v uint64) bool {
	return u < graph.Vertices && v < graph.Vertices && graph.Adjacency[u][v]
}

// Edges returns every edge once, as (u, v) with u < v
func (graph Graph) Edges() [][2]uint64 {
	edges := make([][2]uint64, 0)
	for u := range graph.Vertices {
		for v := u + 1; v < graph.Vertices; v++ {
			if graph.Adjacency[u][v] {
				edges = append(edges, [2]uint64{u, v})
			}
		}
	}
	return edges
}

// NewGraph builds a graph from an edge list. Duplicated edges have no additional effect and self-loops are ignored.
func NewGraph(vertices uint64, edges [][2]uint64) (Graph, error) {
	if vertices > MaxVertices {
		return Graph{}, &InputError{Err: fmt.Errorf("%d vertices exceed the supported maximum of %d", vertices, MaxVertices)}
	}
	graph := emptyGraph(vertices)
	for i, edge := range edges {
		if err := graph.addEdge(edge[0], edge[1]); err != nil {
			return Graph{}, &InputError{Err: fmt.Errorf("edge %d: %w", i, err)}
		}
	}
	return graph, nil
}

func emptyGraph(vertices uint64) Graph {
	return Graph{
		Vertices: vertices,
		Adjacency: lo.Times(int(vertices), func(_ int) []bool {
			return make([]bool, vertices)
		}),
	}
}

func (graph *Graph) addEdge(u, v uint64) error {
	if u >= graph.Vertices || v >= graph.Vertices {
		return fmt.Errorf("edge (%d, %d) has an endpoint outside [0, %d)", u, v, graph.Vertices)
	}
	if u == v {
		return nil
	}
	graph.Adjacency[u][v] = true
	graph.Adjacency[v][u] = true
	return nil
}

// LoadGraph reads a graph given as a "V E" header line followed by E lines "u v", one per undirected edge.
// Blank lines are skipped, any other deviation is reported as an *InputError.
func LoadGraph(r io.Reader) (Graph, error) {
	scanner := bufio.NewScanner(r)
	var lineNumber uint64

	// Returns the two integers of the next non-blank line
	nextPair := func(what string) (uint64, uint64, error) {
		for scanner.Scan() {
			lineNumber++
			fields := strings.Fields(scanner.Text())
			if len(fields) == 0 {
				continue
			}
			if len(fields) != 2 {
				return 0, 0, &InputError{Line: lineNumber, Err: fmt.Errorf("%v must hold exactly 2 integers, found %d tokens", what, len(fields))}
			}
			first, err := strconv.ParseUint(fields[0], 10, 64)
			if err != nil {
				return 0, 0, &InputError{Line: lineNumber, Err: fmt.Errorf("malformed %v: %w", what, err)}
			}
			second, err := strconv.ParseUint(fields[1], 10, 64)
			if err != nil {
				return 0, 0, &InputError{Line: lineNumber, Err: fmt.Errorf("malformed %v: %w", what, err)}
			}
			return first, second, nil
		}
		if err := scanner.Err(); err != nil {
			return 0, 0, &InputError{Line: lineNumber, Err: fmt.Errorf("cannot read input: %w", err)}
		}
		return 0, 0, &InputError{Line: lineNumber, Err: fmt.Errorf("unexpected end of input, missing %v", what)}
	}

	vertices, edges, err := nextPair("header")
	if err != nil {
		return Graph{}, err
	}
	if vertices > MaxVertices {
		return Graph{}, &InputError{Line: lineNumber, Err: fmt.Errorf("%d vertices exceed the supported maximum of %d", vertices, MaxVertices)}
	}

	graph := emptyGraph(vertices)
	for i := range edges {
		u, v, err := nextPair(fmt.Sprintf("edge %d of %d", i+1, edges))
		if err != nil {
			return Graph{}, err
		}
		if err := graph.addEdge(u, v); err != nil {
			return Graph{}, &InputError{Line: lineNumber, Err: err}
		}
	}

	// Nothing but blank lines may follow the last edge
	for scanner.Scan() {
		lineNumber++
		if strings.TrimSpace(scanner.Text()) != "" {
			return Graph{}, &InputError{Line: lineNumber, Err: errors.New("more edge lines than declared in the header")}
		}
	}
	if err := scanner.Err(); err != nil {
		return Graph{}, &InputError{Line: lineNumber, Err: fmt.Errorf("cannot read input: %w", err)}
	}

	return graph, nil
}

func GraphFromFile(file string) (Graph, error) {
	f, err := os.Open(file)
	if err != nil {
		return Graph{}, &InputError{Err: fmt.Errorf("cannot open input file: %w", err)}
	}
	defer f.Close()

	return LoadGraph(f)
}
