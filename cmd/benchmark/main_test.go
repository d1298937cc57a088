package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTests(t *testing.T) {
	tests := getTests(benchmarkOptions{sizes: []uint{4, 6}, density: 0.3, seed: 7, instances: 2})

	require.Len(t, tests, 4)
	assert.Equal(t, TestMetadata{Name: "n4-0", Vertices: 4, Density: 0.3, Seed: 7}, tests[0])
	assert.Equal(t, TestMetadata{Name: "n6-1", Vertices: 6, Density: 0.3, Seed: 10}, tests[3])
}

func TestRandomGraph(t *testing.T) {
	test := TestMetadata{Vertices: 12, Density: 0.5, Seed: 3}

	first, err := randomGraph(test)
	require.NoError(t, err)
	second, err := randomGraph(test)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	complete, err := randomGraph(TestMetadata{Vertices: 6, Density: 1, Seed: 3})
	require.NoError(t, err)
	assert.Len(t, complete.Edges(), 15)

	empty, err := randomGraph(TestMetadata{Vertices: 6, Density: 0, Seed: 3})
	require.NoError(t, err)
	assert.Empty(t, empty.Edges())
}

func TestGetSolvers(t *testing.T) {
	assert.Subset(t, getSolvers(), []string{"gini", "gophersat"})
}

func TestBenchmark(t *testing.T) {
	//** Arrange
	opts := benchmarkOptions{sizes: []uint{1, 5}, density: 1, seed: 1, instances: 1, timeout: time.Minute}
	sparse := TestMetadata{Name: "sparse", Vertices: 5, Density: 0, Seed: 1}
	tests := append(getTests(opts), sparse)

	//** Act
	results, err := benchmark(context.Background(), log.New(io.Discard), tests, []string{"gini", "gophersat"}, opts)

	//** Assert
	require.NoError(t, err)
	require.Len(t, results, 6)
	for _, result := range results {
		switch result.Test.Name {
		case "sparse":
			assert.Equal(t, unsatisfiable, result.Result)
		default:
			assert.Equal(t, solved, result.Result)
			assert.Equal(t, result.Test.Vertices*result.Test.Vertices, result.Variables)
		}
	}
}

func TestWriteResults(t *testing.T) {
	//** Arrange
	results := []BenchmarkResult{
		{
			Solver:    "gini",
			Test:      TestMetadata{Name: "n3-0", Vertices: 3, Edges: 3, Density: 1, Seed: 5},
			Variables: 9,
			Clauses:   24,
			Duration:  2,
			Result:    solved,
		},
	}
	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)

	//** Act
	require.NoError(t, writeResults(writer, results))
	writer.Flush()

	//** Assert
	records, err := csv.NewReader(&buffer).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"gini", "n3-0", "3", "3", "1.00", "5", "9", "24", "2", "solved"}, records[1])
}

func TestToCsv(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), resultsFile)

	require.NoError(t, toCsv(fileName, []BenchmarkResult{{Solver: "gophersat", Result: timeout}}))

	content, err := os.ReadFile(fileName)
	require.NoError(t, err)
	assert.Contains(t, string(content), "gophersat")
	assert.Contains(t, string(content), "timeout")
}
