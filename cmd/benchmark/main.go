package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/Chleb0/NAIL062-Hamiltonian-Path-with-SAT/pkg/model"
	"github.com/Chleb0/NAIL062-Hamiltonian-Path-with-SAT/pkg/sat"
	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

const resultsFile = "benchmark_results.csv"

type ResultType int

const (
	solved ResultType = iota
	unsatisfiable
	timeout
)

var resultTypes = map[ResultType]string{
	solved:        "solved",
	unsatisfiable: "unsatisfiable",
	timeout:       "timeout",
}

type TestMetadata struct {
	Name     string
	Vertices uint64
	Edges    int
	Density  float64
	Seed     uint64
}

type BenchmarkResult struct {
	Solver    string
	Test      TestMetadata
	Variables uint64
	Clauses   uint64
	Duration  int64
	Result    ResultType
}

type benchmarkOptions struct {
	sizes     []uint
	density   float64
	seed      uint64
	instances int
	timeout   time.Duration
	precheck  bool
	output    string
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if err := newBenchmarkCmd(logger).Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func newBenchmarkCmd(logger *log.Logger) *cobra.Command {
	var opts benchmarkOptions

	cmd := &cobra.Command{
		Use:           "benchmark",
		Short:         "Measure every available SAT solver on random graphs",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.density < 0 || opts.density > 1 {
				return fmt.Errorf("density must lie in [0, 1], got %v", opts.density)
			}
			tests := getTests(opts)
			results, err := benchmark(cmd.Context(), logger, tests, getSolvers(), opts)
			if err != nil {
				return err
			}
			return toCsv(opts.output, results)
		},
	}

	flags := cmd.Flags()
	flags.UintSliceVarP(&opts.sizes, "sizes", "n", []uint{5, 10, 15, 20}, "number of vertices of the generated graphs")
	flags.Float64Var(&opts.density, "density", 0.5, "probability of every edge being present")
	flags.Uint64Var(&opts.seed, "seed", 1, "seed of the graph generator")
	flags.IntVar(&opts.instances, "instances", 3, "graphs generated per size")
	flags.DurationVar(&opts.timeout, "timeout", time.Minute, "time limit of every run")
	flags.BoolVar(&opts.precheck, "precheck", false, "reject graphs without a perfect successor matching before solving")
	flags.StringVarP(&opts.output, "output", "o", resultsFile, "CSV file for the results")

	return cmd
}

// getTests generates the random graphs of the benchmark, deterministically from the seed
func getTests(opts benchmarkOptions) []TestMetadata {
	tests := make([]TestMetadata, 0, len(opts.sizes)*opts.instances)
	for _, size := range opts.sizes {
		for instance := range opts.instances {
			seed := opts.seed + uint64(len(tests))
			tests = append(tests, TestMetadata{
				Name:     fmt.Sprintf("n%d-%d", size, instance),
				Vertices: uint64(size),
				Density:  opts.density,
				Seed:     seed,
			})
		}
	}
	return tests
}

// randomGraph includes every edge of the complete graph with probability density
func randomGraph(test TestMetadata) (model.Graph, error) {
	rng := rand.New(rand.NewPCG(test.Seed, test.Vertices))
	edges := make([][2]uint64, 0)
	for u := range test.Vertices {
		for v := u + 1; v < test.Vertices; v++ {
			if rng.Float64() < test.Density {
				edges = append(edges, [2]uint64{u, v})
			}
		}
	}
	return model.NewGraph(test.Vertices, edges)
}

// getSolvers lists the in-process solvers and the external ones found on the PATH
func getSolvers() []string {
	return lo.Filter(sat.SolverNames(), func(name string, _ int) bool {
		if sat.InProcess(name) {
			return true
		}
		_, err := exec.LookPath(name)
		return err == nil
	})
}

func benchmark(ctx context.Context, logger *log.Logger, tests []TestMetadata, solvers []string, opts benchmarkOptions) ([]BenchmarkResult, error) {
	results := make([]BenchmarkResult, 0, len(tests)*len(solvers))

	for _, test := range tests {
		graph, err := randomGraph(test)
		if err != nil {
			return nil, err
		}
		test.Edges = len(graph.Edges())

		for _, solver := range solvers {
			logger.Info("Benchmarking", "test", test.Name, "edges", test.Edges, "solver", solver)

			result, err := measure(ctx, logger, graph, solver, opts)
			if err != nil {
				return nil, fmt.Errorf("test %v with solver %v: %w", test.Name, solver, err)
			}
			result.Test = test
			results = append(results, result)
		}
	}

	return results, nil
}

func measure(ctx context.Context, logger *log.Logger, graph model.Graph, solver string, opts benchmarkOptions) (BenchmarkResult, error) {
	newSolver, err := sat.NewSolverFactory(solver, nil)
	if err != nil {
		return BenchmarkResult{}, err
	}
	finder := model.NewSATCycleFinder(newSolver, opts.precheck, logger)

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	start := time.Now()
	path, variables, clauses, err := finder.Find(ctx, graph)
	duration := time.Since(start).Milliseconds()

	result := BenchmarkResult{
		Solver:    solver,
		Variables: variables,
		Clauses:   clauses,
		Duration:  duration,
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		result.Result = timeout
	case err != nil:
		return BenchmarkResult{}, err
	case path == nil:
		result.Result = unsatisfiable
	case !finder.Verify(path, graph):
		return BenchmarkResult{}, fmt.Errorf("decoded path %v is not a Hamiltonian cycle", path)
	default:
		result.Result = solved
	}
	return result, nil
}

func toCsv(fileName string, results []BenchmarkResult) error {
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("cannot create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writeResults(writer, results); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

func writeResults(writer *csv.Writer, results []BenchmarkResult) error {
	header := []string{"Solver", "Test", "Vertices", "Edges", "Density", "Seed", "Variables", "Clauses", "Duration(ms)", "Result"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{
			result.Solver,
			result.Test.Name,
			strconv.FormatUint(result.Test.Vertices, 10),
			strconv.Itoa(result.Test.Edges),
			fmt.Sprintf("%.2f", result.Test.Density),
			strconv.FormatUint(result.Test.Seed, 10),
			strconv.FormatUint(result.Variables, 10),
			strconv.FormatUint(result.Clauses, 10),
			strconv.FormatInt(result.Duration, 10),
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}
	return nil
}
