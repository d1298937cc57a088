package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/Chleb0/NAIL062-Hamiltonian-Path-with-SAT/internal/config"
	"github.com/Chleb0/NAIL062-Hamiltonian-Path-with-SAT/pkg/model"
	"github.com/Chleb0/NAIL062-Hamiltonian-Path-with-SAT/pkg/sat"
	"github.com/spf13/cobra"
)

const (
	dimacsFile = "formula.cnf"
	noCycle    = "There is no Hamiltonian Cycle on this graph."
)

type options struct {
	inputFile  string
	outputFile string
	dimacs     bool
	configFile string
	solver     string
	timeout    time.Duration
	precheck   bool
	verify     bool
}

// loadSettings merges the configuration file with the flags given explicitly on the command line
func loadSettings(cmd *cobra.Command, opts options) (config.Config, error) {
	settings := config.Default()
	if opts.configFile != "" {
		loaded, err := config.Load(opts.configFile)
		if err != nil {
			return config.Config{}, err
		}
		settings = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("solver") {
		settings.Solver = opts.solver
	}
	if flags.Changed("timeout") {
		settings.Timeout = opts.timeout
	}
	if flags.Changed("precheck") {
		settings.Precheck = opts.precheck
	}
	if settings.Timeout < 0 {
		return config.Config{}, fmt.Errorf("timeout must not be negative: %v", settings.Timeout)
	}
	return settings, nil
}

func run(cmd *cobra.Command, opts options) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	settings, err := loadSettings(cmd, opts)
	if err != nil {
		return err
	}

	//** Load graph
	graph, err := loadGraph(cmd, opts.inputFile)
	if err != nil {
		return err
	}
	logger.Debug("Loaded graph", "vertices", graph.Vertices, "edges", len(graph.Edges()))

	// Output is rendered in memory so that nothing is written when a later step fails
	var output bytes.Buffer
	outputFile := opts.outputFile

	if opts.dimacs {
		if outputFile != "" {
			logger.Warn("Ignoring the output file in DIMACS mode", "outputfile", outputFile, "dimacs", dimacsFile)
		}
		outputFile = dimacsFile

		formula := model.Encode(graph)
		if err := formula.WriteDIMACS(&output); err != nil {
			return err
		}
		logger.Info("Encoded graph", "variables", formula.Variables, "clauses", formula.ClauseCount())
	} else {
		path, err := solve(ctx, graph, settings, opts.verify)
		if err != nil {
			return err
		}
		renderPath(&output, path)
	}

	return writeOutput(cmd, outputFile, output.Bytes())
}

func loadGraph(cmd *cobra.Command, inputFile string) (model.Graph, error) {
	if inputFile == "" {
		return model.LoadGraph(cmd.InOrStdin())
	}
	return model.GraphFromFile(inputFile)
}

func solve(ctx context.Context, graph model.Graph, settings config.Config, verify bool) (model.Path, error) {
	logger := loggerFromContext(ctx)

	newSolver, err := sat.NewSolverFactory(settings.Solver, settings.Paths)
	if err != nil {
		return nil, err
	}

	if settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, settings.Timeout)
		defer cancel()
	}

	finder := model.NewSATCycleFinder(newSolver, settings.Precheck, logger)
	progress := newProgress(logger)

	path, variables, clauses, err := finder.Find(ctx, graph)
	if errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("no answer from %v within %v: %w", settings.Solver, settings.Timeout, err)
	} else if err != nil {
		return nil, err
	}

	progress.done("Solved", "solver", settings.Solver, "variables", variables, "clauses", clauses, "cycle", path != nil)

	if path != nil && verify {
		if !finder.Verify(path, graph) {
			return nil, fmt.Errorf("decoded path %v is not a Hamiltonian cycle of the graph", path)
		}
		logger.Debug("Verified cycle", "length", len(path))
	}
	return path, nil
}

func renderPath(w io.Writer, path model.Path) {
	if path == nil {
		fmt.Fprintln(w, noCycle)
		return
	}
	for _, vertex := range path {
		fmt.Fprintln(w, strconv.FormatUint(vertex, 10))
	}
}

func writeOutput(cmd *cobra.Command, outputFile string, output []byte) error {
	if outputFile == "" {
		_, err := cmd.OutOrStdout().Write(output)
		return err
	}
	if err := os.WriteFile(outputFile, output, 0666); err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	return nil
}
