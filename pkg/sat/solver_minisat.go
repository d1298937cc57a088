package sat

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

type minisatSolver struct {
	clauseBuffer
	path string
}

func NewMinisatSolver(path string) Solver {
	return &minisatSolver{path: path}
}

func (solver *minisatSolver) Solve(ctx context.Context) (bool, error) {
	return runMinisatFamily(ctx, &solver.clauseBuffer, "minisat", solver.path, "-verb=0")
}

// glucose keeps the command line and result file of minisat, from which it derives
type glucoseSolver struct {
	clauseBuffer
	path string
}

func NewGlucoseSolver(path string) Solver {
	return &glucoseSolver{path: path}
}

func (solver *glucoseSolver) Solve(ctx context.Context) (bool, error) {
	return runMinisatFamily(ctx, &solver.clauseBuffer, "glucose", solver.path, "-verb=0")
}

// runMinisatFamily runs a solver which reads its input file and writes the verdict and the model to an output file
func runMinisatFamily(ctx context.Context, buffer *clauseBuffer, name, path string, args ...string) (bool, error) {
	buffer.model = nil

	inputFile, err := writeTempDIMACS(buffer.formula)
	if err != nil {
		return false, err
	}
	defer os.Remove(inputFile) // Ensure the file is removed after execution

	outputTempFile, err := os.CreateTemp("", name+"_output-*.txt")
	if err != nil {
		return false, fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(outputTempFile.Name())
	outputTempFile.Close()

	cmd := exec.CommandContext(ctx, path, append(args, inputFile, outputTempFile.Name())...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	satisfiable, err := checkExitCode(ctx, runErr, cmd, name, stderr.String())
	if err != nil || !satisfiable {
		return false, err
	}

	output, err := os.ReadFile(outputTempFile.Name())
	if err != nil {
		return false, fmt.Errorf("failed to read output file: %w", err)
	}
	buffer.model, err = parseMinisatSolution(string(output))
	if err != nil {
		return false, fmt.Errorf("cannot parse %v output: %w", name, err)
	}
	return true, nil
}

// The first line is the verdict, the second one holds the literals
func parseMinisatSolution(solverOutput string) (Model, error) {
	lines := strings.Split(solverOutput, "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[0]) != "SAT" {
		return nil, fmt.Errorf("unexpected result: %q", lines[0])
	}
	return parseLiterals(strings.Fields(lines[1]))
}
