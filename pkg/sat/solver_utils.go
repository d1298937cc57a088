package sat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Exit-codes used by SAT-competition solvers
const (
	exitSatisfiable   = 10
	exitUnsatisfiable = 20
)

// clauseBuffer gathers the clauses handed to an external solver until they're serialized
type clauseBuffer struct {
	formula Formula
	model   Model
}

func (buffer *clauseBuffer) AddClause(clause []int64) {
	for _, literal := range clause {
		buffer.formula.Variables = max(buffer.formula.Variables, uint64(max(literal, -literal)))
	}
	buffer.formula.AddClause(clause)
}

func (buffer *clauseBuffer) Model() (Model, error) {
	if buffer.model == nil {
		return nil, fmt.Errorf("no model available: the last solve was not satisfiable")
	}
	return buffer.model, nil
}

// runCompetitionSolver feeds the DIMACS formula into the solver's standard input and parses the "v" lines of its standard output
func runCompetitionSolver(ctx context.Context, buffer *clauseBuffer, name, path string, args ...string) (bool, error) {
	dimacs := buffer.formula.ToDIMACS() // Transform formula into DIMACS-CNF string format

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = strings.NewReader(dimacs) // Feed dimacs into the solver's standard input
	return runAndParse(ctx, cmd, buffer, name)
}

// runCompetitionSolverOnFile is runCompetitionSolver for solvers which only read their input from a file, given as the last argument
func runCompetitionSolverOnFile(ctx context.Context, buffer *clauseBuffer, name, path string, args ...string) (bool, error) {
	inputFile, err := writeTempDIMACS(buffer.formula)
	if err != nil {
		return false, err
	}
	defer os.Remove(inputFile) // Ensure the file is removed after execution

	cmd := exec.CommandContext(ctx, path, append(args, inputFile)...)
	return runAndParse(ctx, cmd, buffer, name)
}

func runAndParse(ctx context.Context, cmd *exec.Cmd, buffer *clauseBuffer, name string) (bool, error) {
	buffer.model = nil

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	satisfiable, err := checkExitCode(ctx, runErr, cmd, name, stderr.String())
	if err != nil || !satisfiable {
		return false, err
	}

	buffer.model, err = parseSolution(stdOut.String())
	if err != nil {
		return false, fmt.Errorf("cannot parse %v output: %w", name, err)
	}
	return true, nil
}

// writeTempDIMACS stores formula in a new temporary file and returns its name
func writeTempDIMACS(formula Formula) (string, error) {
	file, err := os.CreateTemp("", "dimacs-*.cnf")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}

	if err := formula.WriteDIMACS(file); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", fmt.Errorf("failed to write DIMACS to temporary file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", fmt.Errorf("failed to close temporary file: %w", err)
	}
	return file.Name(), nil
}

// Exit-code of 10 stands for satisfiable and exit-code 20 stands for unsatisfiable
func checkExitCode(ctx context.Context, runErr error, cmd *exec.Cmd, name, stderr string) (bool, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, fmt.Errorf("%v was stopped: %w", name, ctxErr)
	}

	var exitErr *exec.ExitError
	if runErr != nil && !errors.As(runErr, &exitErr) {
		return false, fmt.Errorf("cannot execute %v: %w", name, runErr)
	}

	switch cmd.ProcessState.ExitCode() {
	case exitSatisfiable:
		return true, nil
	case exitUnsatisfiable:
		return false, nil
	default:
		return false, fmt.Errorf("an error occurred during %v execution: %v : %v", name, runErr, stderr)
	}
}

// parseSolution collects the literals of every "v" line up to the terminating 0
func parseSolution(solverOutput string) (Model, error) {
	values := lo.FlatMap(
		lo.Filter(strings.Split(solverOutput, "\n"), func(line string, _ int) bool {
			return len(line) > 0 && line[0] == 'v'
		}),
		func(line string, _ int) []string {
			return strings.Fields(line[1:])
		},
	)

	return parseLiterals(values)
}

func parseLiterals(values []string) (Model, error) {
	model := make(Model, 0, len(values))
	for _, valueStr := range values {
		value, err := strconv.ParseInt(valueStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid literal in solver output: %w", err)
		}
		if value == 0 {
			return model, nil
		}
		model = append(model, value)
	}
	return nil, fmt.Errorf("solver output is not terminated by 0")
}
