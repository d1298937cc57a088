package sat

import (
	"context"
	"errors"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestGini(t *testing.T) {
	t.Run("Random instances", func(t *testing.T) {
		randomExecution(t, "gini")
	})
	t.Run("Unsatisfiable instance", func(t *testing.T) {
		unsatisfiableExecution(t, "gini")
	})
}

func TestGophersat(t *testing.T) {
	t.Run("Random instances", func(t *testing.T) {
		randomExecution(t, "gophersat")
	})
	t.Run("Unsatisfiable instance", func(t *testing.T) {
		unsatisfiableExecution(t, "gophersat")
	})
}

func TestKissat(t *testing.T) {
	externalExecution(t, "kissat")
}

func TestCadical(t *testing.T) {
	externalExecution(t, "cadical")
}

func TestCryptominisat(t *testing.T) {
	externalExecution(t, "cryptominisat")
}

func TestMinisat(t *testing.T) {
	externalExecution(t, "minisat")
}

func TestGlucose(t *testing.T) {
	externalExecution(t, "glucose")
}

func TestSlime(t *testing.T) {
	externalExecution(t, "slime")
}

func TestOrtoolsat(t *testing.T) {
	externalExecution(t, "ortoolsat")
}

// fakeSolver installs a shell script standing in for an external solver
func fakeSolver(t *testing.T, script string) string {
	if runtime.GOOS == "windows" {
		t.Skip("fake solvers are shell scripts")
	}
	path := filepath.Join(t.TempDir(), "solver.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755))
	return path
}

func TestExternalSolverProtocols(t *testing.T) {
	// External solvers only see the variables their clauses mention, hence "p cnf 2 2"
	formula := Formula{Variables: 3, Clauses: [][]int64{{1}, {-2}}}

	testCases := []struct {
		name   string
		solver string
		script string
	}{
		{
			name:   "Standard input",
			solver: "kissat",
			script: "grep -q '^p cnf 2 2$' || exit 1\necho 's SATISFIABLE'\necho 'v 1 -2 0'\nexit 10\n",
		},
		{
			name:   "Input file",
			solver: "slime",
			script: "grep -q '^p cnf 2 2$' \"$1\" || exit 1\necho 's SATISFIABLE'\necho 'v 1 -2 0'\nexit 10\n",
		},
		{
			name:   "Result file",
			solver: "glucose",
			script: "grep -q '^p cnf 2 2$' \"$2\" || exit 1\nprintf 'SAT\\n1 -2 0\\n' > \"$3\"\nexit 10\n",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			//** Arrange
			path := fakeSolver(t, testCase.script)
			newSolver, err := NewSolverFactory(testCase.solver, map[string]string{testCase.solver: path})
			require.NoError(t, err)

			//** Act
			model, err := Solve(context.Background(), newSolver(), formula)

			//** Assert
			require.NoError(t, err)
			// The solver never mentions variable 3, so it is completed as false
			assert.Equal(t, Model{1, -2, -3}, model)
		})
	}

	t.Run("Unsatisfiable", func(t *testing.T) {
		newSolver, err := NewSolverFactory("minisat", map[string]string{"minisat": fakeSolver(t, "exit 20\n")})
		require.NoError(t, err)

		model, err := Solve(context.Background(), newSolver(), formula)

		assert.NoError(t, err)
		assert.Nil(t, model)
	})

	t.Run("Unexpected exit code", func(t *testing.T) {
		newSolver, err := NewSolverFactory("cadical", map[string]string{"cadical": fakeSolver(t, "echo boom >&2\nexit 1\n")})
		require.NoError(t, err)

		_, err = Solve(context.Background(), newSolver(), formula)

		assert.ErrorContains(t, err, "boom")
	})

	t.Run("Missing executable", func(t *testing.T) {
		newSolver, err := NewSolverFactory("ortoolsat", map[string]string{"ortoolsat": filepath.Join(t.TempDir(), "missing")})
		require.NoError(t, err)

		_, err = Solve(context.Background(), newSolver(), formula)

		assert.ErrorContains(t, err, "cannot execute ortoolsat")
	})
}

func externalExecution(t *testing.T, name string) {
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%v is not installed", name)
	}
	t.Run("Random instances", func(t *testing.T) {
		randomExecution(t, name)
	})
	t.Run("Unsatisfiable instance", func(t *testing.T) {
		unsatisfiableExecution(t, name)
	})
}

func randomExecution(t *testing.T, name string) {
	newSolver, err := NewSolverFactory(name, nil)
	require.NoError(t, err)
	rng := rand.New(rand.NewPCG(1, uint64(len(name))))

	for range 10 {
		//** Arrange
		variables := uint64(rng.IntN(60) + 1)
		formula := GenerateFormula(rng, variables, rng.IntN(120)+1)

		//** Act
		model, err := Solve(context.Background(), newSolver(), formula)

		//** Assert
		require.NoError(t, err)
		if model == nil {
			continue
		}
		assert.Len(t, model, int(variables))
		assert.True(t, Satisfies(formula, model), "wrong answer")
	}
}

func unsatisfiableExecution(t *testing.T, name string) {
	//** Arrange
	newSolver, err := NewSolverFactory(name, nil)
	require.NoError(t, err)
	formula := Formula{Variables: 2, Clauses: [][]int64{{1, 2}, {-1, 2}, {1, -2}, {-1, -2}}}

	//** Act
	model, err := Solve(context.Background(), newSolver(), formula)

	//** Assert
	assert.NoError(t, err)
	assert.Nil(t, model)
}

// pigeonhole states that pigeons fit in holes with at most one pigeon per hole; it is unsatisfiable and hard for CDCL when pigeons > holes
func pigeonhole(pigeons, holes int64) Formula {
	variable := func(pigeon, hole int64) int64 { return pigeon*holes + hole + 1 }
	formula := NewFormula(uint64(pigeons * holes))
	for pigeon := range pigeons {
		clause := make([]int64, 0, holes)
		for hole := range holes {
			clause = append(clause, variable(pigeon, hole))
		}
		formula.AddClause(clause)
	}
	for hole := range holes {
		for i := range pigeons {
			for j := i + 1; j < pigeons; j++ {
				formula.AddClause([]int64{-variable(i, hole), -variable(j, hole)})
			}
		}
	}
	return *formula
}

func TestGiniStopsOnCancellation(t *testing.T) {
	//** Arrange
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	//** Act
	start := time.Now()
	model, err := Solve(ctx, NewGiniSolver(), pigeonhole(14, 13))

	//** Assert
	assert.Nil(t, model)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "unexpected error: %v", err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestGophersatRefusesCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	model, err := Solve(ctx, NewGophersatSolver(), Formula{Variables: 1, Clauses: [][]int64{{1}}})

	assert.Nil(t, model)
	assert.ErrorIs(t, err, context.Canceled)
}

type recordingSolver struct {
	clauses [][]int64
	solved  bool
}

func (s *recordingSolver) AddClause(clause []int64) { s.clauses = append(s.clauses, clause) }

func (s *recordingSolver) Solve(context.Context) (bool, error) {
	s.solved = true
	return true, nil
}

func (s *recordingSolver) Model() (Model, error) { return Model{2}, nil }

func TestSolve(t *testing.T) {
	t.Run("Empty formula never reaches the solver", func(t *testing.T) {
		solver := &recordingSolver{}

		model, err := Solve(context.Background(), solver, Formula{})

		require.NoError(t, err)
		assert.NotNil(t, model)
		assert.Empty(t, model)
		assert.False(t, solver.solved)
	})

	t.Run("Clauses are handed over in order and missing variables are completed", func(t *testing.T) {
		solver := &recordingSolver{}
		formula := Formula{Variables: 3, Clauses: [][]int64{{2, 3}, {-1}}}

		model, err := Solve(context.Background(), solver, formula)

		require.NoError(t, err)
		assert.Equal(t, formula.Clauses, solver.clauses)
		assert.Equal(t, Model{-1, 2, -3}, model)
	})
}

func TestNewSolverFactory(t *testing.T) {
	_, err := NewSolverFactory("picosat", nil)
	assert.ErrorContains(t, err, "unknown solver")

	newSolver, err := NewSolverFactory("kissat", map[string]string{"kissat": "/opt/kissat/bin/kissat"})
	require.NoError(t, err)
	assert.Equal(t, "/opt/kissat/bin/kissat", newSolver().(*kissatSolver).path)

	newSolver, err = NewSolverFactory("cadical", map[string]string{"kissat": "/opt/kissat/bin/kissat"})
	require.NoError(t, err)
	assert.Equal(t, "cadical", newSolver().(*cadicalSolver).path)

	assert.Equal(t, []string{"cadical", "cryptominisat", "gini", "glucose", "gophersat", "kissat", "minisat", "ortoolsat", "slime"}, SolverNames())
}

func TestParseSolution(t *testing.T) {
	t.Run("Competition output", func(t *testing.T) {
		output := "c comment\ns SATISFIABLE\nv 1 -2 3\nv -4 5 0\n"

		model, err := parseSolution(output)

		require.NoError(t, err)
		assert.Equal(t, Model{1, -2, 3, -4, 5}, model)
	})

	t.Run("Missing terminator", func(t *testing.T) {
		_, err := parseSolution("s SATISFIABLE\nv 1 -2\n")
		assert.Error(t, err)
	})

	t.Run("Invalid literal", func(t *testing.T) {
		_, err := parseSolution("s SATISFIABLE\nv 1 two 0\n")
		assert.Error(t, err)
	})

	t.Run("Minisat output", func(t *testing.T) {
		model, err := parseMinisatSolution("SAT\n-1 2 -3 0\n")

		require.NoError(t, err)
		assert.Equal(t, Model{-1, 2, -3}, model)

		_, err = parseMinisatSolution("UNSAT\n")
		assert.Error(t, err)
	})
}
