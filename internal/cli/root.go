// Package cli implements the hamcycle command-line interface.
//
// hamcycle reads an undirected graph, reduces the Hamiltonian cycle problem to SAT and either prints a cycle
// (one vertex per line) or writes the formula in DIMACS CNF to formula.cnf. All commands log to standard error;
// --verbose switches the logger to debug level.
package cli

import (
	"context"
	"strings"

	"github.com/Chleb0/NAIL062-Hamiltonian-Path-with-SAT/internal/config"
	"github.com/Chleb0/NAIL062-Hamiltonian-Path-with-SAT/pkg/sat"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Execute runs the hamcycle command with the process arguments
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	var (
		verbose bool
		opts    options
	)

	root := &cobra.Command{
		Use:   "hamcycle",
		Short: "Find a Hamiltonian cycle of an undirected graph with a SAT solver",
		Long: `hamcycle reads a graph given as a "V E" header followed by E lines "u v" (0-indexed vertices),
encodes the existence of a Hamiltonian cycle as a CNF formula and solves it.

If a cycle exists its vertices are printed one per line in visiting order, otherwise
"There is no Hamiltonian Cycle on this graph." is printed. With --dimacs the formula is
written to formula.cnf instead of being solved.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd, opts)
			if err != nil {
				loggerFromContext(cmd.Context()).Error(err)
			}
			return err
		},
	}

	flags := root.Flags()
	flags.StringVarP(&opts.inputFile, "inputfile", "i", "", "the instance file; standard input is read when empty")
	flags.StringVarP(&opts.outputFile, "outputfile", "o", "", "file for the solution; standard output is used when empty")
	flags.BoolVarP(&opts.dimacs, "dimacs", "d", false, "write the DIMACS CNF encoding of the problem to "+dimacsFile+" instead of solving it")
	flags.StringVarP(&opts.configFile, "config", "c", "", "configuration file (.json, .toml or .yaml)")
	flags.StringVarP(&opts.solver, "solver", "s", "", "SAT solver, one of "+strings.Join(sat.SolverNames(), ", ")+" (default "+config.DefaultSolver+")")
	flags.DurationVarP(&opts.timeout, "timeout", "t", 0, "give up solving after this long (e.g. 30s); 0 waits forever")
	flags.BoolVar(&opts.precheck, "precheck", true, "reject graphs without a perfect successor matching before solving")
	flags.BoolVar(&opts.verify, "verify", false, "check the decoded cycle against the graph before printing it")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	return root
}
