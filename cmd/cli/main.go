package main

import (
	"os"

	"github.com/Chleb0/NAIL062-Hamiltonian-Path-with-SAT/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
