package main

import (
	"log"
	"os"
)

const (
	feasibleExitCode   = 10
	infeasibleExitCode = 20
)

func main() {
	var feasible bool
	executed, err := newRootCmd(os.Stdout, &feasible).ExecuteC()
	if err != nil {
		log.Fatalf("%v", err)
	}

	// Only evaluations report feasibility through the exit code
	if executed.Name() != "evaluate" {
		return
	}
	if feasible {
		os.Exit(feasibleExitCode)
	}
	os.Exit(infeasibleExitCode)
}
