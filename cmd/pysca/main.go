// Command pysca extracts the dominant sinusoidal components of an unevenly
// sampled time series by iterative prewhitening.
//
// Usage:
//
//	pysca [flags] <file> <numin> <numax> <dn> <n>
//	pysca montecarlo [flags] <file> <numin> <numax>
//
// <file> holds time and amplitude columns. The highest periodogram peak in
// [numin, numax] is fitted, subtracted and the search repeated until n
// components are found or a limit flag stops the run. dn is the half-width
// of the noise window used for the signal-to-noise ratio; 0 disables it.
//
// Examples:
//
//	pysca star.dat 0.5 25 1 10
//	pysca --snr-limit 4 --output star.yaml --format yaml star.dat 0.5 25 1 0
//	pysca montecarlo --sigma 0.002 --trials 500 star.dat 0.5 25
package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
)

var errorColor = color.New(color.FgRed, color.Bold)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		errorColor.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
