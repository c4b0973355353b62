// Command score computes and records the performance metrics for one
// contestant run: T_max_score, WT (weighted wait time), and W (door/arrival
// overhead), appending a row to a results CSV.
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/elevsim/judge/diagnostics"
	"github.com/elevsim/judge/requeststream"
	"github.com/elevsim/judge/scorer"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("score", flag.ContinueOnError)
	fs.SetOutput(stderr)
	realTime := fs.Float64("real_time", -1, "wall-clock seconds the contestant actually took; negative disables it")
	csvFile := fs.String("csv_file", "log/results.csv", "CSV file results are appended to")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(stderr, "usage: score input_file output_file [--real_time SECONDS] [--csv_file PATH]")
		return 1
	}
	inputFile, outputFile := fs.Arg(0), fs.Arg(1)

	in, err := os.Open(inputFile)
	if err != nil {
		fmt.Fprintf(stdout, "Validation Error: %v\n", err)
		return 1
	}
	defer in.Close()

	stream, err := requeststream.Parse(in)
	if err != nil {
		fmt.Fprintf(stdout, "Validation Error: %v\n", err)
		return 1
	}

	out, err := os.Open(outputFile)
	if err != nil {
		fmt.Fprintf(stdout, "Validation Error: %v\n", err)
		return 1
	}
	defer out.Close()

	sink := diagnostics.NewSink()
	result, err := scorer.Score(scorer.CaseName(outputFile), stream, out, *realTime, sink)
	if err != nil {
		fmt.Fprintf(stdout, "Validation Error: %v\n", err)
		return 1
	}

	for _, w := range sink.Warnings() {
		fmt.Fprintln(stderr, w)
	}

	if err := scorer.AppendCSV(*csvFile, result); err != nil {
		fmt.Fprintf(stderr, "warning: could not write %s: %v\n", *csvFile, err)
	}

	fmt.Fprintf(stdout, "T_max_score: %s\n", formatScore(result.TMaxScore))
	fmt.Fprintf(stdout, "WT: %s\n", formatScore(result.WT))
	fmt.Fprintf(stdout, "W: %s\n", formatScore(result.W()))
	return 0
}

func formatScore(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.4f", v)
}
