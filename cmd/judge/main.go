// Command judge validates one contestant output log against its input
// request stream and prints Accepted or the first rejected event.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/elevsim/judge/eventlog"
	"github.com/elevsim/judge/judgelog"
	"github.com/elevsim/judge/requeststream"
	"github.com/elevsim/judge/worldstate"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("judge", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inputFile := fs.String("input_file", "input.txt", "request stream to validate against")
	outputFile := fs.String("output_file", "output.txt", "contestant event log to validate")
	maxTime := fs.Float64("max_time", 220, "simulation time limit, in seconds")
	verbose := fs.Bool("verbose", false, "emit structured per-event logging to stderr")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	in, err := os.Open(*inputFile)
	if err != nil {
		fmt.Fprintf(stdout, "Validation Error: [0.0] %v\n", err)
		return 1
	}
	defer in.Close()

	stream, err := requeststream.Parse(in)
	if err != nil {
		fmt.Fprintf(stdout, "Validation Error: %v\n", err)
		return 1
	}

	out, err := os.Open(*outputFile)
	if err != nil {
		fmt.Fprintf(stdout, "Validation Error: [0.0] %v\n", err)
		return 1
	}
	defer out.Close()

	opts := []worldstate.Option{worldstate.WithMaxTime(*maxTime)}
	if *verbose {
		opts = append(opts, worldstate.WithLogger(judgelog.New(stderr)))
	}
	world := worldstate.New(stream, opts...)

	sc := eventlog.NewScanner(out)
	for {
		ev, err := sc.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintf(stdout, "Validation Error: %v\n", err)
			return 1
		}
		if err := world.Apply(ev); err != nil {
			fmt.Fprintf(stdout, "Validation Error: %v\n", err)
			return 1
		}
	}

	if err := world.FinalAudit(); err != nil {
		fmt.Fprintf(stdout, "Validation Error: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, "Accepted")
	return 0
}
