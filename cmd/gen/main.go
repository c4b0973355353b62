// Command gen writes a randomly generated, grammar-valid request stream to
// stdout, for exercising the judge without a hand-authored input file.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/elevsim/judge/requestgen"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	numRequests := fs.Int("num_requests", 20, "number of passenger requests to generate, 1..100")
	timeLimit := fs.Float64("time_limit", 50, "last allowed request timestamp")
	seed := fs.Int64("seed", 1, "random seed, for reproducible output")
	duplicateTimes := fs.Int("duplicate_times", 1, "number of copies (same time, priority and floors, distinct ids) to emit per generated passenger")
	numSchedule := fs.Int("num_schedule", 0, "number of SCHE commands to scatter across elevators")
	scheduleGap := fs.Float64("schedule_gap", 5, "minimum time gap between two SCHE timestamps in the same slot")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	cfg := requestgen.Config{
		NumRequests:    *numRequests,
		TimeLimit:      *timeLimit,
		Seed:           *seed,
		DuplicateTimes: *duplicateTimes,
		NumSchedule:    *numSchedule,
		ScheduleGap:    *scheduleGap,
	}

	if err := requestgen.Generate(cfg, stdout); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
