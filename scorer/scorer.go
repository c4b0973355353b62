// Package scorer computes throughput, weighted wait time, and energy use
// over an already-validated output log, and appends one row to a
// persistent CSV result table.
package scorer

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/elevsim/judge/diagnostics"
	"github.com/elevsim/judge/eventlog"
	"github.com/elevsim/judge/requeststream"
)

// Result holds one case's scoring outcome.
type Result struct {
	Case string

	TFinal       float64
	WallClock    float64
	HasWallClock bool
	TMaxScore    float64

	WT float64 // priority-weighted mean completion delay; +Inf if incomplete

	ArriveCount int
	OpenCount   int
	CloseCount  int

	CompletedPassengers int
	TotalPassengers     int
}

// W returns the energy proxy 0.4*ARRIVE + 0.1*OPEN + 0.1*CLOSE.
func (r Result) W() float64 {
	return 0.4*float64(r.ArriveCount) + 0.1*float64(r.OpenCount) + 0.1*float64(r.CloseCount)
}

// Completed renders "done/total" for the CSV column of the same name.
func (r Result) Completed() string {
	return fmt.Sprintf("%d/%d", r.CompletedPassengers, r.TotalPassengers)
}

// Score replays a validated output log a second time and computes the
// scoring metrics. stream is the parsed input (for request times and
// priorities); out is the contestant's output log. wallClock, if >= 0, is
// folded into T_max_score. sink may be nil; when supplied it receives
// benign oddities such as clock skew.
func Score(caseName string, stream *requeststream.Stream, out io.Reader, wallClock float64, sink *diagnostics.Sink) (Result, error) {
	r := Result{
		Case:            caseName,
		TotalPassengers: len(stream.Passengers),
		HasWallClock:    wallClock >= 0,
		WallClock:       wallClock,
	}

	completionTimes := make(map[int]float64, len(stream.Passengers))

	sc := eventlog.NewScanner(out)
	for {
		ev, err := sc.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, err
		}
		if ev.Time > r.TFinal {
			r.TFinal = ev.Time
		}
		switch ev.Kind {
		case eventlog.Arrive:
			r.ArriveCount++
		case eventlog.Open:
			r.OpenCount++
		case eventlog.Close:
			r.CloseCount++
		case eventlog.Out:
			if ev.Success {
				completionTimes[ev.Passenger] = ev.Time
			}
		}
	}

	r.TMaxScore = r.TFinal
	if r.HasWallClock && wallClock > r.TMaxScore {
		r.TMaxScore = wallClock
	}

	if sink != nil {
		for id, p := range stream.Passengers {
			if ct, ok := completionTimes[id]; ok && ct < p.Time-1e-6 {
				sink.Warn(diagnostics.ClockSkew, "passenger %d completed at %.1f before its request time %.1f", id, ct, p.Time)
			}
		}
	}

	r.WT = weightedWaitTime(stream, completionTimes)
	r.CompletedPassengers = len(completionTimes)

	return r, nil
}

// weightedWaitTime is the priority-weighted mean of completion-minus-request
// durations; it is +Inf if any passenger never completed.
func weightedWaitTime(stream *requeststream.Stream, completionTimes map[int]float64) float64 {
	if len(completionTimes) < len(stream.Passengers) {
		return math.Inf(1)
	}
	var weightedSum, weightTotal float64
	for id, p := range stream.Passengers {
		ct, ok := completionTimes[id]
		if !ok {
			return math.Inf(1)
		}
		weight := float64(p.Priority)
		weightedSum += weight * (ct - p.Time)
		weightTotal += weight
	}
	if weightTotal == 0 {
		return 0
	}
	return weightedSum / weightTotal
}

// csvHeader is the fixed schema of the result table.
var csvHeader = []string{"case", "T_max", "WT", "W", "arrive_count", "open_count", "close_count", "completed_passengers"}

// AppendCSV appends r as one row to path, writing the header first if the
// file does not yet exist. Callers derive Case from the output file's
// path via CaseName, not from this function.
func AppendCSV(path string, r Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("scorer: creating result directory: %w", err)
	}
	_, statErr := os.Stat(path)
	needsHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("scorer: opening result file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if needsHeader {
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("scorer: writing header: %w", err)
		}
	}
	row := []string{
		r.Case,
		formatMetric(r.TMaxScore),
		formatMetric(r.WT),
		formatMetric(r.W()),
		strconv.Itoa(r.ArriveCount),
		strconv.Itoa(r.OpenCount),
		strconv.Itoa(r.CloseCount),
		r.Completed(),
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("scorer: writing row: %w", err)
	}
	w.Flush()
	return w.Error()
}

func formatMetric(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// CaseName derives a result-table case label from a log file path, the way
// the original tooling grouped runs by their parent directory's name (e.g.
// ".../mutual_exclusion/run3/output.txt" -> "mutual_exclusion/run3").
func CaseName(outputPath string) string {
	dir := filepath.Dir(outputPath)
	parent := filepath.Base(dir)
	grandparent := filepath.Base(filepath.Dir(dir))
	if grandparent == "." || grandparent == string(filepath.Separator) || grandparent == "" {
		return parent
	}
	return strings.TrimSuffix(grandparent, string(filepath.Separator)) + "/" + parent
}
