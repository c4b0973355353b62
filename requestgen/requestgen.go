// Package requestgen produces random, grammar-valid request streams for
// exercising the judge: uniformly spaced one-decimal timestamps, priorities
// in {1,2}, and SCHE command timestamps spread over six slots with a minimum
// time gap between any two in the same slot. Each SCHE command's elevator is
// drawn at random, independently of its slot.
package requestgen

import (
	"fmt"
	"io"
	"math/rand"
	"sort"

	"github.com/elevsim/judge/floor"
)

// Config parameterises generation, mirroring the original tool's CLI flags.
type Config struct {
	NumRequests    int     // 1..100
	TimeLimit      float64 // last allowed request timestamp
	Seed           int64
	DuplicateTimes int // requests emitted per generated passenger slot, same time/priority/floors, distinct ids
	NumSchedule    int // number of SCHE commands to scatter across elevators
	ScheduleGap    float64
}

var floors = []string{"B4", "B3", "B2", "B1", "F1", "F2", "F3", "F4", "F5", "F6", "F7"}

var scheFloors = func() []string {
	var out []string
	for _, f := range floors {
		if floor.IsSCHETarget(f) {
			out = append(out, f)
		}
	}
	return out
}()

var scheSpeeds = []float64{0.2, 0.3, 0.4, 0.5}

type line struct {
	time float64
	text string
}

// Generate writes a random, grammar-valid input stream to w.
func Generate(cfg Config, w io.Writer) error {
	if cfg.NumRequests < 1 || cfg.NumRequests > 100 {
		return fmt.Errorf("requestgen: num_requests must be between 1 and 100, got %d", cfg.NumRequests)
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	timestamps := uniqueSortedFloats(rng, cfg.NumRequests, 1.0, cfg.TimeLimit)

	var lines []line
	var passengerID int
	for i := 0; i < cfg.NumRequests; i++ {
		priority := 1 + rng.Intn(2)
		from := floors[rng.Intn(len(floors))]
		to := from
		for to == from {
			to = floors[rng.Intn(len(floors))]
		}
		t := timestamps[i]
		for d := 0; d < cfg.DuplicateTimes; d++ {
			lines = append(lines, line{
				time: t,
				text: fmt.Sprintf("[%.1f]%d-PRI-%d-FROM-%s-TO-%s", t, passengerID, priority, from, to),
			})
			passengerID++
		}
	}

	for _, t := range distributeScheduleTimes(rng, cfg.NumSchedule, cfg.TimeLimit, cfg.ScheduleGap) {
		elevator := 1 + rng.Intn(6)
		speed := scheSpeeds[rng.Intn(len(scheSpeeds))]
		target := scheFloors[rng.Intn(len(scheFloors))]
		lines = append(lines, line{
			time: t,
			text: fmt.Sprintf("[%.1f]SCHE-%d-%v-%s", t, elevator, speed, target),
		})
	}

	sort.SliceStable(lines, func(i, j int) bool { return lines[i].time < lines[j].time })

	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l.text); err != nil {
			return fmt.Errorf("requestgen: writing line: %w", err)
		}
	}
	return nil
}

// uniqueSortedFloats draws n values uniformly from [min,max], rounded to one
// decimal place, and returns them sorted ascending.
func uniqueSortedFloats(rng *rand.Rand, n int, min, max float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		raw := min + rng.Float64()*(max-min)
		out[i] = roundToDecimal(raw)
	}
	sort.Float64s(out)
	return out
}

func roundToDecimal(v float64) float64 {
	return float64(int(v*10+0.5)) / 10.0
}

// distributeScheduleTimes assigns k random timestamps in [1,n] to six slots
// such that, within a slot, no two timestamps are within gap of each other;
// a timestamp that fits no slot goes to whichever slot currently holds the
// fewest.
func distributeScheduleTimes(rng *rand.Rand, k int, n, gap float64) []float64 {
	if k <= 0 {
		return nil
	}
	raw := make([]float64, k)
	for i := range raw {
		raw[i] = roundToDecimal(1 + rng.Float64()*(n-1))
	}
	sort.Float64s(raw)

	slots := make([][]float64, 6)
	for _, t := range raw {
		placed := false
		for s := range slots {
			if fitsSlot(slots[s], t, gap) {
				slots[s] = append(slots[s], t)
				placed = true
				break
			}
		}
		if !placed {
			smallest := 0
			for s := 1; s < len(slots); s++ {
				if len(slots[s]) < len(slots[smallest]) {
					smallest = s
				}
			}
			slots[smallest] = append(slots[smallest], t)
		}
	}

	var out []float64
	for _, s := range slots {
		out = append(out, s...)
	}
	return out
}

func fitsSlot(slot []float64, t, gap float64) bool {
	if len(slot) == 0 {
		return true
	}
	for _, x := range slot {
		if abs(t-x) <= gap {
			return false
		}
	}
	return true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
