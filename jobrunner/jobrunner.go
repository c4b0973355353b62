// Package jobrunner drives one judge validation pass on its own goroutine
// and lets callers observe progress without touching process-wide mutable
// state: a validation run is an owned job handle, not a global singleton.
package jobrunner

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/joeycumines/go-longpoll"
	"github.com/joeycumines/go-microbatch"

	"github.com/elevsim/judge/eventlog"
	"github.com/elevsim/judge/worldstate"
)

// Snapshot is one point-in-time progress observation.
type Snapshot struct {
	Processed int
	Kind      eventlog.Kind
	Time      float64
	Done      bool
	Err       error
}

// Handle owns one in-flight (or finished) validation run.
type Handle struct {
	snapshots chan Snapshot
	batcher   *microbatch.Batcher[*Snapshot]

	mu      sync.Mutex
	latest  Snapshot
	history []Snapshot
}

// Start replays every event sc yields against world, on a new goroutine,
// until the log ends, an error terminates it, or ctx is cancelled.
// Snapshot history is accumulated via a microbatch.Batcher to keep the
// bookkeeping critical section short even under a dense log.
func Start(ctx context.Context, sc *eventlog.Scanner, world *worldstate.World) *Handle {
	h := &Handle{
		snapshots: make(chan Snapshot, 64),
	}
	h.batcher = microbatch.NewBatcher(&microbatch.BatcherConfig{
		MaxSize:       20,
		FlushInterval: 100 * time.Millisecond,
	}, func(_ context.Context, batch []*Snapshot) error {
		h.mu.Lock()
		for _, s := range batch {
			h.history = append(h.history, *s)
		}
		h.mu.Unlock()
		return nil
	})
	go h.run(ctx, sc, world)
	return h
}

func (h *Handle) run(ctx context.Context, sc *eventlog.Scanner, world *worldstate.World) {
	defer close(h.snapshots)
	defer h.batcher.Close()

	var n int
	for {
		if err := ctx.Err(); err != nil {
			h.emit(ctx, Snapshot{Processed: n, Done: true, Err: err})
			return
		}
		ev, err := sc.Next()
		if err == io.EOF {
			h.emit(ctx, Snapshot{Processed: n, Done: true})
			return
		}
		if err != nil {
			h.emit(ctx, Snapshot{Processed: n, Done: true, Err: err})
			return
		}
		if err := world.Apply(ev); err != nil {
			h.emit(ctx, Snapshot{Processed: n, Kind: ev.Kind, Time: ev.Time, Done: true, Err: err})
			return
		}
		n++
		h.emit(ctx, Snapshot{Processed: n, Kind: ev.Kind, Time: ev.Time})
	}
}

func (h *Handle) emit(ctx context.Context, snap Snapshot) {
	h.mu.Lock()
	h.latest = snap
	h.mu.Unlock()

	if _, err := h.batcher.Submit(ctx, &snap); err != nil {
		return
	}

	select {
	case h.snapshots <- snap:
	case <-ctx.Done():
	}
}

// Status returns the most recent Snapshot, without blocking.
func (h *Handle) Status() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest
}

// History returns every Snapshot accumulated via the batcher so far.
func (h *Handle) History() []Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Snapshot, len(h.history))
	copy(out, h.history)
	return out
}

// Wait blocks until at least one new Snapshot is available, the run
// finishes, or ctx is cancelled, returning everything received. cfg may be
// nil for longpoll's defaults. Snapshots not yet taken by Wait are buffered,
// up to 64; once that buffer is full, Start's goroutine pauses until Wait
// drains it or ctx is cancelled.
func (h *Handle) Wait(ctx context.Context, cfg *longpoll.ChannelConfig) ([]Snapshot, error) {
	var out []Snapshot
	err := longpoll.Channel(ctx, cfg, h.snapshots, func(s Snapshot) error {
		out = append(out, s)
		return nil
	})
	if err == io.EOF {
		err = nil
	}
	return out, err
}
