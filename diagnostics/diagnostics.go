// Package diagnostics emits non-fatal warnings discovered while scoring an
// already-validated trace, e.g. a completion timestamp earlier than its
// request timestamp due to clock skew. Warnings are rate-limited per
// category so a pathological log cannot flood the judge's stderr.
package diagnostics

import (
	"fmt"
	"sync"
	"time"

	"github.com/joeycumines/go-catrate"
)

// Categories of known benign oddities.
const (
	ClockSkew      = "clock-skew"
	LongFinalWait  = "long-final-wait"
	DuplicateEvent = "duplicate-event"
)

// defaultRates caps every category to 3 warnings per second and 20 per
// minute, generous for a single judge run over one log but enough to avoid
// spamming a terminal if a contestant's log is pathological.
var defaultRates = map[time.Duration]int{
	time.Second: 3,
	time.Minute: 20,
}

// Sink collects rate-limited warnings. The zero value is not usable; use
// NewSink.
type Sink struct {
	limiter  *catrate.Limiter
	mu       sync.Mutex
	warnings []string
}

// NewSink constructs a Sink using the default per-category rate limits.
func NewSink() *Sink {
	return &Sink{limiter: catrate.NewLimiter(defaultRates)}
}

// Warn records a warning under category if the category's rate limit has
// not been exceeded; otherwise the warning is silently dropped (the limiter
// itself is evidence enough that something's spewing).
func (s *Sink) Warn(category, format string, args ...any) {
	if _, ok := s.limiter.Allow(category); !ok {
		return
	}
	msg := fmt.Sprintf("[%s] %s", category, fmt.Sprintf(format, args...))
	s.mu.Lock()
	s.warnings = append(s.warnings, msg)
	s.mu.Unlock()
}

// Warnings returns every warning recorded so far, in emission order.
func (s *Sink) Warnings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.warnings))
	copy(out, s.warnings)
	return out
}
