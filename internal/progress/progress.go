// Package progress reports sampling progress while a long run is underway.
// Updates arrive from every worker, so the reporter throttles itself and is
// safe for concurrent use. Time is read through a quartz.Clock so tests can
// drive it deterministically.
package progress

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

const defaultInterval = time.Second

// Reporter logs periodic progress lines for a sampling run.
type Reporter struct {
	logger   *log.Logger
	clock    quartz.Clock
	interval time.Duration

	mu        sync.Mutex
	start     time.Time
	lastEmit  time.Time
	completed int
}

// New returns a Reporter on the real clock.
func New(logger *log.Logger) *Reporter {
	return NewWithClock(logger, quartz.NewReal())
}

// NewWithClock returns a Reporter using the given clock.
func NewWithClock(logger *log.Logger, clock quartz.Clock) *Reporter {
	now := clock.Now()
	return &Reporter{
		logger:   logger,
		clock:    clock,
		interval: defaultInterval,
		start:    now,
		lastEmit: now,
	}
}

// Update records completed trials and emits a progress line at most once per
// interval. Its signature matches montecarlo.ProgressFunc.
func (r *Reporter) Update(completed, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.completed = completed

	now := r.clock.Now()
	if now.Sub(r.lastEmit) < r.interval {
		return
	}
	r.lastEmit = now

	elapsed := now.Sub(r.start).Seconds()
	rate := 0.0
	if elapsed > 0 {
		rate = float64(completed) / elapsed
	}
	r.logger.Info("sampling",
		"completed", completed,
		"total", total,
		"pct", float64(completed)/float64(total)*100,
		"trials/sec", int(rate))
}

// Done emits the final throughput line.
func (r *Reporter) Done() {
	r.mu.Lock()
	defer r.mu.Unlock()

	elapsed := r.clock.Now().Sub(r.start)
	rate := 0.0
	if secs := elapsed.Seconds(); secs > 0 {
		rate = float64(r.completed) / secs
	}
	r.logger.Info("sampling complete",
		"samples", r.completed,
		"elapsed", elapsed.Truncate(time.Millisecond),
		"trials/sec", int(rate))
}
