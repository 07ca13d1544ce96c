package montecarlo

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/montyhall/internal/randutil"
)

// ProgressFunc is called as trials complete. Implementations must be safe
// for concurrent use; the runner invokes it from every worker.
type ProgressFunc func(completed, total int)

// Runner drives a full simulation: it splits the requested trial count
// across workers, gives each an independent RNG derived from the root seed,
// and merges the per-worker tallies into a single Simulation. For a fixed
// seed and worker count the merged totals are reproducible, since counts do
// not depend on merge order.
type Runner struct {
	Samples   int
	BatchSize int
	Workers   int
	Seed      int64
	Logger    *log.Logger
	Progress  ProgressFunc
}

// Run executes the simulation. Cancellation is checked between batches, so
// a cancelled context aborts promptly without a partial fold.
func (r Runner) Run(ctx context.Context) (*Simulation, error) {
	if r.Samples <= 0 {
		return nil, fmt.Errorf("run %d samples: %w", r.Samples, ErrBatchSize)
	}
	batchSize := r.BatchSize
	if batchSize <= 0 || batchSize > r.Samples {
		batchSize = r.Samples
	}
	workers := r.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > runtime.NumCPU() {
		workers = runtime.NumCPU()
	}
	if workers > r.Samples {
		workers = r.Samples
	}

	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}

	// Worker seeds come off a root stream so one seed flag reproduces the
	// whole run.
	root := randutil.New(r.Seed)
	seeds := make([]int64, workers)
	for w := range seeds {
		seeds[w] = root.Int64()
	}

	perWorker := r.Samples / workers
	remainder := r.Samples % workers

	var completed atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	results := make(chan *Simulation, workers)

	for w := 0; w < workers; w++ {
		quota := perWorker
		if w < remainder {
			quota++
		}
		seed := seeds[w]
		worker := w

		g.Go(func() error {
			rng := randutil.New(seed)
			sim := New()

			for remaining := quota; remaining > 0; {
				if err := ctx.Err(); err != nil {
					return err
				}
				n := batchSize
				if n > remaining {
					n = remaining
				}
				if err := sim.Sample(n, rng); err != nil {
					return fmt.Errorf("worker %d: %w", worker, err)
				}
				remaining -= n

				done := completed.Add(int64(n))
				if r.Progress != nil {
					r.Progress(int(done), r.Samples)
				}
			}

			logger.Debug("worker finished",
				"worker", worker, "samples", sim.Samples())

			select {
			case results <- sim:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	go func() {
		g.Wait()
		close(results)
	}()

	total := New()
	for sim := range results {
		total.Merge(sim)
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return total, nil
}
