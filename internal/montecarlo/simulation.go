package montecarlo

import "fmt"

// Strategy selects which of the two contestant strategies a probability is
// asked for.
type Strategy int

const (
	// Stay keeps the original choice of door 1.
	Stay Strategy = iota
	// Switch moves to the remaining unopened door after the host's reveal.
	Switch
)

func (s Strategy) String() string {
	switch s {
	case Stay:
		return "stay"
	case Switch:
		return "switch"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Simulation accumulates trial outcomes across any number of batches and
// derives win probabilities from the running totals. The zero value is ready
// to use. It is not safe for concurrent use; parallel runs keep one
// Simulation per worker and Merge them (see Runner).
type Simulation struct {
	samples    int
	stayWins   int
	switchWins int
}

// New returns an empty Simulation.
func New() *Simulation {
	return &Simulation{}
}

// Fold adds one batch's outcomes to the running totals. The slices must be
// the same non-zero length; on error nothing is accumulated.
func (s *Simulation) Fold(stayWins, switchWins []bool) error {
	if len(stayWins) != len(switchWins) {
		return fmt.Errorf("fold %d stay against %d switch outcomes: %w",
			len(stayWins), len(switchWins), ErrLengthMismatch)
	}
	if len(stayWins) == 0 {
		return fmt.Errorf("fold empty batch: %w", ErrBatchSize)
	}

	s.samples += len(stayWins)
	s.stayWins += countTrue(stayWins)
	s.switchWins += countTrue(switchWins)
	return nil
}

// FoldBatch folds a generated batch.
func (s *Simulation) FoldBatch(b *Batch) error {
	return s.Fold(b.StayWins, b.SwitchWins)
}

// Sample generates a batch of n trials and folds it in one step.
func (s *Simulation) Sample(n int, rng Rand) error {
	b, err := GenerateBatch(n, rng)
	if err != nil {
		return err
	}
	return s.FoldBatch(b)
}

// WinProbability returns the observed win rate for the given strategy.
// It fails rather than divide by zero when nothing has been sampled.
func (s *Simulation) WinProbability(strategy Strategy) (float64, error) {
	if s.samples == 0 {
		return 0, ErrNoSamples
	}
	switch strategy {
	case Stay:
		return float64(s.stayWins) / float64(s.samples), nil
	case Switch:
		return float64(s.switchWins) / float64(s.samples), nil
	default:
		return 0, fmt.Errorf("win probability for %d: %w", int(strategy), ErrStrategy)
	}
}

// Merge folds another Simulation's totals into this one. Counts are
// order-independent, which is what makes the parallel runner deterministic.
func (s *Simulation) Merge(other *Simulation) {
	s.samples += other.samples
	s.stayWins += other.stayWins
	s.switchWins += other.switchWins
}

// Samples returns the total number of trials folded so far.
func (s *Simulation) Samples() int { return s.samples }

// StayWins returns the number of trials the stay strategy won.
func (s *Simulation) StayWins() int { return s.stayWins }

// SwitchWins returns the number of trials the switch strategy won.
func (s *Simulation) SwitchWins() int { return s.switchWins }

func countTrue(vs []bool) int {
	n := 0
	for _, v := range vs {
		if v {
			n++
		}
	}
	return n
}
