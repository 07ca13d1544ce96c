// Package montecarlo estimates the win probability of the stay and switch
// strategies in the Monty Hall problem by sampling large batches of
// independent games and accumulating the outcomes.
//
// The formulation is the classic one: the contestant always starts on door 1,
// the host opens one of the remaining doors to reveal no prize, and the
// contestant either stays on door 1 or switches to the last unopened door.
package montecarlo

import (
	"errors"
	"fmt"
)

const (
	// doorCount is fixed; the three-door game is the whole point.
	doorCount = 3

	// chosenDoor is the contestant's initial pick in every trial.
	chosenDoor = 1
)

var (
	// ErrBatchSize is returned when a batch of non-positive size is requested
	// or folded.
	ErrBatchSize = errors.New("montecarlo: batch size must be positive")

	// ErrLengthMismatch is returned when the stay and switch outcome slices
	// passed to Fold have different lengths.
	ErrLengthMismatch = errors.New("montecarlo: outcome slices differ in length")

	// ErrNoSamples is returned when a probability is requested before any
	// trials have been folded in.
	ErrNoSamples = errors.New("montecarlo: no samples yet")

	// ErrStrategy is returned for a strategy value outside Stay/Switch.
	ErrStrategy = errors.New("montecarlo: unknown strategy")
)

// Rand is the source of uniform random integers consumed by the generator.
// *math/rand/v2.Rand satisfies it; tests substitute a scripted stream.
type Rand interface {
	IntN(n int) int
}

// Batch holds the outcomes of n independent trials as parallel slices.
// It is produced in one call and discarded once folded into a Simulation.
type Batch struct {
	PrizeDoors []int  // winning door per trial, values 1..3
	StayWins   []bool // true where staying on door 1 wins
	SwitchWins []bool // true where switching wins
}

// Len returns the number of trials in the batch.
func (b *Batch) Len() int {
	return len(b.PrizeDoors)
}

// GenerateBatch simulates n independent games and classifies each one under
// both strategies. The only side effect is advancing rng, so equal seeded
// streams produce equal batches.
//
// For every trial exactly one of StayWins[i] and SwitchWins[i] is true: the
// contestant's door and the single switch target partition the doors left
// after the host's reveal, and exactly one of them hides the prize.
func GenerateBatch(n int, rng Rand) (*Batch, error) {
	if n <= 0 {
		return nil, fmt.Errorf("generate batch of %d: %w", n, ErrBatchSize)
	}

	b := &Batch{
		PrizeDoors: make([]int, n),
		StayWins:   make([]bool, n),
		SwitchWins: make([]bool, n),
	}

	for i := 0; i < n; i++ {
		prize := 1 + rng.IntN(doorCount)
		b.PrizeDoors[i] = prize

		// When door 1 already hides the prize the host opens door 2 or 3 at
		// random and the switch target is the other one, a guaranteed loss.
		// Otherwise the host's hand is forced and the only door left to
		// switch to is the prize door itself.
		switchTarget := prize
		if prize == chosenDoor {
			revealed := 2 + rng.IntN(2)
			switchTarget = 5 - revealed
		}

		b.StayWins[i] = prize == chosenDoor
		b.SwitchWins[i] = switchTarget == prize
	}

	return b, nil
}
