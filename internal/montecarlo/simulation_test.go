package montecarlo

import (
	"errors"
	"math"
	"testing"

	"github.com/lox/montyhall/internal/randutil"
)

// makeOutcomes builds a stay-outcome slice with the given number of wins and
// its switch complement.
func makeOutcomes(n, stayWins int) (stay, swtch []bool) {
	stay = make([]bool, n)
	swtch = make([]bool, n)
	for i := range stay {
		stay[i] = i < stayWins
		swtch[i] = !stay[i]
	}
	return stay, swtch
}

func TestSimulation_FoldAccumulates(t *testing.T) {
	sim := New()

	stayA, switchA := makeOutcomes(10, 3)
	stayB, switchB := makeOutcomes(20, 6)

	if err := sim.Fold(stayA, switchA); err != nil {
		t.Fatalf("fold batch A: %v", err)
	}
	if err := sim.Fold(stayB, switchB); err != nil {
		t.Fatalf("fold batch B: %v", err)
	}

	if sim.Samples() != 30 {
		t.Errorf("expected 30 samples, got %d", sim.Samples())
	}
	if sim.StayWins() != 9 {
		t.Errorf("expected 9 stay wins, got %d", sim.StayWins())
	}
	if sim.SwitchWins() != 21 {
		t.Errorf("expected 21 switch wins, got %d", sim.SwitchWins())
	}
	if sim.StayWins()+sim.SwitchWins() != sim.Samples() {
		t.Error("win counts must sum to total samples")
	}
}

func TestSimulation_FoldRejectsMismatch(t *testing.T) {
	sim := New()
	err := sim.Fold(make([]bool, 5), make([]bool, 4))
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
	if sim.Samples() != 0 {
		t.Error("failed fold must not mutate state")
	}
}

func TestSimulation_FoldRejectsEmpty(t *testing.T) {
	sim := New()
	err := sim.Fold(nil, nil)
	if !errors.Is(err, ErrBatchSize) {
		t.Fatalf("expected ErrBatchSize, got %v", err)
	}
}

func TestSimulation_WinProbabilityNotReady(t *testing.T) {
	sim := New()
	for _, strategy := range []Strategy{Stay, Switch} {
		if _, err := sim.WinProbability(strategy); !errors.Is(err, ErrNoSamples) {
			t.Errorf("%s on fresh simulation: expected ErrNoSamples, got %v", strategy, err)
		}
	}
}

func TestSimulation_WinProbabilityUnknownStrategy(t *testing.T) {
	sim := New()
	if err := sim.Sample(10, randutil.New(1)); err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	if _, err := sim.WinProbability(Strategy(42)); !errors.Is(err, ErrStrategy) {
		t.Fatalf("expected ErrStrategy, got %v", err)
	}
}

func TestSimulation_ScenarioProbability(t *testing.T) {
	sim := New()
	stay := []bool{true, false, false, true, false}
	swtch := []bool{false, true, true, false, true}
	if err := sim.Fold(stay, swtch); err != nil {
		t.Fatalf("fold failed: %v", err)
	}

	if sim.StayWins() != 2 || sim.SwitchWins() != 3 || sim.Samples() != 5 {
		t.Fatalf("counts = %d/%d/%d, want 2/3/5",
			sim.StayWins(), sim.SwitchWins(), sim.Samples())
	}

	p, err := sim.WinProbability(Stay)
	if err != nil {
		t.Fatalf("win probability failed: %v", err)
	}
	if p != 0.4 {
		t.Errorf("P(stay) = %v, want 0.4", p)
	}
}

func TestSimulation_Convergence(t *testing.T) {
	const n = 1_000_000
	sim := New()
	if err := sim.Sample(n, randutil.New(42)); err != nil {
		t.Fatalf("sample failed: %v", err)
	}

	if sim.StayWins()+sim.SwitchWins() != sim.Samples() {
		t.Fatal("win counts must sum to total samples")
	}

	stay, err := sim.WinProbability(Stay)
	if err != nil {
		t.Fatalf("win probability failed: %v", err)
	}
	swtch, err := sim.WinProbability(Switch)
	if err != nil {
		t.Fatalf("win probability failed: %v", err)
	}

	if math.Abs(stay-1.0/3.0) > 0.01 {
		t.Errorf("P(stay) = %.4f, expected within 0.01 of 1/3", stay)
	}
	if math.Abs(swtch-2.0/3.0) > 0.01 {
		t.Errorf("P(switch) = %.4f, expected within 0.01 of 2/3", swtch)
	}
}

func TestSimulation_Merge(t *testing.T) {
	a := New()
	b := New()

	stayA, switchA := makeOutcomes(10, 4)
	stayB, switchB := makeOutcomes(30, 10)
	if err := a.Fold(stayA, switchA); err != nil {
		t.Fatal(err)
	}
	if err := b.Fold(stayB, switchB); err != nil {
		t.Fatal(err)
	}

	a.Merge(b)

	if a.Samples() != 40 || a.StayWins() != 14 || a.SwitchWins() != 26 {
		t.Errorf("merged counts = %d/%d/%d, want 40/14/26",
			a.Samples(), a.StayWins(), a.SwitchWins())
	}
}

func TestStrategy_String(t *testing.T) {
	if Stay.String() != "stay" || Switch.String() != "switch" {
		t.Errorf("unexpected strategy names: %q, %q", Stay, Switch)
	}
}
