// Package chart renders the two-category result chart and the percentage
// summary printed after a run. It only reads the three counts the simulation
// exposes; nothing here feeds back into the sampling core.
package chart

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const barWidth = 40

var (
	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	stayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	switchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	percentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))
)

// Result is the read-only view of a finished simulation.
type Result struct {
	Samples    int
	StayWins   int
	SwitchWins int
}

// StayRate returns the observed stay win rate.
func (r Result) StayRate() float64 {
	return float64(r.StayWins) / float64(r.Samples)
}

// SwitchRate returns the observed switch win rate.
func (r Result) SwitchRate() float64 {
	return float64(r.SwitchWins) / float64(r.Samples)
}

// Render returns the bar chart for both strategies. Bars are scaled against
// the larger of the two counts so the winning strategy always fills the
// full width.
func Render(r Result) string {
	max := r.StayWins
	if r.SwitchWins > max {
		max = r.SwitchWins
	}
	if max == 0 {
		max = 1
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\t%s\n",
		labelStyle.Render("win if staying"),
		stayStyle.Render(bar(r.StayWins, max)),
		percentStyle.Render(fmt.Sprintf("%d", r.StayWins)))
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		labelStyle.Render("win if switching"),
		switchStyle.Render(bar(r.SwitchWins, max)),
		percentStyle.Render(fmt.Sprintf("%d", r.SwitchWins)))

	w.Flush()
	return b.String()
}

// Summary returns the two percentage lines the run always prints.
func Summary(r Result) string {
	return fmt.Sprintf(
		"Probability of winning if staying:   %.2f%%\nProbability of winning if switching: %.2f%%\n",
		r.StayRate()*100, r.SwitchRate()*100)
}

func bar(count, max int) string {
	filled := count * barWidth / max
	if count > 0 && filled == 0 {
		filled = 1
	}
	return strings.Repeat("█", filled) + strings.Repeat(" ", barWidth-filled)
}

// PlainOutput forces colourless rendering, used when stdout is not a
// terminal and in tests.
func PlainOutput() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
