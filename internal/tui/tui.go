// Package tui implements the live convergence view: a Bubble Tea program
// that samples in the background and redraws the two win-rate bars as the
// estimates settle towards 1/3 and 2/3.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/montyhall/internal/montecarlo"
)

// Options configures the watch run.
type Options struct {
	Samples   int
	BatchSize int
	Rng       montecarlo.Rand
	Logger    *log.Logger
}

// Model is the Bubble Tea model for the watch view.
type Model struct {
	sim       *montecarlo.Simulation
	rng       montecarlo.Rand
	total     int
	batchSize int
	logger    *log.Logger

	stayBar   progress.Model
	switchBar progress.Model

	width int
	done  bool
	err   error
}

// batchMsg carries one generated batch from the sampling command.
type batchMsg struct {
	batch *montecarlo.Batch
	err   error
}

// NewModel builds the model; sampling starts on Init.
func NewModel(opts Options) *Model {
	stay := progress.New(progress.WithSolidFill("11"), progress.WithoutPercentage())
	swtch := progress.New(progress.WithSolidFill("10"), progress.WithoutPercentage())

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = 10_000
	}

	return &Model{
		sim:       montecarlo.New(),
		rng:       opts.Rng,
		total:     opts.Samples,
		batchSize: batchSize,
		logger:    opts.Logger,
		stayBar:   stay,
		switchBar: swtch,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.nextBatch()
}

// nextBatch returns a command that generates the next batch off the UI
// goroutine. The command chain is sequential, so the RNG stream has exactly
// one consumer at a time.
func (m *Model) nextBatch() tea.Cmd {
	remaining := m.total - m.sim.Samples()
	if remaining <= 0 {
		return nil
	}
	n := m.batchSize
	if n > remaining {
		n = remaining
	}
	rng := m.rng
	return func() tea.Msg {
		b, err := montecarlo.GenerateBatch(n, rng)
		return batchMsg{batch: b, err: err}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		barWidth := msg.Width - 30
		if barWidth < 10 {
			barWidth = 10
		}
		if barWidth > 60 {
			barWidth = 60
		}
		m.stayBar.Width = barWidth
		m.switchBar.Width = barWidth

	case batchMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		if err := m.sim.FoldBatch(msg.batch); err != nil {
			m.err = err
			return m, tea.Quit
		}
		if m.sim.Samples() >= m.total {
			m.done = true
			if m.logger != nil {
				m.logger.Debug("sampling finished",
					"samples", m.sim.Samples(),
					"stay_wins", m.sim.StayWins(),
					"switch_wins", m.sim.SwitchWins())
			}
			return m, nil
		}
		return m, m.nextBatch()
	}

	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(" monty hall "))
	b.WriteString("\n\n")

	samples := m.sim.Samples()
	if samples == 0 {
		b.WriteString(InfoStyle.Render("sampling..."))
		b.WriteString("\n")
		return b.String()
	}

	stayRate := float64(m.sim.StayWins()) / float64(samples)
	switchRate := float64(m.sim.SwitchWins()) / float64(samples)

	fmt.Fprintf(&b, "%s %s %s\n",
		LabelStyle.Render("stay  "),
		m.stayBar.ViewAs(stayRate),
		RateStyle.Render(fmt.Sprintf("%6.2f%%", stayRate*100)))
	fmt.Fprintf(&b, "%s %s %s\n",
		LabelStyle.Render("switch"),
		m.switchBar.ViewAs(switchRate),
		RateStyle.Render(fmt.Sprintf("%6.2f%%", switchRate*100)))

	fmt.Fprintf(&b, "\n%s\n",
		InfoStyle.Render(fmt.Sprintf("%d / %d games", samples, m.total)))

	if m.done {
		b.WriteString(SuccessStyle.Render("done"))
		b.WriteString(InfoStyle.Render("  press q to quit"))
	} else {
		b.WriteString(InfoStyle.Render("press q to quit"))
	}
	b.WriteString("\n")

	return b.String()
}

// Err returns the error that ended the program, if any.
func (m *Model) Err() error {
	return m.err
}

// Run starts the watch program and blocks until it exits.
func Run(opts Options) error {
	model := NewModel(opts)
	p := tea.NewProgram(model)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(*Model); ok && m.err != nil {
		return m.err
	}
	return nil
}
