package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/montyhall/internal/chart"
	"github.com/lox/montyhall/internal/config"
	"github.com/lox/montyhall/internal/montecarlo"
	"github.com/lox/montyhall/internal/progress"
	"github.com/lox/montyhall/internal/randutil"
	"github.com/lox/montyhall/internal/tui"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version   kong.VersionFlag `help:"Show version"`
	Samples   int              `help:"Number of games to simulate (default 1000000)"`
	BatchSize int              `name:"batch-size" help:"Trials generated per batch (default 100000)"`
	Workers   int              `help:"Parallel sampling workers (default 1)"`
	Seed      int64            `help:"RNG seed (0 for time-derived)"`
	Config    string           `help:"Path to HCL config file" default:"montyhall.hcl" type:"path"`
	Watch     bool             `short:"w" help:"Show live convergence view instead of one-shot output"`
	NoChart   bool             `name:"no-chart" help:"Skip the bar chart, print percentages only"`
	Verbose   bool             `short:"v" help:"Verbose logging"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("montyhall"),
		kong.Description("Monte Carlo simulation of the Monty Hall problem"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)
	ctx.FatalIfErrorf(run(&cli))
}

func run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	applyFlags(cli, cfg)

	logger := newLogger(cli.Verbose, cfg.Output.LogLevel)

	seed := randutil.Seed(cfg.Simulation.Seed)
	logger.Debug("starting simulation",
		"samples", cfg.Simulation.Samples,
		"batch_size", cfg.Simulation.BatchSize,
		"workers", cfg.Simulation.Workers,
		"seed", seed)

	if cli.Watch {
		return tui.Run(tui.Options{
			Samples:   cfg.Simulation.Samples,
			BatchSize: cfg.Simulation.BatchSize,
			Rng:       randutil.New(seed),
			Logger:    logger,
		})
	}

	reporter := progress.New(logger)
	runner := montecarlo.Runner{
		Samples:   cfg.Simulation.Samples,
		BatchSize: cfg.Simulation.BatchSize,
		Workers:   cfg.Simulation.Workers,
		Seed:      seed,
		Logger:    logger,
		Progress:  reporter.Update,
	}

	start := time.Now()
	sim, err := runner.Run(context.Background())
	if err != nil {
		return err
	}
	reporter.Done()

	stay, err := sim.WinProbability(montecarlo.Stay)
	if err != nil {
		return err
	}
	swtch, err := sim.WinProbability(montecarlo.Switch)
	if err != nil {
		return err
	}

	result := chart.Result{
		Samples:    sim.Samples(),
		StayWins:   sim.StayWins(),
		SwitchWins: sim.SwitchWins(),
	}
	if cfg.Output.ChartEnabled() && !cli.NoChart {
		fmt.Println(chart.Render(result))
	}
	fmt.Printf("Probability of winning if staying:   %.2f%%\n", stay*100)
	fmt.Printf("Probability of winning if switching: %.2f%%\n", swtch*100)
	fmt.Printf("\n%d samples in %v (seed %d)\n",
		sim.Samples(), time.Since(start).Truncate(time.Millisecond), seed)

	return nil
}

// applyFlags overlays explicit CLI flags onto the file configuration.
func applyFlags(cli *CLI, cfg *config.Config) {
	if cli.Samples > 0 {
		cfg.Simulation.Samples = cli.Samples
	}
	if cli.BatchSize > 0 {
		cfg.Simulation.BatchSize = cli.BatchSize
	}
	if cli.Workers > 0 {
		cfg.Simulation.Workers = cli.Workers
	}
	if cli.Seed != 0 {
		cfg.Simulation.Seed = cli.Seed
	}
}

func newLogger(verbose bool, level string) *log.Logger {
	lvl := log.InfoLevel
	if parsed, err := log.ParseLevel(level); err == nil {
		lvl = parsed
	}
	if verbose {
		lvl = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{Level: lvl})
}
