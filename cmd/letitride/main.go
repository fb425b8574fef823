package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/letitride/internal/config"
	"github.com/lox/letitride/internal/export"
	"github.com/lox/letitride/internal/paytable"
	"github.com/lox/letitride/internal/session"
	"github.com/lox/letitride/internal/simulator"
	"github.com/lox/letitride/internal/statistics"
)

type CLI struct {
	Config string `short:"c" default:"letitride.hcl" help:"HCL configuration file"`

	Sessions int   `help:"Number of sessions (overrides config)"`
	Hands    int   `help:"Hands per session (overrides config)"`
	Seed     int64 `help:"Global RNG seed (overrides config)"`
	Workers  int   `help:"Worker count (overrides config, 0 for NumCPU)"`

	Bankroll float64 `help:"Starting bankroll (overrides config)"`
	BaseBet  float64 `help:"Base bet per circle (overrides config)"`
	BonusBet float64 `help:"Three-card bonus bet (overrides config)"`

	WinLimit      float64 `help:"Stop a session at this profit (overrides config)"`
	LossLimit     float64 `help:"Stop a session at this loss (overrides config)"`
	StopWhenBroke bool    `help:"Stop a session when the bankroll cannot cover the next hand"`

	Strategy string `help:"Strategy name: basic, always-ride, always-pull, conservative, aggressive, or a config-defined strategy"`
	Seats    int    `help:"Seats per table, >1 runs table sessions (overrides config)"`

	CSV     string `name:"csv" help:"Write every played hand to this CSV file"`
	Verbose bool   `short:"v" help:"Verbose logging"`
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	profitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	level := log.InfoLevel
	if cli.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	cfg, err := config.Load(cli.Config)
	if err != nil {
		logger.Error("failed to load config", "file", cli.Config, "error", err)
		ctx.Exit(1)
	}
	applyOverrides(cfg, cli)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		ctx.Exit(1)
	}

	if err := run(cfg, cli, logger); err != nil {
		logger.Error("simulation failed", "error", err)
		ctx.Exit(1)
	}
	ctx.Exit(0)
}

func applyOverrides(cfg *config.Config, cli CLI) {
	s := &cfg.Simulation
	if cli.Sessions > 0 {
		s.Sessions = cli.Sessions
	}
	if cli.Hands > 0 {
		s.Hands = cli.Hands
	}
	if cli.Seed != 0 {
		s.Seed = cli.Seed
	}
	if cli.Workers > 0 {
		s.Workers = cli.Workers
	}
	if cli.Bankroll > 0 {
		s.Bankroll = cli.Bankroll
	}
	if cli.BaseBet > 0 {
		s.BaseBet = cli.BaseBet
	}
	if cli.BonusBet > 0 {
		s.BonusBet = cli.BonusBet
	}
	if cli.WinLimit > 0 {
		s.WinLimit = cli.WinLimit
	}
	if cli.LossLimit > 0 {
		s.LossLimit = cli.LossLimit
	}
	if cli.StopWhenBroke {
		s.StopWhenBroke = true
	}
	if cli.Strategy != "" {
		s.Strategy = cli.Strategy
	}
	if cli.Seats > 0 {
		s.Seats = cli.Seats
	}
	if cli.CSV != "" {
		s.RecordHands = true
	}
}

func run(cfg *config.Config, cli CLI, logger *log.Logger) error {
	sim := cfg.Simulation

	strat, err := cfg.BuildStrategy()
	if err != nil {
		return err
	}
	pays, err := paytable.ByName(sim.Paytable)
	if err != nil {
		return err
	}
	var bonus *paytable.BonusPaytable
	if sim.BonusBet > 0 {
		bonus, err = paytable.BonusByName(sim.BonusPaytable)
		if err != nil {
			return err
		}
	}

	logger.Info("starting simulation",
		"sessions", sim.Sessions, "hands", sim.Hands,
		"seed", sim.Seed, "strategy", strat.Name(), "seats", sim.Seats)

	controller, err := simulator.New(simulator.Config{
		Sessions:         sim.Sessions,
		Workers:          sim.Workers,
		Seed:             sim.Seed,
		Strategy:         strat,
		Main:             pays,
		Bonus:            bonus,
		Seats:            sim.Seats,
		DealerDiscards:   sim.DealerDiscards,
		TrackComposition: sim.TrackComposition,
		Session: session.Config{
			StartingBankroll: sim.Bankroll,
			BaseBet:          sim.BaseBet,
			BonusBet:         sim.BonusBet,
			MaxHands:         sim.Hands,
			WinLimit:         sim.WinLimit,
			LossLimit:        sim.LossLimit,
			StopWhenBroke:    sim.StopWhenBroke,
			RecordHands:      sim.RecordHands,
		},
		Progress: func(completed, total int) {
			if completed%1000 == 0 || completed == total {
				logger.Info("progress", "completed", completed, "total", total)
			}
		},
		Logger: logger,
	})
	if err != nil {
		return err
	}

	results, err := controller.Run(context.Background())
	if err != nil {
		return err
	}

	summary := results.Summary()
	if err := summary.Validate(); err != nil {
		return err
	}
	printSummary(summary, results, strat.Name())

	if cli.CSV != "" {
		if err := writeCSV(cli.CSV, results); err != nil {
			return err
		}
		logger.Info("wrote hand records", "file", cli.CSV)
	}
	return nil
}

func printSummary(s *statistics.Summary, results *simulator.Results, strategyName string) {
	elapsed := results.Finished.Sub(results.Started)
	lo, hi := s.ConfidenceInterval95()

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	row := func(label, value string) {
		fmt.Fprintf(w, "%s\t%s\n", labelStyle.Render(label), value)
	}
	money := func(v float64) string {
		text := fmt.Sprintf("%+.2f", v)
		if v >= 0 {
			return profitStyle.Render(text)
		}
		return lossStyle.Render(text)
	}

	row("Strategy", strategyName)
	row("Sessions", fmt.Sprintf("%d", s.Sessions))
	row("Hands", fmt.Sprintf("%d (%.1f/session)", s.TotalHands, s.MeanHandsPerSession()))
	row("Elapsed", elapsed.Round(time.Millisecond).String())
	fmt.Fprintln(w, "\t")
	row("Mean profit", money(s.Mean()))
	row("Median profit", money(s.Median()))
	row("Std dev", fmt.Sprintf("%.2f", s.StdDev()))
	row("95% CI", fmt.Sprintf("[%+.2f, %+.2f]", lo, hi))
	row("P5 / P95", fmt.Sprintf("%+.2f / %+.2f", s.Percentile(0.05), s.Percentile(0.95)))
	fmt.Fprintln(w, "\t")
	row("Win rate", fmt.Sprintf("%.1f%%", s.WinRate()*100))
	row("Ruin probability", fmt.Sprintf("%.2f%%", s.RuinProbability()*100))
	row("Mean drawdown", fmt.Sprintf("%.2f", s.MeanDrawdown()))
	row("Worst drawdown", fmt.Sprintf("%.2f", s.WorstDrawdown))
	fmt.Fprintln(w, "\t")
	row("Stop reasons", formatStopReasons(s))
	w.Flush()

	out := titleStyle.Render("Let It Ride") + "\n\n" + strings.TrimRight(b.String(), "\n")
	fmt.Println(frameStyle.Render(out))
}

func formatStopReasons(s *statistics.Summary) string {
	parts := make([]string, 0, len(s.StopReasons))
	for reason, count := range s.StopReasons {
		if count > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", session.StopReason(reason), count))
		}
	}
	return strings.Join(parts, " ")
}

func writeCSV(path string, results *simulator.Results) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(export.CSVHeader()); err != nil {
		return err
	}
	for i := range results.Sessions {
		for _, h := range results.Sessions[i].Hands {
			if err := w.Write(export.FromHand(h).Row()); err != nil {
				return err
			}
		}
	}
	for i := range results.Tables {
		for _, seat := range results.Tables[i].Seats {
			for _, h := range seat.Hands {
				if err := w.Write(export.FromHand(h).Row()); err != nil {
					return err
				}
			}
		}
	}

	w.Flush()
	return w.Error()
}
