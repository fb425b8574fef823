// Package config loads simulation configuration from HCL files.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/letitride/internal/strategy"
)

// Config is the complete simulation configuration.
type Config struct {
	Simulation Simulation       `hcl:"simulation,block"`
	Strategies []StrategyConfig `hcl:"strategy,block"`
}

// Simulation contains the batch-level settings.
type Simulation struct {
	Sessions int   `hcl:"sessions,optional"`
	Hands    int   `hcl:"hands,optional"`
	Seed     int64 `hcl:"seed,optional"`
	Workers  int   `hcl:"workers,optional"`

	Bankroll float64 `hcl:"bankroll,optional"`
	BaseBet  float64 `hcl:"base_bet,optional"`
	BonusBet float64 `hcl:"bonus_bet,optional"`

	WinLimit      float64 `hcl:"win_limit,optional"`
	LossLimit     float64 `hcl:"loss_limit,optional"`
	StopWhenBroke bool    `hcl:"stop_when_broke,optional"`

	Strategy      string `hcl:"strategy,optional"`
	Paytable      string `hcl:"paytable,optional"`
	BonusPaytable string `hcl:"bonus_paytable,optional"`

	Seats            int  `hcl:"seats,optional"`
	DealerDiscards   int  `hcl:"dealer_discards,optional"`
	TrackComposition bool `hcl:"track_composition,optional"`
	RecordHands      bool `hcl:"record_hands,optional"`
}

// StrategyConfig defines a named custom strategy as an ordered rule
// list, first match wins.
type StrategyConfig struct {
	Name  string       `hcl:"name,label"`
	Rules []RuleConfig `hcl:"rule,block"`
}

// RuleConfig is one rule of a custom strategy.
type RuleConfig struct {
	When     string `hcl:"when"`
	Decision string `hcl:"decision"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Simulation: Simulation{
			Sessions: 1000,
			Hands:    500,
			Seed:     1,
			Bankroll: 1000,
			BaseBet:  5,
			Strategy: "basic",
		},
	}
}

// Load loads configuration from an HCL file, falling back to defaults
// when the file does not exist.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default().Simulation
	if c.Simulation.Sessions == 0 {
		c.Simulation.Sessions = def.Sessions
	}
	if c.Simulation.Hands == 0 {
		c.Simulation.Hands = def.Hands
	}
	if c.Simulation.Seed == 0 {
		c.Simulation.Seed = def.Seed
	}
	if c.Simulation.Bankroll == 0 {
		c.Simulation.Bankroll = def.Bankroll
	}
	if c.Simulation.BaseBet == 0 {
		c.Simulation.BaseBet = def.BaseBet
	}
	if c.Simulation.Strategy == "" {
		c.Simulation.Strategy = def.Strategy
	}
}

// Validate checks the configuration, compiling any custom strategies so
// rule errors surface before a simulation runs.
func (c *Config) Validate() error {
	s := c.Simulation
	if s.Sessions <= 0 {
		return fmt.Errorf("sessions must be positive, got %d", s.Sessions)
	}
	if s.Hands <= 0 {
		return fmt.Errorf("hands must be positive, got %d", s.Hands)
	}
	if s.Bankroll < 0 {
		return fmt.Errorf("bankroll must be non-negative, got %.2f", s.Bankroll)
	}
	if s.BaseBet <= 0 {
		return fmt.Errorf("base_bet must be positive, got %.2f", s.BaseBet)
	}
	if s.BonusBet < 0 {
		return fmt.Errorf("bonus_bet must be non-negative, got %.2f", s.BonusBet)
	}
	if s.WinLimit < 0 || s.LossLimit < 0 {
		return fmt.Errorf("win_limit and loss_limit must be non-negative")
	}
	if s.Seats < 0 {
		return fmt.Errorf("seats must be non-negative, got %d", s.Seats)
	}
	if s.DealerDiscards < 0 {
		return fmt.Errorf("dealer_discards must be non-negative, got %d", s.DealerDiscards)
	}
	seats := s.Seats
	if seats < 1 {
		seats = 1
	}
	if need := 3*seats + s.DealerDiscards + 2; need > 52 {
		return fmt.Errorf("%d seats with %d discards needs %d cards, deck has 52",
			seats, s.DealerDiscards, need)
	}

	names := make(map[string]bool)
	for _, sc := range c.Strategies {
		if names[sc.Name] {
			return fmt.Errorf("duplicate strategy %q", sc.Name)
		}
		names[sc.Name] = true
		if _, err := buildCustom(sc); err != nil {
			return err
		}
	}

	if _, err := c.BuildStrategy(); err != nil {
		return err
	}
	return nil
}

// BuildStrategy resolves the selected strategy: a custom strategy block
// by name, or one of the built-ins.
func (c *Config) BuildStrategy() (strategy.Strategy, error) {
	for _, sc := range c.Strategies {
		if sc.Name == c.Simulation.Strategy {
			return buildCustom(sc)
		}
	}
	return strategy.New(c.Simulation.Strategy)
}

func buildCustom(sc StrategyConfig) (strategy.Strategy, error) {
	rules := make([]strategy.Rule, 0, len(sc.Rules))
	for i, rc := range sc.Rules {
		decision, err := parseDecision(rc.Decision)
		if err != nil {
			return nil, fmt.Errorf("strategy %q rule %d: %w", sc.Name, i+1, err)
		}
		rules = append(rules, strategy.Rule{When: rc.When, Decision: decision})
	}
	return strategy.NewCustom(sc.Name, rules)
}

func parseDecision(s string) (strategy.Decision, error) {
	switch s {
	case "ride":
		return strategy.Ride, nil
	case "pull":
		return strategy.Pull, nil
	default:
		return strategy.Pull, fmt.Errorf("unknown decision %q, want ride or pull", s)
	}
}
