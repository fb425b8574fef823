// Package strategy implements pull/ride decision makers for the two Let
// It Ride checkpoints. Strategies are immutable once constructed and
// safe to share across simulation workers.
package strategy

import (
	"fmt"

	"github.com/lox/letitride/internal/analysis"
	"github.com/lox/letitride/internal/deck"
)

// Decision is the outcome of a checkpoint: withdraw the bet circle or
// leave it at risk.
type Decision uint8

const (
	Pull Decision = iota
	Ride
)

// String returns the lowercase token used in hand records.
func (d Decision) String() string {
	if d == Ride {
		return "ride"
	}
	return "pull"
}

// Context carries read-only session state into a decision. All fields
// describe the session before the current hand settles.
type Context struct {
	Profit      float64
	HandsPlayed int
	WinStreak   int
	LossStreak  int
	Bankroll    float64

	// RemainingByRank is the undealt-rank composition at the
	// checkpoint, indexed by deck.Rank value. Nil unless the engine is
	// configured to track composition.
	RemainingByRank *[15]uint8
}

// Strategy decides both checkpoints. Bet1 sees the three player cards;
// Bet2 sees those plus the first community card.
type Strategy interface {
	Name() string
	Bet1(a *analysis.Analysis, ctx *Context) Decision
	Bet2(a *analysis.Analysis, ctx *Context) Decision
}

// New selects a built-in strategy by name.
func New(name string) (Strategy, error) {
	switch name {
	case "", "basic":
		return Basic{}, nil
	case "always-ride":
		return AlwaysRide{}, nil
	case "always-pull":
		return AlwaysPull{}, nil
	case "conservative":
		return Conservative(), nil
	case "aggressive":
		return Aggressive(), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

// Basic is the standard published Let It Ride strategy: a fixed rule
// ladder per checkpoint, first match wins, no match pulls.
type Basic struct{}

// Name implements Strategy.
func (Basic) Name() string { return "basic" }

// Bet1 rides made paying hands and strong straight-flush draws.
func (Basic) Bet1(a *analysis.Analysis, _ *Context) Decision {
	switch {
	case a.HasPayingHand:
		return Ride
	case a.IsRoyalDraw:
		return Ride
	case a.Suited && a.Consecutive && a.LowRank >= deck.Three:
		// Suited consecutive except A-2-3 (never consecutive ace-high)
		// and 2-3-4.
		return Ride
	case a.StraightFlushSpread == 4 && a.HighCards >= 1:
		return Ride
	case a.StraightFlushSpread == 5 && a.HighCards >= 2:
		return Ride
	default:
		return Pull
	}
}

// Bet2 rides made paying hands, four-flushes, and live straight draws.
func (Basic) Bet2(a *analysis.Analysis, _ *Context) Decision {
	switch {
	case a.HasPayingHand:
		return Ride
	case a.FourFlush:
		return Ride
	case a.OpenStraight && a.HighCards >= 1:
		return Ride
	case a.InsideStraightHigh:
		return Ride
	default:
		return Pull
	}
}

// AlwaysRide leaves every circle at risk. Used as a variance upper
// bound baseline.
type AlwaysRide struct{}

// Name implements Strategy.
func (AlwaysRide) Name() string { return "always-ride" }

// Bet1 implements Strategy.
func (AlwaysRide) Bet1(_ *analysis.Analysis, _ *Context) Decision { return Ride }

// Bet2 implements Strategy.
func (AlwaysRide) Bet2(_ *analysis.Analysis, _ *Context) Decision { return Ride }

// AlwaysPull withdraws every circle. Used as a variance lower bound
// baseline.
type AlwaysPull struct{}

// Name implements Strategy.
func (AlwaysPull) Name() string { return "always-pull" }

// Bet1 implements Strategy.
func (AlwaysPull) Bet1(_ *analysis.Analysis, _ *Context) Decision { return Pull }

// Bet2 implements Strategy.
func (AlwaysPull) Bet2(_ *analysis.Analysis, _ *Context) Decision { return Pull }
