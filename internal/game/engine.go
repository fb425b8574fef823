// Package game orchestrates a single Let It Ride hand: deal, optional
// dealer discard, the two pull/ride checkpoints, evaluation and
// settlement. The engine owns its deck; strategies and paytables are
// shared immutable collaborators.
package game

import (
	"fmt"

	"github.com/lox/letitride/internal/analysis"
	"github.com/lox/letitride/internal/deck"
	"github.com/lox/letitride/internal/evaluator"
	"github.com/lox/letitride/internal/paytable"
	"github.com/lox/letitride/internal/strategy"
)

// Config holds the fixed collaborators for an engine.
type Config struct {
	Strategy strategy.Strategy
	Main     *paytable.Paytable

	// Bonus enables the three-card bonus bet. Playing a hand with a
	// positive bonus bet while Bonus is nil is an error.
	Bonus *paytable.BonusPaytable

	// DealerDiscards is the number of cards burned after the player
	// cards are dealt, before the community cards.
	DealerDiscards int

	// TrackComposition exposes the remaining-deck rank counts to the
	// strategy context at each checkpoint.
	TrackComposition bool
}

// Engine plays hands one at a time from a freshly shuffled deck.
type Engine struct {
	deck         *deck.Deck
	strategy     strategy.Strategy
	main         *paytable.Paytable
	bonus        *paytable.BonusPaytable
	discards     int
	trackComp    bool
	lastDiscards []deck.Card
}

// New creates an engine dealing from d.
func New(d *deck.Deck, cfg Config) (*Engine, error) {
	if d == nil {
		return nil, fmt.Errorf("game: deck is required")
	}
	if cfg.Strategy == nil {
		return nil, fmt.Errorf("game: strategy is required")
	}
	if cfg.Main == nil {
		return nil, fmt.Errorf("game: main paytable is required")
	}
	if cfg.DealerDiscards < 0 {
		return nil, fmt.Errorf("game: dealer discards %d is negative", cfg.DealerDiscards)
	}
	return &Engine{
		deck:      d,
		strategy:  cfg.Strategy,
		main:      cfg.Main,
		bonus:     cfg.Bonus,
		discards:  cfg.DealerDiscards,
		trackComp: cfg.TrackComposition,
	}, nil
}

// PlayHand plays one hand: the deck is reset and reshuffled, three
// player cards and two community cards are dealt (with the configured
// dealer discard between them), and the hand is settled. ctx is the
// read-only session context handed to the strategy.
func (e *Engine) PlayHand(handID int64, baseBet, bonusBet float64, ctx *strategy.Context) (HandRecord, error) {
	if err := e.validateBets(baseBet, bonusBet); err != nil {
		return HandRecord{}, err
	}

	e.deck.Reset()
	e.deck.Shuffle()

	player, err := e.deck.Deal(3)
	if err != nil {
		return HandRecord{}, fmt.Errorf("deal player cards: %w", err)
	}

	if e.discards > 0 {
		discarded, err := e.deck.Deal(e.discards)
		if err != nil {
			return HandRecord{}, fmt.Errorf("dealer discard: %w", err)
		}
		e.lastDiscards = append(e.lastDiscards[:0], discarded...)
	}

	community, err := e.deck.Deal(2)
	if err != nil {
		return HandRecord{}, fmt.Errorf("deal community cards: %w", err)
	}

	return e.PlayDealt(handID, player, community, baseBet, bonusBet, ctx)
}

// PlayDealt settles a hand for already-dealt cards. Table sessions use
// this to run seats against shared community cards.
func (e *Engine) PlayDealt(handID int64, player, community []deck.Card, baseBet, bonusBet float64, ctx *strategy.Context) (HandRecord, error) {
	if err := e.validateBets(baseBet, bonusBet); err != nil {
		return HandRecord{}, err
	}
	if len(player) != 3 || len(community) != 2 {
		return HandRecord{}, fmt.Errorf("play hand %d: need 3 player and 2 community cards, got %d and %d",
			handID, len(player), len(community))
	}

	rec := HandRecord{
		HandID:   handID,
		BaseBet:  baseBet,
		BonusBet: bonusBet,
	}
	copy(rec.PlayerCards[:], player)
	copy(rec.CommunityCards[:], community)

	if e.trackComp && ctx != nil {
		counts := e.deck.RemainingByRank()
		ctx.RemainingByRank = &counts
	}

	// First checkpoint: the three player cards only.
	a3, err := analysis.Analyze(player)
	if err != nil {
		return HandRecord{}, err
	}
	rec.Bet1 = e.strategy.Bet1(&a3, ctx)

	// Second checkpoint: player cards plus the first community card.
	// The second community card stays face down, no lookahead.
	var four [4]deck.Card
	copy(four[:], player)
	four[3] = community[0]
	a4, err := analysis.Analyze(four[:])
	if err != nil {
		return HandRecord{}, err
	}
	rec.Bet2 = e.strategy.Bet2(&a4, ctx)

	var five [5]deck.Card
	copy(five[:], player)
	five[3] = community[0]
	five[4] = community[1]
	rec.FinalRank, err = evaluator.EvaluateFive(five[:])
	if err != nil {
		return HandRecord{}, err
	}

	// Bonus settles on the three player cards alone, independent of
	// the pull/ride decisions.
	if bonusBet > 0 {
		rec.HasBonus = true
		rec.BonusRank, err = evaluator.EvaluateThree(player)
		if err != nil {
			return HandRecord{}, err
		}
		if mult := e.bonus.Multiplier(rec.BonusRank); mult > 0 {
			rec.BonusPayout = float64(mult) * bonusBet
			rec.Net += rec.BonusPayout
		} else {
			rec.Net -= bonusBet
		}
	}

	circles := 1 // bet 3 is always live
	if rec.Bet1 == strategy.Ride {
		circles++
	}
	if rec.Bet2 == strategy.Ride {
		circles++
	}
	rec.AmountAtRisk = baseBet * float64(circles)

	if mult := e.main.Multiplier(rec.FinalRank.Rank); mult > 0 {
		rec.MainPayout = float64(mult) * rec.AmountAtRisk
		rec.Net += rec.MainPayout
	} else {
		// Pulled circles were returned to the player; only the amount
		// still at risk is lost.
		rec.Net -= rec.AmountAtRisk
	}

	return rec, nil
}

// LastDiscards returns the cards the dealer burned in the most recent
// hand, retained for statistical auditing.
func (e *Engine) LastDiscards() []deck.Card {
	return e.lastDiscards
}

func (e *Engine) validateBets(baseBet, bonusBet float64) error {
	if baseBet <= 0 {
		return fmt.Errorf("game: base bet %.2f must be positive", baseBet)
	}
	if bonusBet < 0 {
		return fmt.Errorf("game: bonus bet %.2f is negative", bonusBet)
	}
	if bonusBet > 0 && e.bonus == nil {
		return fmt.Errorf("game: bonus bet %.2f with no bonus paytable configured", bonusBet)
	}
	return nil
}
