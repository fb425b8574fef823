package game

import (
	"github.com/lox/letitride/internal/deck"
	"github.com/lox/letitride/internal/evaluator"
	"github.com/lox/letitride/internal/strategy"
)

// HandRecord is the immutable outcome of one played hand. It is
// produced once per hand and owned by the session that requested it.
type HandRecord struct {
	HandID         int64
	PlayerCards    [3]deck.Card
	CommunityCards [2]deck.Card

	Bet1 strategy.Decision
	Bet2 strategy.Decision

	FinalRank evaluator.HandResult
	BonusRank evaluator.ThreeCardRank
	HasBonus  bool

	BaseBet  float64
	BonusBet float64

	// AmountAtRisk is baseBet times the circles left riding (bet 3 is
	// always live).
	AmountAtRisk float64

	// MainPayout and BonusPayout are winnings only; returned stakes
	// are not included.
	MainPayout  float64
	BonusPayout float64

	// Net is the hand's signed result: winnings minus stakes lost.
	// Pulled circles never count as losses.
	Net float64
}

// Cards returns all five cards of the final hand in deal order.
func (r HandRecord) Cards() []deck.Card {
	return []deck.Card{
		r.PlayerCards[0], r.PlayerCards[1], r.PlayerCards[2],
		r.CommunityCards[0], r.CommunityCards[1],
	}
}
