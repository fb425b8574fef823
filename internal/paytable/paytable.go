// Package paytable defines payout schedules for the main Let It Ride
// game and the three-card bonus bet. Tables are immutable values,
// validated eagerly at construction and passed down by the caller.
package paytable

import (
	"fmt"

	"github.com/lox/letitride/internal/evaluator"
)

// Paytable maps every five-card rank to a non-negative payout
// multiplier. A multiplier of 0 marks a non-paying rank.
type Paytable struct {
	name string
	pays [evaluator.FiveCardRankCount]int
}

// New builds a paytable from a complete rank→multiplier mapping. It
// fails if any rank is missing or any multiplier is negative.
func New(name string, pays map[evaluator.FiveCardRank]int) (*Paytable, error) {
	p := &Paytable{name: name}
	for _, rank := range evaluator.FiveCardRanks {
		mult, ok := pays[rank]
		if !ok {
			return nil, fmt.Errorf("paytable %s: missing multiplier for %s", name, rank)
		}
		if mult < 0 {
			return nil, fmt.Errorf("paytable %s: negative multiplier %d for %s", name, mult, rank)
		}
		p.pays[rank] = mult
	}
	return p, nil
}

// Name returns the table's name.
func (p *Paytable) Name() string {
	return p.name
}

// Multiplier returns the payout multiplier for a rank.
func (p *Paytable) Multiplier(rank evaluator.FiveCardRank) int {
	return p.pays[rank]
}

// BonusPaytable maps every three-card rank to a non-negative payout
// multiplier for the bonus bet.
type BonusPaytable struct {
	name string
	pays [evaluator.ThreeCardRankCount]int
}

// NewBonus builds a bonus paytable, validated the same way as New.
func NewBonus(name string, pays map[evaluator.ThreeCardRank]int) (*BonusPaytable, error) {
	p := &BonusPaytable{name: name}
	for _, rank := range evaluator.ThreeCardRanks {
		mult, ok := pays[rank]
		if !ok {
			return nil, fmt.Errorf("bonus paytable %s: missing multiplier for %s", name, rank)
		}
		if mult < 0 {
			return nil, fmt.Errorf("bonus paytable %s: negative multiplier %d for %s", name, mult, rank)
		}
		p.pays[rank] = mult
	}
	return p, nil
}

// Name returns the table's name.
func (p *BonusPaytable) Name() string {
	return p.name
}

// Multiplier returns the payout multiplier for a rank.
func (p *BonusPaytable) Multiplier(rank evaluator.ThreeCardRank) int {
	return p.pays[rank]
}

// Standard returns the common 1000-to-1 royal schedule.
func Standard() *Paytable {
	p, err := New("standard", map[evaluator.FiveCardRank]int{
		evaluator.RoyalFlush:       1000,
		evaluator.StraightFlush:    200,
		evaluator.FourOfAKind:      50,
		evaluator.FullHouse:        11,
		evaluator.Flush:            8,
		evaluator.Straight:         5,
		evaluator.ThreeOfAKind:     3,
		evaluator.TwoPair:          2,
		evaluator.PairTensOrBetter: 1,
		evaluator.PairBelowTens:    0,
		evaluator.HighCard:         0,
	})
	if err != nil {
		panic(err)
	}
	return p
}

// StandardBonus returns a common three-card bonus schedule.
func StandardBonus() *BonusPaytable {
	p, err := NewBonus("standard-bonus", map[evaluator.ThreeCardRank]int{
		evaluator.MiniRoyal:          50,
		evaluator.ThreeStraightFlush: 40,
		evaluator.ThreeThreeOfAKind:  30,
		evaluator.ThreeStraight:      6,
		evaluator.ThreeFlush:         3,
		evaluator.ThreePair:          1,
		evaluator.ThreeHighCard:      0,
	})
	if err != nil {
		panic(err)
	}
	return p
}

// ByName returns a named built-in paytable.
func ByName(name string) (*Paytable, error) {
	switch name {
	case "", "standard":
		return Standard(), nil
	default:
		return nil, fmt.Errorf("unknown paytable %q", name)
	}
}

// BonusByName returns a named built-in bonus paytable.
func BonusByName(name string) (*BonusPaytable, error) {
	switch name {
	case "", "standard-bonus":
		return StandardBonus(), nil
	default:
		return nil, fmt.Errorf("unknown bonus paytable %q", name)
	}
}
