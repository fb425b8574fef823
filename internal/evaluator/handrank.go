// Package evaluator classifies five-card Let It Ride hands and three-card
// bonus hands. Evaluation is pure and allocation-free so it is safe for
// concurrent use on the simulation hot path.
package evaluator

import "github.com/lox/letitride/internal/deck"

// FiveCardRank classifies a five-card hand, worst to best. Values are
// explicit: payout lookups and comparisons rely on the integer backing,
// not declaration order.
type FiveCardRank int

const (
	HighCard         FiveCardRank = 0
	PairBelowTens    FiveCardRank = 1
	PairTensOrBetter FiveCardRank = 2
	TwoPair          FiveCardRank = 3
	ThreeOfAKind     FiveCardRank = 4
	Straight         FiveCardRank = 5
	Flush            FiveCardRank = 6
	FullHouse        FiveCardRank = 7
	FourOfAKind      FiveCardRank = 8
	StraightFlush    FiveCardRank = 9
	RoyalFlush       FiveCardRank = 10
)

// FiveCardRankCount is the number of five-card rank variants.
const FiveCardRankCount = 11

// FiveCardRanks lists every five-card rank, worst to best. Paytable
// validation iterates this to check completeness.
var FiveCardRanks = []FiveCardRank{
	HighCard, PairBelowTens, PairTensOrBetter, TwoPair, ThreeOfAKind,
	Straight, Flush, FullHouse, FourOfAKind, StraightFlush, RoyalFlush,
}

// String returns the stable lowercase token for the rank.
func (r FiveCardRank) String() string {
	switch r {
	case HighCard:
		return "high_card"
	case PairBelowTens:
		return "pair_below_tens"
	case PairTensOrBetter:
		return "pair_tens_or_better"
	case TwoPair:
		return "two_pair"
	case ThreeOfAKind:
		return "three_of_a_kind"
	case Straight:
		return "straight"
	case Flush:
		return "flush"
	case FullHouse:
		return "full_house"
	case FourOfAKind:
		return "four_of_a_kind"
	case StraightFlush:
		return "straight_flush"
	case RoyalFlush:
		return "royal_flush"
	default:
		return "unknown"
	}
}

// ThreeCardRank classifies a three-card bonus hand, worst to best.
type ThreeCardRank int

const (
	ThreeHighCard      ThreeCardRank = 0
	ThreePair          ThreeCardRank = 1
	ThreeFlush         ThreeCardRank = 2
	ThreeStraight      ThreeCardRank = 3
	ThreeThreeOfAKind  ThreeCardRank = 4
	ThreeStraightFlush ThreeCardRank = 5
	MiniRoyal          ThreeCardRank = 6
)

// ThreeCardRankCount is the number of three-card rank variants.
const ThreeCardRankCount = 7

// ThreeCardRanks lists every three-card rank, worst to best.
var ThreeCardRanks = []ThreeCardRank{
	ThreeHighCard, ThreePair, ThreeFlush, ThreeStraight,
	ThreeThreeOfAKind, ThreeStraightFlush, MiniRoyal,
}

// String returns the stable lowercase token for the rank.
func (r ThreeCardRank) String() string {
	switch r {
	case ThreeHighCard:
		return "high_card"
	case ThreePair:
		return "pair"
	case ThreeFlush:
		return "flush"
	case ThreeStraight:
		return "straight"
	case ThreeThreeOfAKind:
		return "three_of_a_kind"
	case ThreeStraightFlush:
		return "straight_flush"
	case MiniRoyal:
		return "mini_royal"
	default:
		return "unknown"
	}
}

// HandResult is a classified five-card hand with tie-break data. Primary
// holds the ranks that define the category (e.g. trips rank then pair
// rank for a full house); Kickers holds the remaining ranks descending.
// Unused positions are zero, so lexicographic comparison of the fixed
// arrays gives a strict total order.
type HandResult struct {
	Rank    FiveCardRank
	Primary [2]deck.Rank
	Kickers [5]deck.Rank
}

// Compare returns -1 if h ranks below other, 0 if equal, 1 if above.
func (h HandResult) Compare(other HandResult) int {
	if h.Rank != other.Rank {
		if h.Rank < other.Rank {
			return -1
		}
		return 1
	}
	for i := range h.Primary {
		if h.Primary[i] != other.Primary[i] {
			if h.Primary[i] < other.Primary[i] {
				return -1
			}
			return 1
		}
	}
	for i := range h.Kickers {
		if h.Kickers[i] != other.Kickers[i] {
			if h.Kickers[i] < other.Kickers[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
