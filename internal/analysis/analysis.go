// Package analysis derives draw-potential features from partial Let It
// Ride hands (3 cards at the first checkpoint, 4 at the second). The
// snapshot is consumed once per decision and never persisted.
package analysis

import (
	"fmt"

	"github.com/lox/letitride/internal/deck"
)

// Analysis is a feature snapshot of a 3- or 4-card partial hand. Field
// names double as the condition vocabulary for rule-based strategies.
type Analysis struct {
	Cards int // 3 or 4

	// Made-hand features.
	HasPayingHand bool // pair of tens or better, trips, or quads
	HasPair       bool
	PairRank      deck.Rank
	HasTrips      bool

	// Suit features.
	Suited      bool // all cards one suit
	SuitedCount int  // size of the largest same-suit group
	FourFlush   bool // exactly 4 cards, all suited

	// Straight/royal features.
	IsRoyalDraw         bool      // suited and every rank ten or higher
	Consecutive         bool      // unique ranks, ace-high consecutive
	Spread              int       // ace-high span (max-min+1) over unique ranks, 0 if paired
	StraightFlushSpread int       // Spread when all cards are suited, else 0
	OpenStraight        bool      // 4 unique consecutive ranks, both ends live
	InsideStraightHigh  bool      // exactly T-J-Q-K
	LowRank             deck.Rank // lowest rank present (ace high), 0 if paired

	// High-card count (ranks ten or better).
	HighCards int
}

// Analyze computes the feature snapshot for 3 or 4 cards.
func Analyze(cards []deck.Card) (Analysis, error) {
	if len(cards) != 3 && len(cards) != 4 {
		return Analysis{}, fmt.Errorf("analyze: expected 3 or 4 cards, got %d", len(cards))
	}

	a := Analysis{Cards: len(cards)}

	var rankCounts [15]uint8
	var suitCounts [4]uint8
	for _, c := range cards {
		rankCounts[c.Rank]++
		suitCounts[c.Suit]++
		if c.IsHigh() {
			a.HighCards++
		}
	}

	for _, n := range suitCounts {
		if int(n) > a.SuitedCount {
			a.SuitedCount = int(n)
		}
	}
	a.Suited = a.SuitedCount == len(cards)
	a.FourFlush = len(cards) == 4 && a.Suited

	pairs := 0
	for r := deck.Ace; r >= deck.Two; r-- {
		switch rankCounts[r] {
		case 4:
			a.HasTrips = true // quads imply a made paying hand too
			a.HasPair = true
			a.PairRank = r
		case 3:
			a.HasTrips = true
			a.HasPair = true
			a.PairRank = r
		case 2:
			pairs++
			a.HasPair = true
			if a.PairRank == 0 {
				a.PairRank = r
			}
		}
	}
	// Two pair always pays on the final hand, so a made two pair is a
	// paying hand regardless of pair ranks.
	a.HasPayingHand = a.HasTrips || pairs >= 2 || (a.HasPair && a.PairRank >= deck.Ten)

	unique := a.Cards == countUnique(rankCounts)
	if unique {
		low, high := rankBounds(rankCounts)
		a.LowRank = low
		a.Spread = int(high-low) + 1
		a.Consecutive = a.Spread == a.Cards
		if a.Suited {
			a.StraightFlushSpread = a.Spread
		}
		a.IsRoyalDraw = a.Suited && low >= deck.Ten
		if a.Cards == 4 {
			a.OpenStraight = a.Consecutive && low > deck.Two && high < deck.Ace
			a.InsideStraightHigh = a.Consecutive && low == deck.Ten
		}
	}

	return a, nil
}

func countUnique(counts [15]uint8) int {
	n := 0
	for _, c := range counts {
		if c > 0 {
			n++
		}
	}
	return n
}

func rankBounds(counts [15]uint8) (low, high deck.Rank) {
	for r := deck.Two; r <= deck.Ace; r++ {
		if counts[r] > 0 {
			if low == 0 {
				low = r
			}
			high = r
		}
	}
	return low, high
}
