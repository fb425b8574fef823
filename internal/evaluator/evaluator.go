package evaluator

import (
	"fmt"

	"github.com/lox/letitride/internal/deck"
)

// EvaluateFive classifies exactly five cards. The result is invariant
// under input order. Returns an error for any other input size.
func EvaluateFive(cards []deck.Card) (HandResult, error) {
	if len(cards) != 5 {
		return HandResult{}, fmt.Errorf("evaluate five: expected 5 cards, got %d", len(cards))
	}

	var counts [15]uint8
	flush := true
	suit := cards[0].Suit
	for _, c := range cards {
		counts[c.Rank]++
		if c.Suit != suit {
			flush = false
		}
	}

	// Rank values descending, via insertion sort on a fixed array.
	var values [5]deck.Rank
	for i, c := range cards {
		values[i] = c.Rank
	}
	for i := 1; i < 5; i++ {
		for j := i; j > 0 && values[j] > values[j-1]; j-- {
			values[j], values[j-1] = values[j-1], values[j]
		}
	}

	straight, straightHigh := straightHighCard(values)

	if flush && straight {
		r := HandResult{Rank: StraightFlush}
		r.Primary[0] = straightHigh
		if straightHigh == deck.Ace {
			r.Rank = RoyalFlush
		}
		return r, nil
	}

	// Frequency classes. With five cards there is at most one quad, one
	// trip, and up to two pairs.
	var quad, trip deck.Rank
	var pairs [2]deck.Rank
	pairCount := 0
	for v := deck.Ace; v >= deck.Two; v-- {
		switch counts[v] {
		case 4:
			quad = v
		case 3:
			trip = v
		case 2:
			pairs[pairCount] = v
			pairCount++
		}
	}

	switch {
	case quad != 0:
		r := HandResult{Rank: FourOfAKind}
		r.Primary[0] = quad
		r.Kickers[0] = singleKicker(values, quad)
		return r, nil

	case trip != 0 && pairCount == 1:
		r := HandResult{Rank: FullHouse}
		r.Primary[0] = trip
		r.Primary[1] = pairs[0]
		return r, nil

	case flush:
		r := HandResult{Rank: Flush}
		r.Kickers = values
		return r, nil

	case straight:
		r := HandResult{Rank: Straight}
		r.Primary[0] = straightHigh
		return r, nil

	case trip != 0:
		r := HandResult{Rank: ThreeOfAKind}
		r.Primary[0] = trip
		fillKickers(&r, values, trip, 0)
		return r, nil

	case pairCount == 2:
		r := HandResult{Rank: TwoPair}
		r.Primary[0] = pairs[0]
		r.Primary[1] = pairs[1]
		fillKickers(&r, values, pairs[0], pairs[1])
		return r, nil

	case pairCount == 1:
		r := HandResult{Rank: PairBelowTens}
		if pairs[0] >= deck.Ten {
			r.Rank = PairTensOrBetter
		}
		r.Primary[0] = pairs[0]
		fillKickers(&r, values, pairs[0], 0)
		return r, nil

	default:
		r := HandResult{Rank: HighCard}
		r.Kickers = values
		return r, nil
	}
}

// straightHighCard reports whether the descending values form a straight
// and the straight's high card. The wheel {A,5,4,3,2} counts as a
// 5-high straight, not ace-high.
func straightHighCard(values [5]deck.Rank) (bool, deck.Rank) {
	for i := 0; i < 4; i++ {
		if values[i] == values[i+1] {
			return false, 0
		}
	}
	if values[0]-values[4] == 4 {
		return true, values[0]
	}
	if values[0] == deck.Ace && values[1] == deck.Five &&
		values[2] == deck.Four && values[3] == deck.Three && values[4] == deck.Two {
		return true, deck.Five
	}
	return false, 0
}

// singleKicker returns the one rank not matching excluded.
func singleKicker(values [5]deck.Rank, excluded deck.Rank) deck.Rank {
	for _, v := range values {
		if v != excluded {
			return v
		}
	}
	return 0
}

// fillKickers copies the descending values not in the excluded classes
// into r.Kickers.
func fillKickers(r *HandResult, values [5]deck.Rank, ex1, ex2 deck.Rank) {
	n := 0
	for _, v := range values {
		if v != ex1 && v != ex2 {
			r.Kickers[n] = v
			n++
		}
	}
}
