package evaluator

import (
	"fmt"

	"github.com/lox/letitride/internal/deck"
)

// EvaluateThree classifies exactly three cards for the bonus bet. The
// bonus paytable is not kicker-sensitive so only the rank is returned.
// The A-2-3 wheel counts as a straight; suited Q-K-A is a mini royal,
// paid above other straight flushes.
func EvaluateThree(cards []deck.Card) (ThreeCardRank, error) {
	if len(cards) != 3 {
		return 0, fmt.Errorf("evaluate three: expected 3 cards, got %d", len(cards))
	}

	// 3-element sorting network, descending.
	v0, v1, v2 := cards[0].Rank, cards[1].Rank, cards[2].Rank
	if v0 < v1 {
		v0, v1 = v1, v0
	}
	if v1 < v2 {
		v1, v2 = v2, v1
	}
	if v0 < v1 {
		v0, v1 = v1, v0
	}

	flush := cards[0].Suit == cards[1].Suit && cards[1].Suit == cards[2].Suit
	straight := (v0-v1 == 1 && v1-v2 == 1) ||
		(v0 == deck.Ace && v1 == deck.Three && v2 == deck.Two)

	switch {
	case flush && straight && v2 == deck.Queen:
		return MiniRoyal, nil
	case flush && straight:
		return ThreeStraightFlush, nil
	case v0 == v1 && v1 == v2:
		return ThreeThreeOfAKind, nil
	case straight:
		return ThreeStraight, nil
	case flush:
		return ThreeFlush, nil
	case v0 == v1 || v1 == v2:
		return ThreePair, nil
	default:
		return ThreeHighCard, nil
	}
}
