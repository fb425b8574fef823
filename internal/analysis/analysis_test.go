package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/letitride/internal/deck"
)

func analyze(t *testing.T, s string) Analysis {
	t.Helper()
	a, err := Analyze(deck.MustParseCards(s))
	require.NoError(t, err)
	return a
}

func TestAnalyzeInputSize(t *testing.T) {
	_, err := Analyze(deck.MustParseCards("Ah Kh"))
	assert.Error(t, err)

	_, err = Analyze(deck.MustParseCards("Ah Kh Qh Jh Th"))
	assert.Error(t, err)
}

func TestPayingHands(t *testing.T) {
	assert.True(t, analyze(t, "Th Td 2c").HasPayingHand, "pair of tens pays")
	assert.True(t, analyze(t, "Ah Ad 2c").HasPayingHand)
	assert.True(t, analyze(t, "4h 4d 4c").HasPayingHand, "trips pay")
	assert.False(t, analyze(t, "9h 9d 2c").HasPayingHand, "nines do not pay")
	assert.False(t, analyze(t, "Ah Kd 2c").HasPayingHand)

	a := analyze(t, "9h 9d 2c")
	assert.True(t, a.HasPair)
	assert.Equal(t, deck.Nine, a.PairRank)
}

func TestRoyalDraw(t *testing.T) {
	a := analyze(t, "Th Jh Ah")
	assert.True(t, a.IsRoyalDraw)
	assert.Equal(t, 3, a.SuitedCount)

	assert.False(t, analyze(t, "Th Jh Ad").IsRoyalDraw, "offsuit")
	assert.False(t, analyze(t, "9h Jh Ah").IsRoyalDraw, "nine too low")

	a = analyze(t, "Th Jh Qh Ah")
	assert.True(t, a.IsRoyalDraw)
	assert.True(t, a.FourFlush)
}

func TestSpreads(t *testing.T) {
	a := analyze(t, "5h 6h 7h")
	assert.True(t, a.Consecutive)
	assert.Equal(t, 3, a.Spread)
	assert.Equal(t, 3, a.StraightFlushSpread)

	a = analyze(t, "5h 6h 8h")
	assert.False(t, a.Consecutive)
	assert.Equal(t, 4, a.Spread)
	assert.Equal(t, 4, a.StraightFlushSpread)

	a = analyze(t, "5h 7h 9h")
	assert.Equal(t, 5, a.StraightFlushSpread)

	// Offsuit cards have no straight-flush spread.
	a = analyze(t, "5h 6d 7h")
	assert.Equal(t, 3, a.Spread)
	assert.Equal(t, 0, a.StraightFlushSpread)

	// Paired hands have no spread at all.
	a = analyze(t, "5h 5d 7h")
	assert.Equal(t, 0, a.Spread)
}

func TestAceIsAlwaysHighInSpreads(t *testing.T) {
	// A-2-3 suited is not consecutive: the ace counts high here, which
	// is what keeps it out of the suited-consecutive ride rule.
	a := analyze(t, "Ah 2h 3h")
	assert.False(t, a.Consecutive)
	assert.Equal(t, 13, a.Spread)

	a = analyze(t, "Qh Kh Ah")
	assert.True(t, a.Consecutive)
	assert.Equal(t, 3, a.Spread)
}

func TestFourCardStraights(t *testing.T) {
	a := analyze(t, "6h 7d 8c 9s")
	assert.True(t, a.OpenStraight)
	assert.False(t, a.InsideStraightHigh)
	assert.Equal(t, 0, a.HighCards)

	a = analyze(t, "Th Jd Qc Ks")
	assert.True(t, a.OpenStraight)
	assert.True(t, a.InsideStraightHigh)
	assert.Equal(t, 4, a.HighCards)

	// J-Q-K-A only completes with a ten: not open.
	a = analyze(t, "Jh Qd Kc As")
	assert.False(t, a.OpenStraight)
	assert.False(t, a.InsideStraightHigh)

	// 2-3-4-5 is treated as one-ended.
	a = analyze(t, "2h 3d 4c 5s")
	assert.False(t, a.OpenStraight)

	// Gapped four cards are not a straight draw at all.
	a = analyze(t, "6h 7d 8c Ts")
	assert.False(t, a.OpenStraight)
	assert.Equal(t, 5, a.Spread)
}

func TestHighCards(t *testing.T) {
	assert.Equal(t, 0, analyze(t, "2h 5d 9c").HighCards)
	assert.Equal(t, 1, analyze(t, "2h 5d Tc").HighCards)
	assert.Equal(t, 3, analyze(t, "Th Jd Ac").HighCards)
}
