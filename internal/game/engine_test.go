package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/letitride/internal/deck"
	"github.com/lox/letitride/internal/evaluator"
	"github.com/lox/letitride/internal/paytable"
	"github.com/lox/letitride/internal/randutil"
	"github.com/lox/letitride/internal/strategy"
)

func newEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	if cfg.Strategy == nil {
		cfg.Strategy = strategy.Basic{}
	}
	if cfg.Main == nil {
		cfg.Main = paytable.Standard()
	}
	e, err := New(deck.New(randutil.New(1)), cfg)
	require.NoError(t, err)
	return e
}

func playDealt(t *testing.T, e *Engine, player, community string, baseBet, bonusBet float64) HandRecord {
	t.Helper()
	rec, err := e.PlayDealt(1, deck.MustParseCards(player), deck.MustParseCards(community), baseBet, bonusBet, &strategy.Context{})
	require.NoError(t, err)
	return rec
}

func TestNewValidation(t *testing.T) {
	d := deck.New(randutil.New(1))

	_, err := New(nil, Config{Strategy: strategy.Basic{}, Main: paytable.Standard()})
	assert.Error(t, err)

	_, err = New(d, Config{Main: paytable.Standard()})
	assert.Error(t, err)

	_, err = New(d, Config{Strategy: strategy.Basic{}})
	assert.Error(t, err)

	_, err = New(d, Config{Strategy: strategy.Basic{}, Main: paytable.Standard(), DealerDiscards: -1})
	assert.Error(t, err)
}

func TestBetValidation(t *testing.T) {
	e := newEngine(t, Config{})
	ctx := &strategy.Context{}

	_, err := e.PlayHand(1, 0, 0, ctx)
	assert.Error(t, err, "base bet must be positive")

	_, err = e.PlayHand(1, -5, 0, ctx)
	assert.Error(t, err)

	_, err = e.PlayHand(1, 5, -1, ctx)
	assert.Error(t, err, "bonus bet must be non-negative")

	_, err = e.PlayHand(1, 5, 1, ctx)
	assert.Error(t, err, "bonus bet requires a bonus paytable")

	e = newEngine(t, Config{Bonus: paytable.StandardBonus()})
	_, err = e.PlayHand(1, 5, 1, ctx)
	assert.NoError(t, err)
}

func TestWinningHandPaysPerCircle(t *testing.T) {
	// Basic strategy rides both circles on a made pair of jacks; pair
	// pays 1:1 on all three circles.
	e := newEngine(t, Config{})
	rec := playDealt(t, e, "Jh Jd 4c", "9s 2d", 10, 0)

	assert.Equal(t, strategy.Ride, rec.Bet1)
	assert.Equal(t, strategy.Ride, rec.Bet2)
	assert.Equal(t, evaluator.PairTensOrBetter, rec.FinalRank.Rank)
	assert.Equal(t, 30.0, rec.AmountAtRisk)
	assert.Equal(t, 30.0, rec.MainPayout)
	assert.Equal(t, 30.0, rec.Net)
}

func TestLosingHandForfeitsOnlyRiddenBets(t *testing.T) {
	// Junk cards: basic strategy pulls both, only bet 3 is lost.
	e := newEngine(t, Config{})
	rec := playDealt(t, e, "2h 7d Kc", "9s 4d", 10, 0)

	assert.Equal(t, strategy.Pull, rec.Bet1)
	assert.Equal(t, strategy.Pull, rec.Bet2)
	assert.Equal(t, evaluator.HighCard, rec.FinalRank.Rank)
	assert.Equal(t, 10.0, rec.AmountAtRisk)
	assert.Equal(t, 0.0, rec.MainPayout)
	assert.Equal(t, -10.0, rec.Net)
}

func TestAlwaysRideLosingHand(t *testing.T) {
	e := newEngine(t, Config{Strategy: strategy.AlwaysRide{}})
	rec := playDealt(t, e, "2h 7d Kc", "9s 4d", 10, 0)

	assert.Equal(t, 30.0, rec.AmountAtRisk)
	assert.Equal(t, -30.0, rec.Net)
}

func TestNonPayingPairLoses(t *testing.T) {
	// Pair of nines rides nothing under basic strategy and pays zero.
	e := newEngine(t, Config{})
	rec := playDealt(t, e, "9h 9d 4c", "Ks 2d", 10, 0)

	assert.Equal(t, evaluator.PairBelowTens, rec.FinalRank.Rank)
	assert.Equal(t, 0.0, rec.MainPayout)
	assert.Equal(t, -10.0, rec.Net)
}

func TestBonusSettlesIndependently(t *testing.T) {
	// Junk five-card hand but a three-card straight flush on the
	// player cards: the bonus pays even though the main game loses.
	e := newEngine(t, Config{Strategy: strategy.AlwaysPull{}, Bonus: paytable.StandardBonus()})
	rec := playDealt(t, e, "5h 6h 7h", "Kd 2s", 10, 1)

	assert.True(t, rec.HasBonus)
	assert.Equal(t, evaluator.ThreeStraightFlush, rec.BonusRank)
	assert.Equal(t, 40.0, rec.BonusPayout)
	// Net: +40 bonus, -10 on the always-live third circle.
	assert.Equal(t, 30.0, rec.Net)
}

func TestBonusLossIsBonusBetOnly(t *testing.T) {
	e := newEngine(t, Config{Strategy: strategy.AlwaysPull{}, Bonus: paytable.StandardBonus()})
	rec := playDealt(t, e, "2h 7d Kc", "9s 4d", 10, 5)

	assert.True(t, rec.HasBonus)
	assert.Equal(t, evaluator.ThreeHighCard, rec.BonusRank)
	assert.Equal(t, 0.0, rec.BonusPayout)
	assert.Equal(t, -15.0, rec.Net, "third circle plus bonus bet")
}

func TestRoyalFlushJackpot(t *testing.T) {
	e := newEngine(t, Config{Bonus: paytable.StandardBonus()})
	rec := playDealt(t, e, "Ah Kh Qh", "Jh Th", 5, 1)

	assert.Equal(t, evaluator.RoyalFlush, rec.FinalRank.Rank)
	assert.Equal(t, strategy.Ride, rec.Bet1)
	assert.Equal(t, strategy.Ride, rec.Bet2)
	assert.Equal(t, 15000.0, rec.MainPayout)
	assert.Equal(t, evaluator.MiniRoyal, rec.BonusRank)
	assert.Equal(t, 50.0, rec.BonusPayout)
	assert.Equal(t, 15050.0, rec.Net)
}

func TestPlayHandDealsFreshDeck(t *testing.T) {
	e := newEngine(t, Config{})
	ctx := &strategy.Context{}

	seen := make(map[deck.Card]bool)
	rec, err := e.PlayHand(1, 5, 0, ctx)
	require.NoError(t, err)
	for _, c := range rec.Cards() {
		assert.False(t, seen[c], "duplicate card %s in one hand", c)
		seen[c] = true
	}

	// Every hand reshuffles the full deck, so repeated play never
	// exhausts it.
	for i := 0; i < 100; i++ {
		_, err := e.PlayHand(int64(i+2), 5, 0, ctx)
		require.NoError(t, err)
	}
}

func TestDealerDiscardRetained(t *testing.T) {
	e := newEngine(t, Config{DealerDiscards: 2})
	ctx := &strategy.Context{}

	rec, err := e.PlayHand(1, 5, 0, ctx)
	require.NoError(t, err)
	require.Len(t, e.LastDiscards(), 2)

	// Discards never appear in the played hand.
	for _, d := range e.LastDiscards() {
		for _, c := range rec.Cards() {
			assert.NotEqual(t, d, c)
		}
	}
}

func TestDeterministicForSeed(t *testing.T) {
	play := func() []HandRecord {
		e, err := New(deck.New(randutil.New(99)), Config{Strategy: strategy.Basic{}, Main: paytable.Standard()})
		require.NoError(t, err)
		var recs []HandRecord
		for i := 0; i < 50; i++ {
			rec, err := e.PlayHand(int64(i), 5, 0, &strategy.Context{})
			require.NoError(t, err)
			recs = append(recs, rec)
		}
		return recs
	}

	assert.Equal(t, play(), play())
}

func TestCompositionTracking(t *testing.T) {
	e := newEngine(t, Config{TrackComposition: true})
	ctx := &strategy.Context{}

	_, err := e.PlayHand(1, 5, 0, ctx)
	require.NoError(t, err)
	require.NotNil(t, ctx.RemainingByRank)

	total := 0
	for _, n := range ctx.RemainingByRank {
		total += int(n)
	}
	assert.Equal(t, 47, total, "5 cards dealt from 52")
}
