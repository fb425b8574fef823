package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/letitride/internal/deck"
	"github.com/lox/letitride/internal/evaluator"
	"github.com/lox/letitride/internal/game"
	"github.com/lox/letitride/internal/strategy"
)

func sampleHand(t *testing.T) game.HandRecord {
	t.Helper()
	h := game.HandRecord{
		HandID:       7,
		Bet1:         strategy.Ride,
		Bet2:         strategy.Pull,
		FinalRank:    evaluator.HandResult{Rank: evaluator.Flush},
		BaseBet:      5,
		AmountAtRisk: 10,
		MainPayout:   80,
		Net:          80,
	}
	copy(h.PlayerCards[:], deck.MustParseCards("Ah Kh Qh"))
	copy(h.CommunityCards[:], deck.MustParseCards("2h 9h"))
	return h
}

func TestFromHandWireFormat(t *testing.T) {
	r := FromHand(sampleHand(t))

	assert.Equal(t, int64(7), r.HandID)
	assert.Equal(t, "Ah Kh Qh", r.PlayerCards)
	assert.Equal(t, "2h 9h", r.CommunityCards)
	assert.Equal(t, "ride", r.Bet1)
	assert.Equal(t, "pull", r.Bet2)
	assert.Equal(t, "flush", r.FinalRank)
	assert.Equal(t, "", r.BonusRank, "empty unless the bonus was wagered")
}

func TestFromHandBonusRank(t *testing.T) {
	h := sampleHand(t)
	h.HasBonus = true
	h.BonusBet = 1
	h.BonusRank = evaluator.MiniRoyal

	r := FromHand(h)
	assert.Equal(t, "mini_royal", r.BonusRank)
}

func TestCSVRowMatchesHeader(t *testing.T) {
	r := FromHand(sampleHand(t))
	row := r.Row()
	require.Len(t, row, len(CSVHeader()))

	assert.Equal(t, []string{
		"7", "Ah Kh Qh", "2h 9h",
		"ride", "pull", "flush", "",
		"5.00", "0.00", "10.00",
		"80.00", "0.00", "80.00",
	}, row)
}
