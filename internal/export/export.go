// Package export converts hand records to their stable text encoding:
// cards as two-character tokens joined by spaces ("Ah Kd Qs"),
// decisions as "ride"/"pull", ranks as lowercase snake_case names.
package export

import (
	"strconv"

	"github.com/lox/letitride/internal/deck"
	"github.com/lox/letitride/internal/game"
)

// Record is the serializable form of one played hand.
type Record struct {
	HandID         int64
	PlayerCards    string
	CommunityCards string
	Bet1           string
	Bet2           string
	FinalRank      string
	BonusRank      string
	BaseBet        float64
	BonusBet       float64
	AmountAtRisk   float64
	MainPayout     float64
	BonusPayout    float64
	Net            float64
}

// FromHand encodes a hand record.
func FromHand(h game.HandRecord) Record {
	r := Record{
		HandID:         h.HandID,
		PlayerCards:    deck.FormatCards(h.PlayerCards[:]),
		CommunityCards: deck.FormatCards(h.CommunityCards[:]),
		Bet1:           h.Bet1.String(),
		Bet2:           h.Bet2.String(),
		FinalRank:      h.FinalRank.Rank.String(),
		BaseBet:        h.BaseBet,
		BonusBet:       h.BonusBet,
		AmountAtRisk:   h.AmountAtRisk,
		MainPayout:     h.MainPayout,
		BonusPayout:    h.BonusPayout,
		Net:            h.Net,
	}
	if h.HasBonus {
		r.BonusRank = h.BonusRank.String()
	}
	return r
}

// CSVHeader returns the column names, matching Row's field order.
func CSVHeader() []string {
	return []string{
		"hand_id", "player_cards", "community_cards",
		"bet1", "bet2", "final_rank", "bonus_rank",
		"base_bet", "bonus_bet", "amount_at_risk",
		"main_payout", "bonus_payout", "net",
	}
}

// Row returns the record's CSV fields.
func (r Record) Row() []string {
	return []string{
		strconv.FormatInt(r.HandID, 10),
		r.PlayerCards,
		r.CommunityCards,
		r.Bet1,
		r.Bet2,
		r.FinalRank,
		r.BonusRank,
		formatAmount(r.BaseBet),
		formatAmount(r.BonusBet),
		formatAmount(r.AmountAtRisk),
		formatAmount(r.MainPayout),
		formatAmount(r.BonusPayout),
		formatAmount(r.Net),
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
