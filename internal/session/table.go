package session

import (
	"fmt"

	"github.com/lox/letitride/internal/bankroll"
	"github.com/lox/letitride/internal/deck"
	"github.com/lox/letitride/internal/game"
	"github.com/lox/letitride/internal/paytable"
	"github.com/lox/letitride/internal/strategy"
)

// TableConfig parameterizes a multi-seat table session. All seats share
// the seat-level Config; strategies may differ per seat.
type TableConfig struct {
	// Index identifies this table within a batch.
	Index int

	// Strategies supplies one strategy per seat and fixes the seat
	// count. A single entry may be shared across seats by repetition.
	Strategies []strategy.Strategy

	Main  *paytable.Paytable
	Bonus *paytable.BonusPaytable

	// DealerDiscards is the number of cards burned between the last
	// seat's cards and the community cards.
	DealerDiscards int

	// Seat is the per-seat session configuration (bets, limits, stop
	// flags). Seat.Index is ignored.
	Seat Config
}

// SeatResult is one seat's outcome within a table session.
type SeatResult struct {
	Seat int
	Result
}

// TableResult is the outcome of one table session.
type TableResult struct {
	Index      int
	HandsDealt int
	Seats      []SeatResult
}

// TotalHands returns hands dealt summed across seats.
func (r TableResult) TotalHands() int {
	return r.HandsDealt * len(r.Seats)
}

type tableSeat struct {
	engine  *game.Engine
	tracker *bankroll.Tracker
	ctx     strategy.Context
	stopped StopReason
	result  Result
}

// TableSession deals one shared hand per iteration to N seats: each
// seat receives its own three player cards and all seats share the two
// community cards. Seats stop wagering independently but the table
// advances in lockstep, so every seat reports the same hands played.
// A stopped seat is still dealt cards to keep the card stream identical
// regardless of which seats are active.
type TableSession struct {
	deck  *deck.Deck
	cfg   TableConfig
	seats []*tableSeat
}

// NewTable creates a table session dealing from d.
func NewTable(d *deck.Deck, cfg TableConfig) (*TableSession, error) {
	if d == nil {
		return nil, fmt.Errorf("session: deck is required")
	}
	n := len(cfg.Strategies)
	if n == 0 {
		return nil, fmt.Errorf("session: table needs at least one seat")
	}
	if need := 3*n + cfg.DealerDiscards + 2; need > 52 {
		return nil, fmt.Errorf("session: %d seats with %d discards needs %d cards, deck has 52",
			n, cfg.DealerDiscards, need)
	}
	if cfg.Main == nil {
		return nil, fmt.Errorf("session: main paytable is required")
	}
	if err := cfg.Seat.validate(); err != nil {
		return nil, err
	}

	t := &TableSession{deck: d, cfg: cfg}
	for i, strat := range cfg.Strategies {
		if strat == nil {
			return nil, fmt.Errorf("session: seat %d strategy is nil", i)
		}
		engine, err := game.New(d, game.Config{
			Strategy: strat,
			Main:     cfg.Main,
			Bonus:    cfg.Bonus,
		})
		if err != nil {
			return nil, err
		}
		tracker, err := bankroll.New(cfg.Seat.StartingBankroll)
		if err != nil {
			return nil, err
		}
		t.seats = append(t.seats, &tableSeat{
			engine:  engine,
			tracker: tracker,
			ctx:     strategy.Context{Bankroll: tracker.Balance()},
		})
	}
	return t, nil
}

// Run deals table hands until every seat has stopped or the hand cap is
// reached, then returns per-seat results.
func (t *TableSession) Run() (TableResult, error) {
	res := TableResult{Index: t.cfg.Index}
	cfg := t.cfg.Seat

	for {
		if res.HandsDealt >= cfg.MaxHands {
			t.stopActive(StopMaxHands)
			break
		}
		if cfg.StopWhenBroke {
			for _, seat := range t.seats {
				if seat.stopped == StopNone && seat.tracker.Balance() < cfg.requiredStake() {
					seat.stopped = StopInsufficientFunds
				}
			}
		}
		if t.activeSeats() == 0 {
			break
		}

		handID := int64(res.HandsDealt + 1)
		player, community, err := t.dealTableHand()
		if err != nil {
			return TableResult{}, fmt.Errorf("table %d hand %d: %w", t.cfg.Index, handID, err)
		}
		res.HandsDealt++

		for i, seat := range t.seats {
			if seat.stopped != StopNone {
				continue
			}
			rec, err := seat.engine.PlayDealt(handID, player[i], community, cfg.BaseBet, cfg.BonusBet, &seat.ctx)
			if err != nil {
				return TableResult{}, fmt.Errorf("table %d seat %d hand %d: %w", t.cfg.Index, i, handID, err)
			}

			seat.tracker.Apply(rec.Net)
			seat.result.FinalRankCounts[rec.FinalRank.Rank]++
			if cfg.RecordHands {
				seat.result.Hands = append(seat.result.Hands, rec)
			}

			updateContext(&seat.ctx, rec.Net, seat.tracker)
			seat.ctx.HandsPlayed = res.HandsDealt

			if cfg.WinLimit > 0 && seat.tracker.Profit() >= cfg.WinLimit {
				seat.stopped = StopWinLimit
			}
			if seat.stopped == StopNone && cfg.LossLimit > 0 && -seat.tracker.Profit() >= cfg.LossLimit {
				seat.stopped = StopLossLimit
			}
		}
	}

	for i, seat := range t.seats {
		r := seat.result
		r.Index = t.cfg.Index
		r.HandsPlayed = res.HandsDealt
		r.StopReason = seat.stopped
		r.StartingBankroll = cfg.StartingBankroll
		r.FinalBankroll = seat.tracker.Balance()
		r.Profit = seat.tracker.Profit()
		r.Peak = seat.tracker.Peak()
		r.MaxDrawdown = seat.tracker.MaxDrawdown()
		r.MaxDrawdownPct = seat.tracker.MaxDrawdownPct()
		res.Seats = append(res.Seats, SeatResult{Seat: i, Result: r})
	}
	return res, nil
}

// dealTableHand reshuffles and deals three cards to every seat, burns
// the dealer discards, then deals the shared community cards.
func (t *TableSession) dealTableHand() ([][]deck.Card, []deck.Card, error) {
	t.deck.Reset()
	t.deck.Shuffle()

	player := make([][]deck.Card, len(t.seats))
	for i := range t.seats {
		cards, err := t.deck.Deal(3)
		if err != nil {
			return nil, nil, fmt.Errorf("deal seat %d: %w", i, err)
		}
		player[i] = cards
	}

	if t.cfg.DealerDiscards > 0 {
		if _, err := t.deck.Deal(t.cfg.DealerDiscards); err != nil {
			return nil, nil, fmt.Errorf("dealer discard: %w", err)
		}
	}

	community, err := t.deck.Deal(2)
	if err != nil {
		return nil, nil, fmt.Errorf("deal community: %w", err)
	}
	return player, community, nil
}

func (t *TableSession) activeSeats() int {
	n := 0
	for _, seat := range t.seats {
		if seat.stopped == StopNone {
			n++
		}
	}
	return n
}

func (t *TableSession) stopActive(reason StopReason) {
	for _, seat := range t.seats {
		if seat.stopped == StopNone {
			seat.stopped = reason
		}
	}
}
