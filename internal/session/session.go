// Package session runs sequential hand loops against a bankroll with
// stop conditions, both for a single player and for a multi-seat table
// sharing community cards.
package session

import (
	"fmt"

	"github.com/lox/letitride/internal/bankroll"
	"github.com/lox/letitride/internal/evaluator"
	"github.com/lox/letitride/internal/game"
	"github.com/lox/letitride/internal/strategy"
)

// StopReason records why a session ended. Exactly one reason is set
// when Run returns.
type StopReason uint8

const (
	StopNone StopReason = iota
	StopWinLimit
	StopLossLimit
	StopMaxHands
	StopInsufficientFunds
)

var stopReasonNames = map[StopReason]string{
	StopNone:              "none",
	StopWinLimit:          "win-limit",
	StopLossLimit:         "loss-limit",
	StopMaxHands:          "max-hands",
	StopInsufficientFunds: "insufficient-funds",
}

// String returns the lowercase token used in results and exports.
func (r StopReason) String() string {
	if s, ok := stopReasonNames[r]; ok {
		return s
	}
	return fmt.Sprintf("stop-reason(%d)", uint8(r))
}

// Config holds the per-session parameters.
type Config struct {
	// Index identifies this session within a batch.
	Index int

	StartingBankroll float64
	BaseBet          float64
	BonusBet         float64

	// MaxHands caps the hand loop. Must be positive.
	MaxHands int

	// WinLimit stops the session once profit reaches it. Zero disables.
	WinLimit float64

	// LossLimit stops the session once losses reach it. Zero disables.
	LossLimit float64

	// StopWhenBroke stops the session when the bankroll cannot cover
	// the next hand's full stake (three circles plus the bonus bet).
	// When disabled the session keeps playing and may go negative.
	StopWhenBroke bool

	// RecordHands retains every HandRecord in the result. Off by
	// default to bound memory on large runs.
	RecordHands bool
}

func (c Config) validate() error {
	if c.BaseBet <= 0 {
		return fmt.Errorf("session: base bet %.2f must be positive", c.BaseBet)
	}
	if c.BonusBet < 0 {
		return fmt.Errorf("session: bonus bet %.2f is negative", c.BonusBet)
	}
	if c.MaxHands <= 0 {
		return fmt.Errorf("session: max hands %d must be positive", c.MaxHands)
	}
	if c.WinLimit < 0 || c.LossLimit < 0 {
		return fmt.Errorf("session: win/loss limits must be non-negative")
	}
	return nil
}

// requiredStake is the bankroll needed to start a hand: all three
// circles plus the bonus bet.
func (c Config) requiredStake() float64 {
	return 3*c.BaseBet + c.BonusBet
}

// Result summarizes one finished session.
type Result struct {
	Index       int
	HandsPlayed int
	StopReason  StopReason

	StartingBankroll float64
	FinalBankroll    float64
	Profit           float64
	Peak             float64
	MaxDrawdown      float64
	MaxDrawdownPct   float64

	// FinalRankCounts tallies the final five-card rank of every hand
	// played, indexed by evaluator.FiveCardRank.
	FinalRankCounts [evaluator.FiveCardRankCount]int

	// Hands is populated only when Config.RecordHands is set.
	Hands []game.HandRecord
}

// HandPlayer plays one hand and settles it. *game.Engine is the
// production implementation.
type HandPlayer interface {
	PlayHand(handID int64, baseBet, bonusBet float64, ctx *strategy.Context) (game.HandRecord, error)
}

// Session loops hands from a single player against one bankroll.
type Session struct {
	player  HandPlayer
	cfg     Config
	tracker *bankroll.Tracker
}

// New creates a session. The player is typically a *game.Engine built
// on this session's private RNG stream.
func New(player HandPlayer, cfg Config) (*Session, error) {
	if player == nil {
		return nil, fmt.Errorf("session: hand player is required")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	tracker, err := bankroll.New(cfg.StartingBankroll)
	if err != nil {
		return nil, err
	}
	return &Session{player: player, cfg: cfg, tracker: tracker}, nil
}

// Run plays hands until a stop condition fires and returns the
// session's result. Deterministic given the player's RNG stream and
// the configuration.
func (s *Session) Run() (Result, error) {
	res := Result{
		Index:            s.cfg.Index,
		StartingBankroll: s.cfg.StartingBankroll,
	}
	ctx := strategy.Context{Bankroll: s.tracker.Balance()}

	for {
		if res.HandsPlayed >= s.cfg.MaxHands {
			res.StopReason = StopMaxHands
			break
		}
		if s.cfg.StopWhenBroke && s.tracker.Balance() < s.cfg.requiredStake() {
			res.StopReason = StopInsufficientFunds
			break
		}

		rec, err := s.player.PlayHand(int64(res.HandsPlayed+1), s.cfg.BaseBet, s.cfg.BonusBet, &ctx)
		if err != nil {
			return Result{}, fmt.Errorf("session %d hand %d: %w", s.cfg.Index, res.HandsPlayed+1, err)
		}

		s.tracker.Apply(rec.Net)
		res.HandsPlayed++
		res.FinalRankCounts[rec.FinalRank.Rank]++
		if s.cfg.RecordHands {
			res.Hands = append(res.Hands, rec)
		}

		updateContext(&ctx, rec.Net, s.tracker)
		ctx.HandsPlayed = res.HandsPlayed

		if s.cfg.WinLimit > 0 && s.tracker.Profit() >= s.cfg.WinLimit {
			res.StopReason = StopWinLimit
			break
		}
		if s.cfg.LossLimit > 0 && -s.tracker.Profit() >= s.cfg.LossLimit {
			res.StopReason = StopLossLimit
			break
		}
	}

	res.FinalBankroll = s.tracker.Balance()
	res.Profit = s.tracker.Profit()
	res.Peak = s.tracker.Peak()
	res.MaxDrawdown = s.tracker.MaxDrawdown()
	res.MaxDrawdownPct = s.tracker.MaxDrawdownPct()
	return res, nil
}

// updateContext refreshes the read-only view handed to the strategy
// after a hand settles.
func updateContext(ctx *strategy.Context, net float64, tracker *bankroll.Tracker) {
	switch {
	case net > 0:
		ctx.WinStreak++
		ctx.LossStreak = 0
	case net < 0:
		ctx.LossStreak++
		ctx.WinStreak = 0
	default:
		ctx.WinStreak = 0
		ctx.LossStreak = 0
	}
	ctx.Profit = tracker.Profit()
	ctx.Bankroll = tracker.Balance()
}
