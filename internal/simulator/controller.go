// Package simulator fans independent session units across a worker
// pool and aggregates their results.
package simulator

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/letitride/internal/deck"
	"github.com/lox/letitride/internal/game"
	"github.com/lox/letitride/internal/paytable"
	"github.com/lox/letitride/internal/randutil"
	"github.com/lox/letitride/internal/session"
	"github.com/lox/letitride/internal/statistics"
	"github.com/lox/letitride/internal/strategy"
)

// Config holds configuration for a simulation batch.
type Config struct {
	// Sessions is the number of independent units to run.
	Sessions int

	// Workers bounds concurrent units. Zero or negative uses NumCPU.
	Workers int

	// Seed is the global seed. Unit i derives its own RNG stream from
	// (Seed, i), so scheduling never affects any unit's outcome.
	Seed int64

	Strategy strategy.Strategy
	Main     *paytable.Paytable
	Bonus    *paytable.BonusPaytable

	// Seats greater than one runs each unit as a table session.
	Seats int

	DealerDiscards   int
	TrackComposition bool

	// Session is the per-unit template. Its Index is overwritten with
	// the unit index.
	Session session.Config

	// Progress is invoked with (completed, total) as units finish.
	// Delivery is best-effort and not ordered.
	Progress func(completed, total int)

	Logger *log.Logger
	Clock  quartz.Clock
}

// Results is the ordered outcome of a batch. Exactly one of Sessions
// or Tables is populated, matching the configured mode.
type Results struct {
	Sessions []session.Result
	Tables   []session.TableResult

	TotalHands int
	Started    time.Time
	Finished   time.Time
}

// Summary aggregates the batch into summary statistics.
func (r *Results) Summary() *statistics.Summary {
	s := &statistics.Summary{}
	for i := range r.Sessions {
		s.Add(r.Sessions[i])
	}
	for i := range r.Tables {
		s.AddTable(r.Tables[i])
	}
	return s
}

// Controller runs simulation batches.
type Controller struct {
	cfg    Config
	logger *log.Logger
	clock  quartz.Clock
}

// New creates a controller.
func New(cfg Config) (*Controller, error) {
	if cfg.Sessions <= 0 {
		return nil, fmt.Errorf("simulator: session count %d must be positive", cfg.Sessions)
	}
	if cfg.Strategy == nil {
		return nil, fmt.Errorf("simulator: strategy is required")
	}
	if cfg.Main == nil {
		return nil, fmt.Errorf("simulator: main paytable is required")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	return &Controller{cfg: cfg, logger: cfg.Logger, clock: cfg.Clock}, nil
}

// Run executes the batch. Results land at their unit index, so output
// ordering is independent of worker scheduling. The first unit failure
// aborts the batch.
func (c *Controller) Run(ctx context.Context) (*Results, error) {
	res := &Results{Started: c.clock.Now()}
	tableMode := c.cfg.Seats > 1

	c.logger.Debug("starting batch",
		"sessions", c.cfg.Sessions, "workers", c.cfg.Workers,
		"seed", c.cfg.Seed, "seats", c.cfg.Seats)

	if tableMode {
		res.Tables = make([]session.TableResult, c.cfg.Sessions)
	} else {
		res.Sessions = make([]session.Result, c.cfg.Sessions)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Workers)

	var completed atomic.Int64
	for i := 0; i < c.cfg.Sessions; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			if tableMode {
				tr, err := c.runTableUnit(i)
				if err != nil {
					return err
				}
				res.Tables[i] = tr
			} else {
				sr, err := c.runUnit(i)
				if err != nil {
					return err
				}
				res.Sessions[i] = sr
			}

			if c.cfg.Progress != nil {
				c.cfg.Progress(int(completed.Add(1)), c.cfg.Sessions)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range res.Sessions {
		res.TotalHands += res.Sessions[i].HandsPlayed
	}
	for i := range res.Tables {
		res.TotalHands += res.Tables[i].TotalHands()
	}
	res.Finished = c.clock.Now()

	c.logger.Debug("batch finished",
		"hands", res.TotalHands, "elapsed", res.Finished.Sub(res.Started))
	return res, nil
}

// runUnit plays one single-player session on its own RNG stream.
func (c *Controller) runUnit(index int) (session.Result, error) {
	d := deck.New(randutil.ForUnit(c.cfg.Seed, index))
	engine, err := game.New(d, game.Config{
		Strategy:         c.cfg.Strategy,
		Main:             c.cfg.Main,
		Bonus:            c.cfg.Bonus,
		DealerDiscards:   c.cfg.DealerDiscards,
		TrackComposition: c.cfg.TrackComposition,
	})
	if err != nil {
		return session.Result{}, fmt.Errorf("unit %d: %w", index, err)
	}

	cfg := c.cfg.Session
	cfg.Index = index
	s, err := session.New(engine, cfg)
	if err != nil {
		return session.Result{}, fmt.Errorf("unit %d: %w", index, err)
	}
	return s.Run()
}

// runTableUnit plays one table session on its own RNG stream. Every
// seat uses the shared strategy.
func (c *Controller) runTableUnit(index int) (session.TableResult, error) {
	strats := make([]strategy.Strategy, c.cfg.Seats)
	for i := range strats {
		strats[i] = c.cfg.Strategy
	}

	d := deck.New(randutil.ForUnit(c.cfg.Seed, index))
	t, err := session.NewTable(d, session.TableConfig{
		Index:          index,
		Strategies:     strats,
		Main:           c.cfg.Main,
		Bonus:          c.cfg.Bonus,
		DealerDiscards: c.cfg.DealerDiscards,
		Seat:           c.cfg.Session,
	})
	if err != nil {
		return session.TableResult{}, fmt.Errorf("unit %d: %w", index, err)
	}
	return t.Run()
}
