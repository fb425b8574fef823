package simulator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/letitride/internal/paytable"
	"github.com/lox/letitride/internal/session"
	"github.com/lox/letitride/internal/strategy"
)

func batchConfig(sessions, workers int) Config {
	return Config{
		Sessions: sessions,
		Workers:  workers,
		Seed:     42,
		Strategy: strategy.Basic{},
		Main:     paytable.Standard(),
		Session: session.Config{
			StartingBankroll: 1000,
			BaseBet:          5,
			MaxHands:         100,
		},
	}
}

func TestNewValidation(t *testing.T) {
	cfg := batchConfig(0, 1)
	_, err := New(cfg)
	assert.Error(t, err)

	cfg = batchConfig(10, 1)
	cfg.Strategy = nil
	_, err = New(cfg)
	assert.Error(t, err)

	cfg = batchConfig(10, 1)
	cfg.Main = nil
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestDeterministicAcrossWorkerCounts(t *testing.T) {
	run := func(workers int) []session.Result {
		c, err := New(batchConfig(20, workers))
		require.NoError(t, err)
		res, err := c.Run(context.Background())
		require.NoError(t, err)
		return res.Sessions
	}

	serial := run(1)
	parallel := run(4)
	assert.Equal(t, serial, parallel, "worker count must not affect results")
}

func TestResultsOrderedByUnitIndex(t *testing.T) {
	c, err := New(batchConfig(16, 8))
	require.NoError(t, err)

	res, err := c.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Sessions, 16)
	for i, sr := range res.Sessions {
		assert.Equal(t, i, sr.Index)
		assert.Equal(t, 100, sr.HandsPlayed)
	}
	assert.Equal(t, 1600, res.TotalHands)
}

func TestProgressReachesTotal(t *testing.T) {
	var mu sync.Mutex
	var max int

	cfg := batchConfig(12, 4)
	cfg.Progress = func(completed, total int) {
		assert.Equal(t, 12, total)
		mu.Lock()
		if completed > max {
			max = completed
		}
		mu.Unlock()
	}

	c, err := New(cfg)
	require.NoError(t, err)
	_, err = c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 12, max)
}

func TestUnitErrorAbortsBatch(t *testing.T) {
	cfg := batchConfig(8, 2)
	cfg.Session.BaseBet = 0

	c, err := New(cfg)
	require.NoError(t, err)

	_, err = c.Run(context.Background())
	assert.Error(t, err)
}

func TestTableMode(t *testing.T) {
	cfg := batchConfig(5, 2)
	cfg.Seats = 6
	cfg.Session.MaxHands = 40

	c, err := New(cfg)
	require.NoError(t, err)

	res, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Nil(t, res.Sessions)
	require.Len(t, res.Tables, 5)
	for i, tr := range res.Tables {
		assert.Equal(t, i, tr.Index)
		require.Len(t, tr.Seats, 6)
		for _, seat := range tr.Seats {
			assert.Equal(t, tr.HandsDealt, seat.HandsPlayed)
		}
	}
	assert.Equal(t, 5*6*40, res.TotalHands)
}

func TestTableModeDeterministic(t *testing.T) {
	run := func(workers int) []session.TableResult {
		cfg := batchConfig(6, workers)
		cfg.Seats = 4
		cfg.Session.MaxHands = 30
		c, err := New(cfg)
		require.NoError(t, err)
		res, err := c.Run(context.Background())
		require.NoError(t, err)
		return res.Tables
	}

	assert.Equal(t, run(1), run(3))
}

func TestTimestampsFromClock(t *testing.T) {
	clock := quartz.NewMock(t)
	start := clock.Now()

	cfg := batchConfig(2, 1)
	cfg.Clock = clock

	c, err := New(cfg)
	require.NoError(t, err)
	res, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, start, res.Started)
	assert.Equal(t, start, res.Finished, "mock clock does not advance on its own")
	assert.IsType(t, time.Time{}, res.Finished)
}

func TestSummaryAggregation(t *testing.T) {
	c, err := New(batchConfig(10, 4))
	require.NoError(t, err)

	res, err := c.Run(context.Background())
	require.NoError(t, err)

	summary := res.Summary()
	require.NoError(t, summary.Validate())
	assert.Equal(t, 10, summary.Sessions)
	assert.Equal(t, res.TotalHands, summary.TotalHands)
	for _, sr := range res.Sessions {
		assert.Equal(t, session.StopMaxHands, sr.StopReason)
	}
}
