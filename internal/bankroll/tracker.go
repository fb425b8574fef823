// Package bankroll tracks a session's running balance, high-water mark
// and drawdown.
package bankroll

import "fmt"

// Tracker accumulates signed hand results against a starting balance.
// Peak is monotonically non-decreasing; max drawdown is the largest
// peak-to-trough decline seen at any update, together with the peak it
// was measured from so it can be expressed as a percentage of that peak
// rather than the all-time high.
type Tracker struct {
	start        float64
	balance      float64
	peak         float64
	maxDrawdown  float64
	drawdownPeak float64

	recordHistory bool
	history       []float64
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithHistory enables per-transaction balance recording. Disabled by
// default to bound memory on large runs.
func WithHistory() Option {
	return func(t *Tracker) { t.recordHistory = true }
}

// New creates a tracker. Fails if the starting balance is negative.
func New(start float64, opts ...Option) (*Tracker, error) {
	if start < 0 {
		return nil, fmt.Errorf("bankroll: starting balance %.2f is negative", start)
	}
	t := &Tracker{start: start, balance: start, peak: start, drawdownPeak: start}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Apply adds a signed amount to the balance and updates peak and
// drawdown.
func (t *Tracker) Apply(amount float64) {
	t.balance += amount
	if t.balance > t.peak {
		t.peak = t.balance
	}
	if dd := t.peak - t.balance; dd > t.maxDrawdown {
		t.maxDrawdown = dd
		t.drawdownPeak = t.peak
	}
	if t.recordHistory {
		t.history = append(t.history, t.balance)
	}
}

// Start returns the starting balance.
func (t *Tracker) Start() float64 { return t.start }

// Balance returns the current balance.
func (t *Tracker) Balance() float64 { return t.balance }

// Peak returns the all-time high-water mark.
func (t *Tracker) Peak() float64 { return t.peak }

// Profit returns balance minus starting balance.
func (t *Tracker) Profit() float64 { return t.balance - t.start }

// MaxDrawdown returns the largest peak-to-trough decline observed.
func (t *Tracker) MaxDrawdown() float64 { return t.maxDrawdown }

// MaxDrawdownPct returns the max drawdown as a fraction of the peak it
// was measured from. Zero when no drawdown has occurred.
func (t *Tracker) MaxDrawdownPct() float64 {
	if t.maxDrawdown == 0 || t.drawdownPeak == 0 {
		return 0
	}
	return t.maxDrawdown / t.drawdownPeak
}

// History returns recorded balances, nil unless WithHistory was set.
func (t *Tracker) History() []float64 { return t.history }
