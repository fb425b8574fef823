// Package statistics aggregates per-session results into summary
// figures for reporting.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/letitride/internal/evaluator"
	"github.com/lox/letitride/internal/session"
)

// Summary accumulates per-session profits and counters across a batch.
// Sum and sum-of-squares drive the moment statistics; the raw values
// are retained for median and percentile queries.
type Summary struct {
	Sessions   int
	SumProfit  float64
	SumProfit2 float64
	Values     []float64

	TotalHands     int
	TotalDrawdown  float64
	WorstDrawdown  float64
	FinalBankrolls float64

	StopReasons [5]int
	RankCounts  [evaluator.FiveCardRankCount]int
}

// Add incorporates one finished session into the summary.
func (s *Summary) Add(res session.Result) {
	p := res.Profit
	s.Sessions++
	s.SumProfit += p
	s.SumProfit2 += p * p
	s.Values = append(s.Values, p)

	s.TotalHands += res.HandsPlayed
	s.TotalDrawdown += res.MaxDrawdown
	if res.MaxDrawdown > s.WorstDrawdown {
		s.WorstDrawdown = res.MaxDrawdown
	}
	s.FinalBankrolls += res.FinalBankroll

	s.StopReasons[res.StopReason]++
	for rank, n := range res.FinalRankCounts {
		s.RankCounts[rank] += n
	}
}

// AddTable incorporates every seat of a table session.
func (s *Summary) AddTable(res session.TableResult) {
	for _, seat := range res.Seats {
		s.Add(seat.Result)
	}
}

// Mean returns the arithmetic mean profit per session.
func (s *Summary) Mean() float64 {
	if s.Sessions == 0 {
		return 0
	}
	return s.SumProfit / float64(s.Sessions)
}

// Variance returns the sample variance of session profits.
func (s *Summary) Variance() float64 {
	if s.Sessions < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumProfit2 - float64(s.Sessions)*mean*mean) / float64(s.Sessions-1)
}

// StdDev returns the sample standard deviation of session profits.
func (s *Summary) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *Summary) StdError() float64 {
	if s.Sessions == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Sessions))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
// session profit.
func (s *Summary) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median session profit.
func (s *Summary) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sortedValues()
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the session profit at percentile p (0.0 to 1.0),
// linearly interpolated.
func (s *Summary) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sortedValues()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func (s *Summary) sortedValues() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// RuinProbability returns the share of sessions that stopped because
// the bankroll could not cover the next stake.
func (s *Summary) RuinProbability() float64 {
	if s.Sessions == 0 {
		return 0
	}
	return float64(s.StopReasons[session.StopInsufficientFunds]) / float64(s.Sessions)
}

// WinRate returns the share of sessions that finished in profit.
func (s *Summary) WinRate() float64 {
	if s.Sessions == 0 {
		return 0
	}
	winners := 0
	for _, p := range s.Values {
		if p > 0 {
			winners++
		}
	}
	return float64(winners) / float64(s.Sessions)
}

// MeanHandsPerSession returns the average number of hands played.
func (s *Summary) MeanHandsPerSession() float64 {
	if s.Sessions == 0 {
		return 0
	}
	return float64(s.TotalHands) / float64(s.Sessions)
}

// MeanDrawdown returns the average per-session max drawdown.
func (s *Summary) MeanDrawdown() float64 {
	if s.Sessions == 0 {
		return 0
	}
	return s.TotalDrawdown / float64(s.Sessions)
}

// RankFrequency returns how often the given final rank occurred, as a
// fraction of all hands played.
func (s *Summary) RankFrequency(rank evaluator.FiveCardRank) float64 {
	if s.TotalHands == 0 {
		return 0
	}
	return float64(s.RankCounts[rank]) / float64(s.TotalHands)
}

// Validate checks internal consistency of the accumulated figures.
func (s *Summary) Validate() error {
	if s.Sessions <= 0 {
		return fmt.Errorf("statistics: no sessions recorded")
	}
	if len(s.Values) != s.Sessions {
		return fmt.Errorf("statistics: %d values for %d sessions", len(s.Values), s.Sessions)
	}

	stops := 0
	for _, n := range s.StopReasons {
		stops += n
	}
	if stops != s.Sessions {
		return fmt.Errorf("statistics: stop reasons total %d does not match %d sessions", stops, s.Sessions)
	}

	ranks := 0
	for _, n := range s.RankCounts {
		ranks += n
	}
	if ranks != s.TotalHands {
		return fmt.Errorf("statistics: rank tally %d does not match %d hands", ranks, s.TotalHands)
	}
	return nil
}
