// Package statistics aggregates round results from simulated sessions.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjack-cli/internal/game"
)

// RoundResult is the part of a played round the statistics care about
type RoundResult struct {
	Bet     int
	Net     int // Chips won (positive) or lost (negative)
	Outcome game.Outcome
}

// FromRound converts an engine result
func FromRound(r *game.RoundResult) RoundResult {
	return RoundResult{Bet: r.Bet, Net: r.Net, Outcome: r.Outcome}
}

// Statistics tracks results in chips per round
type Statistics struct {
	Rounds  int
	Wagered int
	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // Store all values for median/percentile calculation

	Wins        int
	Pushes      int
	Losses      int
	PlayerBusts int
	DealerBusts int
}

// Add incorporates a new round result into the statistics
func (s *Statistics) Add(result RoundResult) {
	net := float64(result.Net)
	s.Rounds++
	s.Wagered += result.Bet
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, net)

	switch result.Outcome {
	case game.OutcomePlayerWin:
		s.Wins++
	case game.OutcomeDealerBust:
		s.Wins++
		s.DealerBusts++
	case game.OutcomePush:
		s.Pushes++
	case game.OutcomePlayerBust:
		s.Losses++
		s.PlayerBusts++
	default:
		s.Losses++
	}
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.Wagered += other.Wagered
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)
	s.Wins += other.Wins
	s.Pushes += other.Pushes
	s.Losses += other.Losses
	s.PlayerBusts += other.PlayerBusts
	s.DealerBusts += other.DealerBusts
}

// Mean returns the mean net chips per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// ReturnPerChip returns net chips per chip wagered. Negative means the house
// is winning.
func (s *Statistics) ReturnPerChip() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return s.SumNet / float64(s.Wagered)
}

// WinRate returns the fraction of rounds won
func (s *Statistics) WinRate() float64 { return s.rate(s.Wins) }

// PushRate returns the fraction of rounds pushed
func (s *Statistics) PushRate() float64 { return s.rate(s.Pushes) }

// LossRate returns the fraction of rounds lost
func (s *Statistics) LossRate() float64 { return s.rate(s.Losses) }

func (s *Statistics) rate(n int) float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(n) / float64(s.Rounds)
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks the counters agree with each other
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}

	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}

	if total := s.Wins + s.Pushes + s.Losses; total != s.Rounds {
		return fmt.Errorf("wins+pushes+losses (%d) does not match rounds count (%d)", total, s.Rounds)
	}

	if s.DealerBusts > s.Wins {
		return fmt.Errorf("dealer busts (%d) exceed wins (%d)", s.DealerBusts, s.Wins)
	}
	if s.PlayerBusts > s.Losses {
		return fmt.Errorf("player busts (%d) exceed losses (%d)", s.PlayerBusts, s.Losses)
	}

	return nil
}
