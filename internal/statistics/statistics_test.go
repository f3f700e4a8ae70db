package statistics

import (
	"math"
	"testing"

	"github.com/lox/blackjack-cli/internal/game"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if stats.WinRate() != 0 || stats.ReturnPerChip() != 0 {
		t.Errorf("Expected zero rates for empty stats")
	}
	if err := stats.Validate(); err == nil {
		t.Errorf("Expected empty stats to fail validation")
	}
}

func TestStatistics_Add(t *testing.T) {
	stats := &Statistics{}
	stats.Add(RoundResult{Bet: 10, Net: 10, Outcome: game.OutcomePlayerWin})
	stats.Add(RoundResult{Bet: 10, Net: 10, Outcome: game.OutcomeDealerBust})
	stats.Add(RoundResult{Bet: 10, Net: 0, Outcome: game.OutcomePush})
	stats.Add(RoundResult{Bet: 10, Net: -10, Outcome: game.OutcomePlayerBust})
	stats.Add(RoundResult{Bet: 10, Net: -10, Outcome: game.OutcomeDealerWin})

	if stats.Rounds != 5 || stats.Wagered != 50 {
		t.Fatalf("Expected 5 rounds and 50 wagered, got %d and %d", stats.Rounds, stats.Wagered)
	}
	if stats.Wins != 2 || stats.Pushes != 1 || stats.Losses != 2 {
		t.Errorf("Unexpected tally W%d P%d L%d", stats.Wins, stats.Pushes, stats.Losses)
	}
	if stats.DealerBusts != 1 || stats.PlayerBusts != 1 {
		t.Errorf("Unexpected busts dealer=%d player=%d", stats.DealerBusts, stats.PlayerBusts)
	}
	if stats.Mean() != 0 {
		t.Errorf("Expected mean 0, got %f", stats.Mean())
	}
	// values 10 10 0 -10 -10: sum of squares 400, variance 400/4
	if math.Abs(stats.Variance()-100) > 1e-9 {
		t.Errorf("Expected variance 100, got %f", stats.Variance())
	}
	if math.Abs(stats.WinRate()-0.4) > 1e-9 {
		t.Errorf("Expected win rate 0.4, got %f", stats.WinRate())
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}

	lo, hi := stats.ConfidenceInterval95()
	margin := 1.96 * 10 / math.Sqrt(5)
	if math.Abs(lo+margin) > 1e-9 || math.Abs(hi-margin) > 1e-9 {
		t.Errorf("Unexpected confidence interval [%f, %f]", lo, hi)
	}
}

func TestStatistics_Merge(t *testing.T) {
	a := &Statistics{}
	a.Add(RoundResult{Bet: 20, Net: 20, Outcome: game.OutcomePlayerWin})
	b := &Statistics{}
	b.Add(RoundResult{Bet: 10, Net: -10, Outcome: game.OutcomeDealerWin})
	b.Add(RoundResult{Bet: 10, Net: -10, Outcome: game.OutcomePlayerBust})

	a.Merge(b)

	if a.Rounds != 3 || len(a.Values) != 3 {
		t.Fatalf("Expected 3 merged rounds, got %d", a.Rounds)
	}
	if a.ReturnPerChip() != 0 {
		t.Errorf("Expected even return, got %f", a.ReturnPerChip())
	}
	if a.Median() != -10 {
		t.Errorf("Expected median -10, got %f", a.Median())
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestStatistics_Percentile(t *testing.T) {
	stats := &Statistics{}
	for _, net := range []int{-10, -10, 0, 10, 20} {
		stats.Add(RoundResult{Bet: 10, Net: net, Outcome: game.OutcomePush})
	}

	if got := stats.Percentile(0); got != -10 {
		t.Errorf("Expected p0 -10, got %f", got)
	}
	if got := stats.Percentile(1); got != 20 {
		t.Errorf("Expected p100 20, got %f", got)
	}
	if got := stats.Percentile(0.875); got != 15 {
		t.Errorf("Expected p87.5 15, got %f", got)
	}
}

func TestStatistics_ValidateCatchesMismatch(t *testing.T) {
	stats := &Statistics{}
	stats.Add(RoundResult{Bet: 10, Net: 10, Outcome: game.OutcomePlayerWin})
	stats.Losses++

	if err := stats.Validate(); err == nil {
		t.Error("Expected tally mismatch to fail validation")
	}
}

func TestFromRound(t *testing.T) {
	r := FromRound(&game.RoundResult{Bet: 25, Net: -25, Outcome: game.OutcomeDealerWin})
	if r.Bet != 25 || r.Net != -25 || r.Outcome != game.OutcomeDealerWin {
		t.Errorf("Unexpected conversion %+v", r)
	}
}
