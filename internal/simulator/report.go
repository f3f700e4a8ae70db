package simulator

import (
	"github.com/lox/blackjack-cli/internal/fileutil"
)

// Report is the JSON form of a Result
type Report struct {
	Strategy      string  `json:"strategy"`
	Seed          int64   `json:"seed"`
	Sessions      int     `json:"sessions"`
	Bankrupt      int     `json:"bankrupt"`
	Rounds        int     `json:"rounds"`
	Wagered       int     `json:"wagered"`
	Reshuffles    int     `json:"reshuffles"`
	WinRate       float64 `json:"win_rate"`
	PushRate      float64 `json:"push_rate"`
	LossRate      float64 `json:"loss_rate"`
	PlayerBusts   int     `json:"player_busts"`
	DealerBusts   int     `json:"dealer_busts"`
	MeanNet       float64 `json:"mean_net"`
	StdDev        float64 `json:"std_dev"`
	MedianNet     float64 `json:"median_net"`
	P5Net         float64 `json:"p5_net"`
	P95Net        float64 `json:"p95_net"`
	CI95Low       float64 `json:"ci95_low"`
	CI95High      float64 `json:"ci95_high"`
	ReturnPerChip float64 `json:"return_per_chip"`
	DurationMs    int64   `json:"duration_ms"`
}

// Report summarises the result for output
func (r *Result) Report() Report {
	lo, hi := r.Stats.ConfidenceInterval95()
	return Report{
		Strategy:      r.Strategy,
		Seed:          r.Seed,
		Sessions:      r.Sessions,
		Bankrupt:      r.Bankrupt,
		Rounds:        r.Stats.Rounds,
		Wagered:       r.Stats.Wagered,
		Reshuffles:    r.Reshuffles,
		WinRate:       r.Stats.WinRate(),
		PushRate:      r.Stats.PushRate(),
		LossRate:      r.Stats.LossRate(),
		PlayerBusts:   r.Stats.PlayerBusts,
		DealerBusts:   r.Stats.DealerBusts,
		MeanNet:       r.Stats.Mean(),
		StdDev:        r.Stats.StdDev(),
		MedianNet:     r.Stats.Median(),
		P5Net:         r.Stats.Percentile(0.05),
		P95Net:        r.Stats.Percentile(0.95),
		CI95Low:       lo,
		CI95High:      hi,
		ReturnPerChip: r.Stats.ReturnPerChip(),
		DurationMs:    r.Duration.Milliseconds(),
	}
}

// WriteReport writes the JSON report to filename atomically
func (r *Result) WriteReport(filename string) error {
	return fileutil.WriteJSON(filename, r.Report(), 0o644)
}
