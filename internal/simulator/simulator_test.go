package simulator

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/game"
)

func testConfig() Config {
	return Config{
		Sessions: 8,
		Rounds:   50,
		Chips:    1000,
		Bet:      10,
		Strategy: "basic",
		Seed:     12345,
		Parallel: 4,
		Timeout:  30 * time.Second,
		Logger:   log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel}),
	}
}

func TestNew(t *testing.T) {
	sim, err := New(testConfig())
	require.NoError(t, err)
	assert.Equal(t, "basic", sim.strategy.Name())

	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"no sessions", func(c *Config) { c.Sessions = 0 }, "sessions must be at least 1"},
		{"no rounds", func(c *Config) { c.Rounds = 0 }, "rounds must be at least 1"},
		{"bet above chips", func(c *Config) { c.Bet = 5000 }, "exceeds balance"},
		{"unknown strategy", func(c *Config) { c.Strategy = "card-counter" }, "unknown strategy"},
		{"no decks", func(c *Config) { c.ShoeOptions = []deck.ShoeOption{deck.WithDecks(0)} }, "decks must be at least 1"},
		{"threshold above shoe", func(c *Config) {
			c.ShoeOptions = []deck.ShoeOption{deck.WithDecks(1), deck.WithReshuffleThreshold(52)}
		}, "below the shoe size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testConfig()
			tt.modify(&config)
			_, err := New(config)
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}

	t.Run("zero bet wraps ErrInvalidBet", func(t *testing.T) {
		config := testConfig()
		config.Bet = 0
		_, err := New(config)
		assert.ErrorIs(t, err, game.ErrInvalidBet)
	})
}

func TestRun(t *testing.T) {
	sim, err := New(testConfig())
	require.NoError(t, err)

	result, err := sim.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8, result.Sessions)
	stats := result.Stats
	require.NoError(t, stats.Validate())
	// 10 chip bets against 1000 chips cannot go broke in 50 rounds
	assert.Equal(t, 0, result.Bankrupt)
	assert.Equal(t, 8*50, stats.Rounds)
	assert.Equal(t, 8*50*10, stats.Wagered)
	assert.Equal(t, 8*1000+int(stats.SumNet), result.FinalChips)
}

func TestRunIsDeterministic(t *testing.T) {
	config := testConfig()
	first, err := mustNew(t, config).Run(context.Background())
	require.NoError(t, err)

	config.Parallel = 1
	second, err := mustNew(t, config).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.FinalChips, second.FinalChips)
	assert.Equal(t, first.Stats.Wins, second.Stats.Wins)
	assert.Equal(t, first.Stats.Pushes, second.Stats.Pushes)
	assert.Equal(t, first.Stats.Losses, second.Stats.Losses)
	assert.Equal(t, first.Reshuffles, second.Reshuffles)
}

func TestRunBankruptcy(t *testing.T) {
	config := testConfig()
	config.Chips = 20
	config.Bet = 20
	config.Rounds = 100000
	config.Strategy = "mimic"

	result, err := mustNew(t, config).Run(context.Background())
	require.NoError(t, err)

	// Betting everything each round against the house edge ends in ruin
	assert.Equal(t, config.Sessions, result.Bankrupt)
	assert.Equal(t, 0, result.FinalChips)
}

func TestRunWithShoeOptions(t *testing.T) {
	config := testConfig()
	config.Sessions = 2
	config.ShoeOptions = []deck.ShoeOption{deck.WithDecks(1)}

	result, err := mustNew(t, config).Run(context.Background())
	require.NoError(t, err)
	// A one deck shoe reshuffles below 17 cards, every few rounds
	assert.Greater(t, result.Reshuffles, 2)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mustNew(t, testConfig()).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteReport(t *testing.T) {
	result, err := mustNew(t, testConfig()).Run(context.Background())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, result.WriteReport(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, "basic", report.Strategy)
	assert.Equal(t, int64(12345), report.Seed)
	assert.Equal(t, 400, report.Rounds)
	assert.InDelta(t, 1.0, report.WinRate+report.PushRate+report.LossRate, 1e-9)
	assert.LessOrEqual(t, report.CI95Low, report.MeanNet)
	assert.GreaterOrEqual(t, report.CI95High, report.MeanNet)

	// Flat bets of 10 settle at -10, 0 or +10
	assert.Equal(t, -10.0, report.P5Net)
	assert.Equal(t, 10.0, report.P95Net)
	assert.GreaterOrEqual(t, report.MedianNet, -10.0)
	assert.LessOrEqual(t, report.MedianNet, 10.0)
}

func mustNew(t *testing.T, config Config) *Simulator {
	t.Helper()
	sim, err := New(config)
	require.NoError(t, err)
	return sim
}
