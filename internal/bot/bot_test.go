package bot

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack-cli/internal/game"
)

func TestBotBetting(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	b := NewBot(BasicStrategy{}, 50, logger)

	bet, err := b.RequestBet(1000)
	require.NoError(t, err)
	assert.Equal(t, 50, bet)

	bet, err = b.RequestBet(20)
	require.NoError(t, err)
	assert.Equal(t, 20, bet, "bets what is left when short")

	again, err := b.RequestContinue(20)
	require.NoError(t, err)
	assert.True(t, again)
}

func TestBotPlaysSessions(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})

	for _, name := range StrategyNames() {
		t.Run(name, func(t *testing.T) {
			strategy, err := StrategyByName(name)
			require.NoError(t, err)

			engine, _ := game.NewTestEngine(game.WithSeed(99), game.WithChips(500))
			b := NewBot(strategy, 10, logger)
			summary, err := game.NewSession(engine, b, logger, game.WithMaxRounds(200)).Run()
			require.NoError(t, err)

			assert.Equal(t, summary.Rounds, summary.Wins+summary.Pushes+summary.Losses)
			if !summary.Bankrupt {
				assert.Equal(t, 200, summary.Rounds)
			}
			assert.Equal(t, engine.Player().Chips, summary.FinalChips)
		})
	}
}

func TestBotCountsReshuffles(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	b := NewBot(DealerMimic{}, 1, logger)

	engine, _ := game.NewTestEngine(game.WithSeed(3), game.WithChips(10000))
	_, err := game.NewSession(engine, b, logger, game.WithMaxRounds(150)).Run()
	require.NoError(t, err)

	// 150 rounds deal at least 600 cards, well past the 208 dealt before a reshuffle
	assert.Positive(t, b.Reshuffles())
}
