// Package bot provides automated players for simulations and demos.
package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/game"
)

// Bot is a game.Terminal that never needs a human. It bets a flat amount,
// plays a Strategy and always accepts another round, so sessions end when
// the bot goes broke or the round limit is reached.
type Bot struct {
	strategy   Strategy
	bet        int
	reshuffles int
	logger     *log.Logger
}

var _ game.Terminal = (*Bot)(nil)

// NewBot creates a bot betting bet chips per round
func NewBot(strategy Strategy, bet int, logger *log.Logger) *Bot {
	return &Bot{
		strategy: strategy,
		bet:      bet,
		logger:   logger.WithPrefix("bot"),
	}
}

// RequestBet bets the flat amount, or everything left when short
func (b *Bot) RequestBet(chips int) (int, error) {
	return min(b.bet, chips), nil
}

// Decide asks the strategy
func (b *Bot) Decide(view game.TurnView) (game.Decision, error) {
	decision := b.strategy.Decide(view)
	b.logger.Debug("Bot decision",
		"strategy", b.strategy.Name(),
		"score", view.PlayerScore,
		"soft", view.PlayerSoft,
		"up", view.DealerUpCard,
		"decision", decision)
	return decision, nil
}

// RequestContinue always plays on
func (b *Bot) RequestContinue(chips int) (bool, error) {
	return true, nil
}

// OnEvent logs round results
func (b *Bot) OnEvent(event game.Event) {
	switch e := event.(type) {
	case game.ReshuffleEvent:
		b.reshuffles++
	case game.RoundEndEvent:
		b.logger.Debug("Round finished",
			"round", e.Result.ID,
			"outcome", e.Result.Outcome,
			"net", e.Result.Net,
			"chips", e.Result.ChipsAfter)
	}
}

// Reshuffles returns how many reshuffles the bot has seen
func (b *Bot) Reshuffles() int {
	return b.reshuffles
}

// Strategy returns the bot's strategy
func (b *Bot) Strategy() Strategy {
	return b.strategy
}
