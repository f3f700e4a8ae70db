package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack-cli/internal/display"
	"github.com/lox/blackjack-cli/internal/game"
)

// BridgeOption configures a Bridge
type BridgeOption func(*Bridge)

// WithClock sets the clock used for pacing
func WithClock(clock quartz.Clock) BridgeOption {
	return func(b *Bridge) { b.clock = clock }
}

// WithDelays sets the pause before each dealer card and after a reshuffle
func WithDelays(dealer, reshuffle time.Duration) BridgeOption {
	return func(b *Bridge) {
		b.dealerDelay = dealer
		b.reshuffleDelay = reshuffle
	}
}

// Bridge connects a session to the TUI model. It implements game.Terminal
// on the session goroutine and talks to the model only through messages.
type Bridge struct {
	tui            *TUIModel
	send           func(tea.Msg)
	formatter      *display.Formatter
	status         Status
	clock          quartz.Clock
	dealerDelay    time.Duration
	reshuffleDelay time.Duration
	logger         *log.Logger
}

var _ game.Terminal = (*Bridge)(nil)

// NewBridge creates a bridge. send is normally (*tea.Program).Send.
func NewBridge(tui *TUIModel, send func(tea.Msg), formatter *display.Formatter, logger *log.Logger, opts ...BridgeOption) *Bridge {
	b := &Bridge{
		tui:       tui,
		send:      send,
		formatter: formatter,
		clock:     quartz.NewReal(),
		logger:    logger.WithPrefix("bridge"),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// RequestBet asks until a bet between 1 and chips is entered
func (b *Bridge) RequestBet(chips int) (int, error) {
	b.status.Chips = chips
	b.send(StatusMsg{Status: b.status})

	for {
		input, err := b.ask(fmt.Sprintf("You have %d chips. Place your bet (1-%d):", chips, chips))
		if err != nil {
			return 0, err
		}

		bet, err := game.ParseBet(input, chips)
		if err != nil {
			b.complain(err)
			continue
		}
		return bet, nil
	}
}

// Decide asks until the player chooses to hit or stand
func (b *Bridge) Decide(view game.TurnView) (game.Decision, error) {
	for {
		input, err := b.ask(b.formatter.FormatTurn(view) + "\nHit or stand? (h/s)")
		if err != nil {
			return game.Stand, err
		}

		decision, err := game.ParseDecision(input)
		if err != nil {
			b.complain(err)
			continue
		}
		return decision, nil
	}
}

// RequestContinue asks until the player answers yes or no
func (b *Bridge) RequestContinue(chips int) (bool, error) {
	for {
		input, err := b.ask("Play another round? (y/n)")
		if err != nil {
			return false, err
		}

		again, err := game.ParseContinue(input)
		if err != nil {
			b.complain(err)
			continue
		}
		return again, nil
	}
}

// OnEvent logs the event and refreshes the sidebar
func (b *Bridge) OnEvent(event game.Event) {
	switch e := event.(type) {
	case game.RoundStartEvent:
		b.status.Round++
		b.status.Bet = e.Bet
		b.status.Chips = e.Chips
		b.status.PlayerHand = ""
		b.status.DealerHand = ""
		b.send(LogMsg{Lines: []string{""}})
	case game.ReshuffleEvent:
		b.status.ShoeCount = e.Cards
	case game.DealEvent:
		if !e.Reshuffled {
			b.status.ShoeCount = e.ShoeBefore
		}
		b.status.ShoeCount -= 4
		b.status.PlayerHand = b.formatter.FormatCards(e.PlayerCards, 0)
		b.status.DealerHand = b.formatter.FormatCards(e.DealerCards, e.DealerHidden)
	case game.CardDrawnEvent:
		if e.Dealer {
			b.pause(b.dealerDelay)
			b.status.DealerHand = b.formatter.FormatCards(e.Cards, 0)
		} else {
			b.status.PlayerHand = b.formatter.FormatCards(e.Cards, 0)
		}
		b.status.ShoeCount--
	case game.DealerRevealEvent:
		b.status.DealerHand = b.formatter.FormatCards(e.Cards, 0)
	case game.DealerStandEvent:
		b.pause(b.dealerDelay)
	case game.RoundEndEvent:
		b.status.Bet = 0
		b.status.Chips = e.Result.ChipsAfter
		switch {
		case e.Result.Outcome.PlayerWins():
			b.status.Wins++
		case e.Result.Outcome == game.OutcomePush:
			b.status.Pushes++
		default:
			b.status.Losses++
		}
	case game.SessionEndEvent:
		b.status.Chips = e.Summary.FinalChips
	}

	b.send(LogMsg{Lines: b.formatter.Format(event)})
	b.send(StatusMsg{Status: b.status})

	if _, ok := event.(game.ReshuffleEvent); ok {
		b.pause(b.reshuffleDelay)
	}
}

// Finish shows a closing prompt, waits for one more line and quits the TUI
func (b *Bridge) Finish() {
	b.send(PromptMsg{Prompt: "Press Enter to leave the table"})
	b.tui.WaitForInput()
	b.tui.SendQuitSignal()
}

// ask shows a prompt and waits for a line. Quit commands and closing the
// TUI return game.ErrQuit.
func (b *Bridge) ask(prompt string) (string, error) {
	b.send(PromptMsg{Prompt: prompt})
	defer b.send(PromptMsg{})

	input, ok := b.tui.WaitForInput()
	if !ok || game.IsQuitCommand(input) {
		return "", game.ErrQuit
	}
	return input, nil
}

func (b *Bridge) complain(err error) {
	b.logger.Debug("Rejected input", "error", err)
	b.send(LogMsg{Lines: []string{b.formatter.Styles().Error.Render(err.Error())}})
}

func (b *Bridge) pause(d time.Duration) {
	if d <= 0 {
		return
	}
	timer := b.clock.NewTimer(d, "tui", "pause")
	select {
	case <-timer.C:
	case <-b.tui.Done():
		timer.Stop()
	}
}
