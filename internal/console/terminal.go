// Package console implements a line-based terminal for playing at the table
// from a plain shell.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack-cli/internal/display"
	"github.com/lox/blackjack-cli/internal/game"
)

// Option configures a Terminal
type Option func(*Terminal)

// WithClock sets the clock used for pacing
func WithClock(clock quartz.Clock) Option {
	return func(t *Terminal) { t.clock = clock }
}

// WithDelays sets the pause before each dealer card and after a reshuffle
func WithDelays(dealer, reshuffle time.Duration) Option {
	return func(t *Terminal) {
		t.dealerDelay = dealer
		t.reshuffleDelay = reshuffle
	}
}

// Terminal reads answers line by line and prints table events as they happen
type Terminal struct {
	scanner        *bufio.Scanner
	out            io.Writer
	formatter      *display.Formatter
	clock          quartz.Clock
	dealerDelay    time.Duration
	reshuffleDelay time.Duration
	logger         *log.Logger
}

var _ game.Terminal = (*Terminal)(nil)

// New creates a console terminal. Without options it does not pause.
func New(in io.Reader, out io.Writer, formatter *display.Formatter, logger *log.Logger, opts ...Option) *Terminal {
	t := &Terminal{
		scanner:   bufio.NewScanner(in),
		out:       out,
		formatter: formatter,
		clock:     quartz.NewReal(),
		logger:    logger.WithPrefix("console"),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// RequestBet prompts until a bet between 1 and chips is entered
func (t *Terminal) RequestBet(chips int) (int, error) {
	prompt := fmt.Sprintf("You have %d chips. Place your bet (1-%d, q to quit): ", chips, chips)
	for {
		input, err := t.ask(prompt)
		if err != nil {
			return 0, err
		}

		bet, err := game.ParseBet(input, chips)
		if err != nil {
			t.complain(err)
			continue
		}
		return bet, nil
	}
}

// Decide prompts until the player chooses to hit or stand
func (t *Terminal) Decide(view game.TurnView) (game.Decision, error) {
	for {
		input, err := t.ask("Hit or stand? (h/s): ")
		if err != nil {
			return game.Stand, err
		}

		decision, err := game.ParseDecision(input)
		if err != nil {
			t.complain(err)
			continue
		}
		t.logger.Debug("Decision", "decision", decision, "score", view.PlayerScore, "dealer", view.DealerUpCard)
		return decision, nil
	}
}

// RequestContinue prompts until the player answers yes or no
func (t *Terminal) RequestContinue(chips int) (bool, error) {
	for {
		input, err := t.ask("Play another round? (y/n): ")
		if err != nil {
			return false, err
		}

		again, err := game.ParseContinue(input)
		if err != nil {
			t.complain(err)
			continue
		}
		return again, nil
	}
}

// OnEvent prints an event, pausing where the table would
func (t *Terminal) OnEvent(event game.Event) {
	switch e := event.(type) {
	case game.RoundStartEvent:
		fmt.Fprintln(t.out)
	case game.CardDrawnEvent:
		if e.Dealer {
			t.pause(t.dealerDelay)
		}
	case game.DealerStandEvent:
		t.pause(t.dealerDelay)
	}

	for _, line := range t.formatter.Format(event) {
		fmt.Fprintln(t.out, line)
	}

	if _, ok := event.(game.ReshuffleEvent); ok {
		t.pause(t.reshuffleDelay)
	}
}

// ask prints a prompt and reads one line. End of input and quit commands
// return game.ErrQuit.
func (t *Terminal) ask(prompt string) (string, error) {
	fmt.Fprint(t.out, t.formatter.Styles().Prompt.Render(prompt))
	if !t.scanner.Scan() {
		fmt.Fprintln(t.out)
		if err := t.scanner.Err(); err != nil {
			t.logger.Error("Reading input failed", "error", err)
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", game.ErrQuit
	}

	input := strings.TrimSpace(t.scanner.Text())
	if game.IsQuitCommand(input) {
		return "", game.ErrQuit
	}
	return input, nil
}

func (t *Terminal) complain(err error) {
	t.logger.Debug("Rejected input", "error", err)
	fmt.Fprintln(t.out, t.formatter.Styles().Error.Render(capitalize(err.Error())))
}

func (t *Terminal) pause(d time.Duration) {
	if d <= 0 {
		return
	}
	timer := t.clock.NewTimer(d, "console", "pause")
	<-timer.C
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
