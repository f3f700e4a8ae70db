package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/blackjack-cli/internal/deck"
)

var (
	// ErrInvalidBet is returned for bets outside [1, chips] or non-numeric input
	ErrInvalidBet = errors.New("invalid bet")

	// ErrInvalidTurnCommand is returned for anything other than hit or stand
	ErrInvalidTurnCommand = errors.New("invalid turn command")

	// ErrInvalidAnswer is returned for anything other than yes or no
	ErrInvalidAnswer = errors.New("invalid answer")

	// ErrQuit is returned by a terminal when the user ends the session
	ErrQuit = errors.New("player quit")
)

// Decision is the player's choice on their turn
type Decision int

const (
	Hit Decision = iota
	Stand
)

// String returns the string representation of a decision
func (d Decision) String() string {
	switch d {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	default:
		return "unknown"
	}
}

// TurnView is the read-only state handed to a Decider on the player's turn
type TurnView struct {
	PlayerCards  []deck.Card
	PlayerScore  int
	PlayerSoft   bool
	DealerUpCard deck.Card
	Chips        int
	Bet          int
}

// Decider chooses hit or stand for the player's turn
type Decider interface {
	Decide(view TurnView) (Decision, error)
}

// DeciderFunc adapts a function to the Decider interface
type DeciderFunc func(view TurnView) (Decision, error)

// Decide calls f(view)
func (f DeciderFunc) Decide(view TurnView) (Decision, error) {
	return f(view)
}

// Terminal is the collaborator that supplies the player's inputs and displays
// what happens at the table. Every request blocks until answered. Inputs must
// be validated before they are returned; ErrQuit ends the session.
type Terminal interface {
	Decider
	EventSubscriber

	// RequestBet returns a bet in [1, chips]
	RequestBet(chips int) (int, error)

	// RequestContinue asks whether to play another round
	RequestContinue(chips int) (bool, error)
}

// ParseBet validates typed bet input against the chip balance
func ParseBet(input string, chips int) (int, error) {
	bet, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidBet, strings.TrimSpace(input))
	}
	if err := ValidateBet(bet, chips); err != nil {
		return 0, err
	}
	return bet, nil
}

// ParseDecision maps typed input onto a Decision
func ParseDecision(input string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "h", "hit":
		return Hit, nil
	case "s", "stand", "stick":
		return Stand, nil
	default:
		return 0, fmt.Errorf("%w: %q (use h or s)", ErrInvalidTurnCommand, strings.TrimSpace(input))
	}
}

// ParseContinue maps typed input onto a play-again answer
func ParseContinue(input string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q (use y or n)", ErrInvalidAnswer, strings.TrimSpace(input))
	}
}

// IsQuitCommand reports whether input asks to leave the table
func IsQuitCommand(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "q", "quit", "exit":
		return true
	}
	return false
}
