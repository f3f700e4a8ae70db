package game

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/gameid"
)

// SessionSummary describes a finished session
type SessionSummary struct {
	ID            string
	Rounds        int
	Wins          int
	Losses        int
	Pushes        int
	StartingChips int
	FinalChips    int
	Bankrupt      bool
	Quit          bool
}

// Net returns the chip change over the session
func (s SessionSummary) Net() int {
	return s.FinalChips - s.StartingChips
}

// SessionOption configures a Session during creation
type SessionOption func(*Session)

// WithMaxRounds stops the session after n rounds (0 plays until the player
// leaves or runs out of chips)
func WithMaxRounds(n int) SessionOption {
	return func(s *Session) { s.maxRounds = n }
}

// Session repeats rounds until the player stops or goes broke
type Session struct {
	id        string
	engine    *Engine
	terminal  Terminal
	maxRounds int
	logger    *log.Logger
}

// NewSession seats a terminal at the engine's table. The terminal is
// subscribed to the engine's events.
func NewSession(engine *Engine, terminal Terminal, logger *log.Logger, opts ...SessionOption) *Session {
	s := &Session{
		id:       gameid.New(gameid.Session),
		engine:   engine,
		terminal: terminal,
		logger:   logger.WithPrefix("session"),
	}

	for _, opt := range opts {
		opt(s)
	}

	engine.EventBus().Subscribe(terminal)
	return s
}

// ID returns the session identifier
func (s *Session) ID() string { return s.id }

// Run plays rounds until the player quits, declines another round, runs out
// of chips, or the round limit is reached. Only engine failures are returned
// as errors; ErrQuit from the terminal ends the session normally.
func (s *Session) Run() (*SessionSummary, error) {
	player := s.engine.Player()
	summary := &SessionSummary{
		ID:            s.id,
		StartingChips: player.Chips,
	}
	s.logger.Info("Session started", "session", s.id, "chips", player.Chips)

	defer s.engine.EventBus().Unsubscribe(s.terminal)

	for {
		if !player.CanPlay() {
			summary.Bankrupt = true
			break
		}
		if s.maxRounds > 0 && summary.Rounds >= s.maxRounds {
			break
		}

		bet, err := s.terminal.RequestBet(player.Chips)
		if errors.Is(err, ErrQuit) {
			summary.Quit = true
			break
		}
		if err != nil {
			return nil, err
		}

		result, err := s.engine.PlayRound(bet, s.terminal)
		if errors.Is(err, ErrQuit) {
			// The stake is forfeited when the player walks away mid-round
			summary.Rounds++
			summary.Losses++
			summary.Quit = true
			break
		}
		if err != nil {
			s.logger.Error("Round failed", "session", s.id, "error", err)
			return nil, err
		}

		summary.Rounds++
		switch {
		case result.Outcome.PlayerWins():
			summary.Wins++
		case result.Outcome == OutcomePush:
			summary.Pushes++
		default:
			summary.Losses++
		}

		if !player.CanPlay() {
			continue
		}
		if s.maxRounds > 0 && summary.Rounds >= s.maxRounds {
			continue
		}

		again, err := s.terminal.RequestContinue(player.Chips)
		if errors.Is(err, ErrQuit) || (err == nil && !again) {
			summary.Quit = true
			break
		}
		if err != nil {
			return nil, err
		}
	}

	summary.FinalChips = player.Chips
	s.logger.Info("Session ended",
		"session", s.id,
		"rounds", summary.Rounds,
		"chips", summary.FinalChips,
		"bankrupt", summary.Bankrupt)
	s.engine.EventBus().Publish(SessionEndEvent{Summary: *summary, timestamp: s.engine.clock.Now()})

	return summary, nil
}
