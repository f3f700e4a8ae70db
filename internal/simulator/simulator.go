// Package simulator plays many automated sessions in parallel and aggregates
// the results.
package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack-cli/internal/bot"
	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/game"
	"github.com/lox/blackjack-cli/internal/randutil"
	"github.com/lox/blackjack-cli/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Sessions    int
	Rounds      int // Round limit per session
	Chips       int
	Bet         int
	Strategy    string
	Seed        int64
	Parallel    int // Sessions played at once, defaults to GOMAXPROCS
	ShoeOptions []deck.ShoeOption
	Timeout     time.Duration
	Logger      *log.Logger
}

// Result is the aggregate of every simulated session
type Result struct {
	Strategy   string
	Seed       int64
	Sessions   int
	Bankrupt   int
	FinalChips int
	Reshuffles int
	Duration   time.Duration
	Stats      *statistics.Statistics
}

// Simulator runs blackjack sessions with bot players
type Simulator struct {
	config   Config
	strategy bot.Strategy
}

// New creates a new simulator with the given configuration
func New(config Config) (*Simulator, error) {
	if config.Sessions < 1 {
		return nil, fmt.Errorf("sessions must be at least 1, got %d", config.Sessions)
	}
	if config.Rounds < 1 {
		return nil, fmt.Errorf("rounds must be at least 1, got %d", config.Rounds)
	}
	if err := game.ValidateBet(config.Bet, config.Chips); err != nil {
		return nil, fmt.Errorf("bet: %w", err)
	}

	if err := deck.NewShoe(randutil.New(config.Seed), config.ShoeOptions...).Validate(); err != nil {
		return nil, fmt.Errorf("shoe: %w", err)
	}

	strategy, err := bot.StrategyByName(config.Strategy)
	if err != nil {
		return nil, err
	}

	if config.Parallel < 1 {
		config.Parallel = runtime.GOMAXPROCS(0)
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}

	return &Simulator{config: config, strategy: strategy}, nil
}

// Run plays every session and returns the combined statistics. Each session
// runs on one goroutine with its own shoe seeded from the base seed, so a
// seed always produces the same result however many run in parallel.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	result := &Result{
		Strategy: s.strategy.Name(),
		Seed:     s.config.Seed,
		Stats:    &statistics.Statistics{},
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Parallel)

	for i := range s.config.Sessions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			out, err := s.playSession(i)
			if err != nil {
				return fmt.Errorf("session %d (seed %d): %w", i, randutil.Derive(s.config.Seed, i), err)
			}

			mu.Lock()
			defer mu.Unlock()
			result.Sessions++
			result.FinalChips += out.summary.FinalChips
			result.Reshuffles += out.reshuffles
			if out.summary.Bankrupt {
				result.Bankrupt++
			}
			result.Stats.Merge(out.stats)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := result.Stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	result.Duration = time.Since(start)
	s.config.Logger.Info("Simulation finished",
		"sessions", result.Sessions,
		"rounds", result.Stats.Rounds,
		"mean", result.Stats.Mean(),
		"duration", result.Duration)

	return result, nil
}

type sessionOutcome struct {
	summary    *game.SessionSummary
	stats      *statistics.Statistics
	reshuffles int
}

// playSession plays one bot session to its round limit or bankruptcy
func (s *Simulator) playSession(n int) (*sessionOutcome, error) {
	seed := randutil.Derive(s.config.Seed, n)
	logger := s.config.Logger.With("session", n)

	shoe := deck.NewShoe(randutil.New(seed), s.config.ShoeOptions...)
	engine := game.NewEngine(shoe, game.NewPlayer(fmt.Sprintf("Bot%d", n), s.config.Chips), logger)

	collector := &collector{stats: &statistics.Statistics{}}
	engine.EventBus().Subscribe(collector)

	player := bot.NewBot(s.strategy, s.config.Bet, logger)
	summary, err := game.NewSession(engine, player, logger, game.WithMaxRounds(s.config.Rounds)).Run()
	if err != nil {
		return nil, err
	}

	return &sessionOutcome{summary: summary, stats: collector.stats, reshuffles: player.Reshuffles()}, nil
}

// collector records every finished round
type collector struct {
	stats *statistics.Statistics
}

func (c *collector) OnEvent(event game.Event) {
	if e, ok := event.(game.RoundEndEvent); ok {
		c.stats.Add(statistics.FromRound(&e.Result))
	}
}
