package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/display"
	"github.com/lox/blackjack-cli/internal/randutil"
	"github.com/lox/blackjack-cli/internal/simulator"
)

// SimulateCmd plays bot sessions in parallel and prints aggregate results
type SimulateCmd struct {
	Sessions  int           `default:"100" help:"Independent sessions to play"`
	Rounds    int           `default:"1000" help:"Round limit per session"`
	Chips     int           `default:"1000" help:"Starting chips per session"`
	Bet       int           `default:"10" help:"Flat bet per round"`
	Strategy  string        `default:"basic" enum:"basic,mimic,never-bust" help:"Bot strategy: basic, mimic, never-bust"`
	Decks     int           `default:"6" help:"Decks in the shoe"`
	Threshold int           `help:"Reshuffle below this many cards (default scales with decks)"`
	Seed      *int64        `help:"Deterministic base seed (optional)"`
	Parallel  int           `help:"Sessions to play at once (default GOMAXPROCS)"`
	Timeout   time.Duration `default:"5m" help:"Give up after this long"`
	Output    string        `short:"o" type:"path" help:"Write a JSON report to this file"`
	Debug     bool          `help:"Enable debug logging"`
}

func (c *SimulateCmd) Run() error {
	level := log.WarnLevel
	if c.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "simulate",
		Level:           level,
	})

	seed, _ := randutil.Resolve(c.Seed)

	shoeOpts := []deck.ShoeOption{deck.WithDecks(c.Decks)}
	if c.Threshold > 0 {
		shoeOpts = append(shoeOpts, deck.WithReshuffleThreshold(c.Threshold))
	}

	sim, err := simulator.New(simulator.Config{
		Sessions:    c.Sessions,
		Rounds:      c.Rounds,
		Chips:       c.Chips,
		Bet:         c.Bet,
		Strategy:    c.Strategy,
		Seed:        seed,
		Parallel:    c.Parallel,
		ShoeOptions: shoeOpts,
		Timeout:     c.Timeout,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	styles := display.NewStyles(lipgloss.DefaultRenderer())
	fmt.Println(styles.Header.Render(" ♠ ♥ Blackjack simulation ♦ ♣ "))
	fmt.Printf("%d sessions × %d rounds, %s strategy, bet %d, seed %d\n\n",
		c.Sessions, c.Rounds, c.Strategy, c.Bet, seed)

	result, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	printReport(styles, result.Report())

	if c.Output != "" {
		if err := result.WriteReport(c.Output); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Println(styles.Info.Render("Report written to " + c.Output))
	}
	return nil
}

func printReport(styles *display.Styles, r simulator.Report) {
	fmt.Printf("Rounds:      %d (%d sessions, %d went broke)\n", r.Rounds, r.Sessions, r.Bankrupt)
	fmt.Printf("Outcomes:    %s  %s  %s\n",
		styles.Success.Render(fmt.Sprintf("won %.2f%%", 100*r.WinRate)),
		styles.Warning.Render(fmt.Sprintf("pushed %.2f%%", 100*r.PushRate)),
		styles.Error.Render(fmt.Sprintf("lost %.2f%%", 100*r.LossRate)))
	fmt.Printf("Busts:       player %d, dealer %d\n", r.PlayerBusts, r.DealerBusts)
	fmt.Printf("Net/round:   %.4f chips ± %.4f std dev\n", r.MeanNet, r.StdDev)
	fmt.Printf("95%% CI:      [%.4f, %.4f]\n", r.CI95Low, r.CI95High)
	fmt.Printf("Spread:      p5 %.0f, median %.0f, p95 %.0f chips\n", r.P5Net, r.MedianNet, r.P95Net)
	fmt.Printf("Return:      %+.3f%% of wagered\n", 100*r.ReturnPerChip)
	fmt.Printf("Reshuffles:  %d\n", r.Reshuffles)
	fmt.Println(styles.Info.Render(fmt.Sprintf("Finished in %dms", r.DurationMs)))
}
