package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/config"
	"github.com/lox/blackjack-cli/internal/console"
	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/display"
	"github.com/lox/blackjack-cli/internal/game"
	"github.com/lox/blackjack-cli/internal/randutil"
	"github.com/lox/blackjack-cli/internal/tui"
)

// PlayCmd seats a human at the table
type PlayCmd struct {
	Config  string `short:"c" default:"blackjack.hcl" type:"path" env:"BLACKJACK_CONFIG" help:"HCL configuration file (optional)"`
	TUI     bool   `name:"tui" env:"BLACKJACK_TUI" help:"Use the full screen interface"`
	Seed    *int64 `env:"BLACKJACK_SEED" help:"Deterministic shuffle seed (optional)"`
	Chips   int    `env:"BLACKJACK_CHIPS" help:"Starting chips, overrides the config file"`
	Decks   int    `env:"BLACKJACK_DECKS" help:"Decks in the shoe, overrides the config file"`
	Debug   bool   `env:"BLACKJACK_DEBUG" help:"Enable debug logging"`
	NoColor bool   `env:"NO_COLOR" help:"Disable colored output"`
}

func (c *PlayCmd) Run() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	logger, logFile, err := openLog(cfg.UI.LogFile, cfg.UI.LogLevel, c.Debug)
	if err != nil {
		return err
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close debug file", "error", err)
		}
	}()

	seed, rng := randutil.Resolve(c.Seed)
	logger.Info("Starting blackjack",
		"seed", seed,
		"decks", cfg.Table.Decks,
		"threshold", cfg.Table.ReshuffleThreshold,
		"chips", cfg.Table.StartingChips)

	shoe := deck.NewShoe(rng, cfg.ShoeOptions()...)
	engine := game.NewEngine(shoe, game.NewPlayer("You", cfg.Table.StartingChips), logger)

	renderer := display.NewRenderer(os.Stdout, cfg.ColorEnabled() && !c.NoColor)
	formatter := display.NewFormatter(display.NewStyles(renderer))

	if c.TUI {
		return c.runTUI(cfg, engine, formatter, logger)
	}
	return c.runConsole(cfg, engine, formatter, logger)
}

func (c *PlayCmd) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", c.Config, err)
	}
	if c.Decks > 0 {
		cfg.SetDecks(c.Decks)
	}
	if c.Chips > 0 {
		cfg.Table.StartingChips = c.Chips
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *PlayCmd) runConsole(cfg *config.Config, engine *game.Engine, formatter *display.Formatter, logger *log.Logger) error {
	fmt.Println(formatter.Styles().Header.Render(" ♠ ♥ Blackjack ♦ ♣ "))
	fmt.Println()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signals
		logger.Info("Interrupted")
		fmt.Println()
		fmt.Println(formatter.Styles().Info.Render("Leaving the table."))
		os.Exit(0)
	}()

	term := console.New(os.Stdin, os.Stdout, formatter, logger,
		console.WithDelays(cfg.DealerDelay(), cfg.ReshuffleDelay()))

	summary, err := game.NewSession(engine, term, logger).Run()
	if err != nil {
		return err
	}
	logSummary(logger, summary)
	return nil
}

func (c *PlayCmd) runTUI(cfg *config.Config, engine *game.Engine, formatter *display.Formatter, logger *log.Logger) error {
	model := tui.NewTUIModel(formatter.Styles(), logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	bridge := tui.NewBridge(model, program.Send, formatter, logger,
		tui.WithDelays(cfg.DealerDelay(), cfg.ReshuffleDelay()))

	type outcome struct {
		summary *game.SessionSummary
		err     error
	}
	done := make(chan outcome, 1)

	go func() {
		summary, err := game.NewSession(engine, bridge, logger).Run()
		if err == nil {
			bridge.Finish()
		} else {
			model.SendQuitSignal()
		}
		done <- outcome{summary, err}
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	result := <-done
	if result.err != nil {
		return result.err
	}

	logSummary(logger, result.summary)
	for _, line := range formatter.Format(game.SessionEndEvent{Summary: *result.summary}) {
		fmt.Println(line)
	}
	return nil
}

func logSummary(logger *log.Logger, summary *game.SessionSummary) {
	logger.Info("Session summary",
		"rounds", summary.Rounds,
		"wins", summary.Wins,
		"pushes", summary.Pushes,
		"losses", summary.Losses,
		"final_chips", summary.FinalChips,
		"bankrupt", summary.Bankrupt)
}
