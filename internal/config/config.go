// Package config loads table and interface settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack-cli/internal/deck"
)

// DefaultFile is the config file read when no path is given
const DefaultFile = "blackjack.hcl"

// Config represents the complete game configuration
type Config struct {
	Table *TableSettings `hcl:"table,block"`
	UI    *UISettings    `hcl:"ui,block"`
}

// TableSettings controls the shoe and the bankroll
type TableSettings struct {
	Decks              int `hcl:"decks,optional"`
	ReshuffleThreshold int `hcl:"reshuffle_threshold,optional"`
	StartingChips      int `hcl:"starting_chips,optional"`
}

// UISettings controls logging and terminal presentation
type UISettings struct {
	LogLevel         string `hcl:"log_level,optional"`
	LogFile          string `hcl:"log_file,optional"`
	Color            *bool  `hcl:"color,optional"`
	DealerDelayMs    *int   `hcl:"dealer_delay_ms,optional"`
	ReshuffleDelayMs *int   `hcl:"reshuffle_delay_ms,optional"`
}

// Default returns the default configuration: six decks, reshuffle below two
// decks, 1000 chips, and the pauses of a real table.
func Default() *Config {
	color := true
	dealerDelay := 1000
	reshuffleDelay := 4000
	return &Config{
		Table: &TableSettings{
			Decks:              deck.DefaultDecks,
			ReshuffleThreshold: deck.DefaultThreshold(deck.DefaultDecks),
			StartingChips:      1000,
		},
		UI: &UISettings{
			LogLevel:         "info",
			LogFile:          "blackjack.log",
			Color:            &color,
			DealerDelayMs:    &dealerDelay,
			ReshuffleDelayMs: &reshuffleDelay,
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults; fields left out of the file are filled from the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()
	if c.Table == nil {
		c.Table = &TableSettings{}
	}
	if c.UI == nil {
		c.UI = &UISettings{}
	}

	if c.Table.Decks == 0 {
		c.Table.Decks = defaults.Table.Decks
	}
	if c.Table.ReshuffleThreshold == 0 {
		c.Table.ReshuffleThreshold = deck.DefaultThreshold(c.Table.Decks)
	}
	if c.Table.StartingChips == 0 {
		c.Table.StartingChips = defaults.Table.StartingChips
	}

	if c.UI.LogLevel == "" {
		c.UI.LogLevel = defaults.UI.LogLevel
	}
	if c.UI.LogFile == "" {
		c.UI.LogFile = defaults.UI.LogFile
	}
	if c.UI.Color == nil {
		c.UI.Color = defaults.UI.Color
	}
	if c.UI.DealerDelayMs == nil {
		c.UI.DealerDelayMs = defaults.UI.DealerDelayMs
	}
	if c.UI.ReshuffleDelayMs == nil {
		c.UI.ReshuffleDelayMs = defaults.UI.ReshuffleDelayMs
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := deck.CheckSize(c.Table.Decks, c.Table.ReshuffleThreshold); err != nil {
		return err
	}
	if c.Table.StartingChips <= 0 {
		return fmt.Errorf("starting chips must be positive")
	}
	if c.UI.DealerDelayMs != nil && *c.UI.DealerDelayMs < 0 {
		return fmt.Errorf("dealer delay cannot be negative")
	}
	if c.UI.ReshuffleDelayMs != nil && *c.UI.ReshuffleDelayMs < 0 {
		return fmt.Errorf("reshuffle delay cannot be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.UI.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}

	return nil
}

// SetDecks changes the shoe size and scales the reshuffle threshold with it
func (c *Config) SetDecks(decks int) {
	c.Table.Decks = decks
	c.Table.ReshuffleThreshold = deck.DefaultThreshold(decks)
}

// ShoeOptions returns the shoe options for the table settings
func (c *Config) ShoeOptions() []deck.ShoeOption {
	return []deck.ShoeOption{
		deck.WithDecks(c.Table.Decks),
		deck.WithReshuffleThreshold(c.Table.ReshuffleThreshold),
	}
}

// ColorEnabled reports whether styled output is wanted
func (c *Config) ColorEnabled() bool {
	return c.UI.Color == nil || *c.UI.Color
}

// DealerDelay returns the pause before each dealer card
func (c *Config) DealerDelay() time.Duration {
	return millis(c.UI.DealerDelayMs)
}

// ReshuffleDelay returns the pause while the shoe is reshuffled
func (c *Config) ReshuffleDelay() time.Duration {
	return millis(c.UI.ReshuffleDelayMs)
}

func millis(ms *int) time.Duration {
	if ms == nil {
		return 0
	}
	return time.Duration(*ms) * time.Millisecond
}
