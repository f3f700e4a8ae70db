package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Sit down at the table (default)"`
	Simulate SimulateCmd      `cmd:"" help:"Play many bot sessions and report the results"`
}

func main() {
	// A .env file may set any BLACKJACK_* flag
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Single player blackjack against the house"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// openLog creates the debug log file and a logger writing to it
func openLog(filename, level string, debug bool) (*log.Logger, io.Closer, error) {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o666)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create debug log: %w", err)
	}

	logger := log.NewWithOptions(file, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "MAIN",
	})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("invalid log level: %w", err)
	}
	if debug {
		lvl = log.DebugLevel
	}
	logger.SetLevel(lvl)

	return logger, file, nil
}
