package commands

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/wikibook/internal/storage"
)

// LogLevelEnv overrides the log level chosen by --verbose.
const LogLevelEnv = "WIKIBOOK_LOG_LEVEL"

// Global carries the dependencies shared by every subcommand.
type Global struct {
	Logger *slog.Logger
	Store  storage.Store
}

// CLI definition & global flags.
type CLI struct {
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" help:"Build wiki pages from a book manifest"`
	Clean CleanCmd `cmd:"" help:"Remove previously generated wiki pages and asset directories"`
	Watch WatchCmd `cmd:"" help:"Build, then rebuild whenever the book's files change"`
	Init  InitCmd  `cmd:"" help:"Write an example book manifest"`

	// LogOutput receives log records; nil means stderr.
	LogOutput io.Writer `kong:"-"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	out := c.LogOutput
	if out == nil {
		out = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: parseLogLevel(c.Verbose)}))
	slog.SetDefault(logger)
	return nil
}

// parseLogLevel picks debug for --verbose and info otherwise, unless
// WIKIBOOK_LOG_LEVEL names a level.
func parseLogLevel(verbose bool) slog.Level {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(LogLevelEnv))) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
