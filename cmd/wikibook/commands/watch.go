package commands

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"git.home.luguber.info/inful/wikibook/internal/builder"
	"git.home.luguber.info/inful/wikibook/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Input  string `short:"i" required:"" help:"Path to the YAML manifest that composes the book"`
	Output string `short:"o" required:"" help:"Output directory for generated wiki pages"`
	Jobs   int    `short:"j" default:"1" help:"Number of topics rendered concurrently"`
}

func (w *WatchCmd) Run(g *Global, _ *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	svc := builder.NewService(g.Store).WithLogger(g.Logger).WithJobs(w.Jobs)
	return watch.Run(ctx, watch.Options{
		ProjectDir: filepath.Dir(w.Input),
		OutputDir:  w.Output,
		Logger:     g.Logger,
	}, func(ctx context.Context) error {
		_, err := svc.Build(ctx, w.Input, w.Output)
		return err
	})
}
