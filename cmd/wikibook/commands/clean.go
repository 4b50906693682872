package commands

import (
	"context"

	"git.home.luguber.info/inful/wikibook/internal/builder"
	"git.home.luguber.info/inful/wikibook/internal/logfields"
)

// CleanCmd implements the 'clean' command.
type CleanCmd struct {
	Input  string `short:"i" required:"" help:"Path to the YAML manifest that composes the book"`
	Output string `short:"o" required:"" help:"Output directory of a previous build"`
}

func (c *CleanCmd) Run(g *Global, _ *CLI) error {
	result, err := builder.NewService(g.Store).
		WithLogger(g.Logger).
		Clean(context.Background(), c.Input, c.Output)
	if err != nil {
		return err
	}
	g.Logger.Info("Clean complete", logfields.Count(len(result.FilesRemoved)))
	return nil
}
