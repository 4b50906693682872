package commands

import (
	"path/filepath"

	"git.home.luguber.info/inful/wikibook/internal/logfields"
	"git.home.luguber.info/inful/wikibook/internal/manifest"
)

// DefaultManifestName is the file written by 'init'.
const DefaultManifestName = "book.yaml"

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing manifest file"`
	Output string `short:"o" name:"output" default:"." help:"Directory to write book.yaml into"`
}

func (i *InitCmd) Run(g *Global, _ *CLI) error {
	path := filepath.Join(i.Output, DefaultManifestName)
	g.Logger.Info("Writing example manifest", logfields.Path(path))
	if err := manifest.WriteExample(g.Store, absOrSelf(path), i.Force); err != nil {
		return err
	}
	g.Logger.Info("Initialized successfully")
	return nil
}

func absOrSelf(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
