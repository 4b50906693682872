package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/wikibook/cmd/wikibook/commands"
	ferrors "git.home.luguber.info/inful/wikibook/internal/foundation/errors"
	"git.home.luguber.info/inful/wikibook/internal/storage"
	"git.home.luguber.info/inful/wikibook/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, executes the selected command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cli := &commands.CLI{LogOutput: stderr}
	parser, err := kong.New(cli,
		kong.Name("wikibook"),
		kong.Description("Compose a GitHub wiki from a YAML book manifest and Markdown topics."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		return ferrors.NewCLIErrorAdapter(false, nil).WithOutput(stderr).
			Report(ferrors.InternalError("failed to initialize command line").WithCause(err).Build())
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return ferrors.NewCLIErrorAdapter(false, nil).WithOutput(stderr).
			Report(ferrors.ValidationError(err.Error()).WithCause(err).Build())
	}

	global := &commands.Global{Logger: slog.Default(), Store: storage.NewOS()}
	if err := kctx.Run(global, cli); err != nil {
		return ferrors.NewCLIErrorAdapter(cli.Verbose, global.Logger).WithOutput(stderr).Report(err)
	}
	return 0
}
