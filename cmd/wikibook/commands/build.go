package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/wikibook/internal/builder"
	"git.home.luguber.info/inful/wikibook/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Input       string `short:"i" required:"" help:"Path to the YAML manifest that composes the book"`
	Output      string `short:"o" required:"" help:"Output directory for generated wiki pages"`
	Jobs        int    `short:"j" default:"1" help:"Number of topics rendered concurrently"`
	MetricsFile string `name:"metrics-file" help:"Write build metrics to this file in Prometheus text format"`
}

func (b *BuildCmd) Run(g *Global, _ *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	svc := builder.NewService(g.Store).WithLogger(g.Logger).WithJobs(b.Jobs)

	var recorder *metrics.PrometheusRecorder
	if b.MetricsFile != "" {
		recorder = metrics.NewPrometheusRecorder(nil)
		svc.WithRecorder(recorder)
	}

	_, err := svc.Build(ctx, b.Input, b.Output)
	if recorder != nil {
		if werr := recorder.WriteTextfile(b.MetricsFile); werr != nil && err == nil {
			err = werr
		}
	}
	return err
}
