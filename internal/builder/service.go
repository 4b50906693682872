package builder

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/wikibook/internal/book"
	ferrors "git.home.luguber.info/inful/wikibook/internal/foundation/errors"
	"git.home.luguber.info/inful/wikibook/internal/logfields"
	"git.home.luguber.info/inful/wikibook/internal/manifest"
	"git.home.luguber.info/inful/wikibook/internal/metrics"
	"git.home.luguber.info/inful/wikibook/internal/storage"
)

// GeneratedMarker is the first line of every generated file.
const GeneratedMarker = "<!-- GENERATED OUTPUT -->"

// Status is the final state of a run.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Result summarizes a build.
type Result struct {
	BuildID        string
	Status         Status
	OutputPath     string
	TopicsWritten  int
	SpecialWritten int
	AssetsCopied   int
	StartTime      time.Time
	Duration       time.Duration
}

// CleanResult summarizes a clean.
type CleanResult struct {
	Status        Status
	OutputPath    string
	FilesRemoved  []string
	AssetsRemoved int
	Duration      time.Duration
}

// Service builds and cleans book output.
type Service struct {
	store    storage.Store
	logger   *slog.Logger
	recorder metrics.Recorder
	jobs     int
}

// NewService creates a Service working through store. It logs nowhere, records
// no metrics and renders one topic at a time until configured otherwise.
func NewService(store storage.Store) *Service {
	return &Service{
		store:    store,
		logger:   slog.New(slog.DiscardHandler),
		recorder: metrics.NoopRecorder{},
		jobs:     1,
	}
}

// WithLogger sets the logger receiving progress messages.
func (s *Service) WithLogger(logger *slog.Logger) *Service {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithRecorder sets the metrics recorder.
func (s *Service) WithRecorder(recorder metrics.Recorder) *Service {
	if recorder != nil {
		s.recorder = recorder
	}
	return s
}

// WithJobs bounds how many topics are rendered and written concurrently.
// Values below one mean one.
func (s *Service) WithJobs(n int) *Service {
	if n < 1 {
		n = 1
	}
	s.jobs = n
	return s
}

// Build loads the manifest at manifestPath and writes the book to outputDir.
func (s *Service) Build(ctx context.Context, manifestPath, outputDir string) (*Result, error) {
	start := time.Now()
	result := &Result{
		BuildID:   uuid.NewString(),
		StartTime: start,
		Status:    StatusFailed,
	}
	logger := s.logger.With(logfields.BuildID(result.BuildID))
	logger.Info("Building '"+manifestPath+"' to '"+outputDir+"'...",
		logfields.Input(manifestPath), logfields.Output(outputDir))

	err := s.runBuild(ctx, logger, manifestPath, outputDir, result)
	result.Duration = time.Since(start)
	s.recorder.ObserveBuildDuration(result.Duration)
	if err != nil {
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		return result, err
	}
	result.Status = StatusSuccess
	s.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
	logger.Info("Build complete",
		logfields.Count(result.TopicsWritten+result.SpecialWritten),
		logfields.Duration(result.Duration))
	return result, nil
}

func (s *Service) runBuild(ctx context.Context, logger *slog.Logger, manifestPath, outputDir string, result *Result) error {
	out, err := absOutput(outputDir)
	if err != nil {
		return err
	}
	result.OutputPath = out

	var b *book.Book
	err = s.stage(ctx, logger, metrics.StageLoad, func() error {
		m, err := manifest.Load(s.store, manifestPath)
		if err != nil {
			return err
		}
		b, err = book.Build(m, s.store, book.NewLoader(s.store, logger))
		return err
	})
	if err != nil {
		return err
	}

	return s.writeBook(ctx, logger, b, out, result)
}

// BuildBook writes an already built book to outputDir.
func (s *Service) BuildBook(ctx context.Context, b *book.Book, outputDir string) (*Result, error) {
	start := time.Now()
	result := &Result{BuildID: uuid.NewString(), StartTime: start, Status: StatusFailed}
	logger := s.logger.With(logfields.BuildID(result.BuildID))

	out, err := absOutput(outputDir)
	if err == nil {
		result.OutputPath = out
		err = s.writeBook(ctx, logger, b, out, result)
	}
	result.Duration = time.Since(start)
	s.recorder.ObserveBuildDuration(result.Duration)
	if err != nil {
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		return result, err
	}
	result.Status = StatusSuccess
	s.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
	return result, nil
}

// stage runs fn as the named stage, recording its duration and result.
func (s *Service) stage(ctx context.Context, logger *slog.Logger, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	err := fn()
	d := time.Since(start)

	s.recorder.ObserveStageDuration(name, d)
	if err != nil {
		s.recorder.IncStageResult(name, metrics.ResultFatal)
		logger.Debug("Stage failed", logfields.Stage(name), logfields.Duration(d), logfields.Error(err))
		return err
	}
	s.recorder.IncStageResult(name, metrics.ResultSuccess)
	logger.Debug("Stage complete", logfields.Stage(name), logfields.Duration(d))
	return nil
}

func absOutput(outputDir string) (string, error) {
	out, err := filepath.Abs(outputDir)
	if err != nil {
		return "", ferrors.IOError("cannot resolve output directory").
			WithCause(err).
			WithContext("path", outputDir).
			Build()
	}
	return out, nil
}
