package builder

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/wikibook/internal/book"
	ferrors "git.home.luguber.info/inful/wikibook/internal/foundation/errors"
	"git.home.luguber.info/inful/wikibook/internal/logfields"
	"git.home.luguber.info/inful/wikibook/internal/manifest"
	"git.home.luguber.info/inful/wikibook/internal/metrics"
	"git.home.luguber.info/inful/wikibook/internal/pathutil"
	"git.home.luguber.info/inful/wikibook/internal/render"
)

func (s *Service) writeBook(ctx context.Context, logger *slog.Logger, b *book.Book, out string, result *Result) error {
	targets, err := outputTargets(b, out)
	if err != nil {
		return err
	}
	vars := render.TocVariables(b)

	err = s.stage(ctx, logger, metrics.StageAssets, func() error {
		n, err := s.copyAssets(logger, b.Manifest, out)
		result.AssetsCopied = n
		return err
	})
	if err != nil {
		return err
	}

	err = s.stage(ctx, logger, metrics.StageSpecial, func() error {
		logger.Info("Generating special output files...")
		for _, t := range b.SpecialTopics() {
			if err := s.writeOutput(targets[t], t.Text, vars); err != nil {
				return err
			}
			result.SpecialWritten++
		}
		s.recorder.AddFilesWritten(metrics.FileKindSpecial, result.SpecialWritten)
		return nil
	})
	if err != nil {
		return err
	}

	return s.stage(ctx, logger, metrics.StageTopics, func() error {
		logger.Info("Generating topic output files...", logfields.Count(len(targets)-result.SpecialWritten))
		s.recorder.SetRenderConcurrency(s.jobs)

		var written atomic.Int64
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.jobs)
		for _, t := range b.Topics() {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				text, err := render.Topic(b, t)
				if err != nil {
					return err
				}
				if err := s.writeOutput(targets[t], text, vars); err != nil {
					return err
				}
				written.Add(1)
				return nil
			})
		}
		err := g.Wait()
		result.TopicsWritten = int(written.Load())
		s.recorder.AddFilesWritten(metrics.FileKindTopic, result.TopicsWritten)
		return err
	})
}

// writeOutput writes the marker line, a blank line, then text with the
// placeholders substituted.
func (s *Service) writeOutput(path, text string, vars []render.Variable) error {
	return s.store.WriteTextFile(path, GeneratedMarker+"\n\n"+render.SubstitutePlaceholders(text, vars))
}

// outputTargets maps every topic to its output file: the source's base name
// directly under out. Two topics sharing a base name would overwrite each
// other, so that is an error.
func outputTargets(b *book.Book, out string) (map[*book.Topic]string, error) {
	targets := make(map[*book.Topic]string)
	owners := make(map[string]*book.Topic)
	all := append(b.SpecialTopics(), b.Topics()...)
	for _, t := range all {
		path := filepath.Join(out, filepath.Base(t.Source))
		if other, taken := owners[path]; taken {
			return nil, ferrors.DuplicateTopicError("topics write the same output file").
				WithContext("output", filepath.Base(path)).
				WithContext("source", b.RelativeSource(t)).
				WithContext("other", b.RelativeSource(other)).
				Build()
		}
		owners[path] = t
		targets[t] = path
	}
	return targets, nil
}

// validateAssetNames rejects any asset directory name that is not a single bare
// path segment, before anything is touched on disk.
func validateAssetNames(names []string) error {
	for _, name := range names {
		if !pathutil.IsSingleSegment(name) {
			return ferrors.InvalidAssetDirectoryNameError("invalid asset directory name").
				WithContext("name", name).
				Build()
		}
	}
	return nil
}

// copyAssets replaces each configured asset directory under out with a fresh
// copy from the project directory.
func (s *Service) copyAssets(logger *slog.Logger, m *manifest.Book, out string) (int, error) {
	if err := validateAssetNames(m.AssetDirectoryNames); err != nil {
		return 0, err
	}
	if len(m.AssetDirectoryNames) == 0 {
		return 0, nil
	}

	logger.Info("Copying asset directories...")
	for i, name := range m.AssetDirectoryNames {
		src := filepath.Join(m.ProjectDir, name)
		dst := filepath.Join(out, name)
		logger.Info("Copying asset directory", logfields.AssetDir(name), logfields.Output(dst))

		if err := s.store.RemoveAll(dst); err != nil {
			return i, err
		}
		if err := s.store.CopyDir(src, dst); err != nil {
			return i, err
		}
	}
	return len(m.AssetDirectoryNames), nil
}
