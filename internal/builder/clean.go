package builder

import (
	"context"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/wikibook/internal/logfields"
	"git.home.luguber.info/inful/wikibook/internal/manifest"
	"git.home.luguber.info/inful/wikibook/internal/metrics"
)

// Clean removes the configured asset directories from outputDir, then every
// file below outputDir whose content starts with GeneratedMarker. Files without
// the marker are never touched.
func (s *Service) Clean(ctx context.Context, manifestPath, outputDir string) (*CleanResult, error) {
	m, err := manifest.Load(s.store, manifestPath)
	if err != nil {
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		return &CleanResult{Status: StatusFailed}, err
	}
	return s.CleanOutput(ctx, m, outputDir)
}

// CleanOutput is Clean for an already loaded manifest.
func (s *Service) CleanOutput(ctx context.Context, m *manifest.Book, outputDir string) (*CleanResult, error) {
	start := time.Now()
	result := &CleanResult{Status: StatusFailed, FilesRemoved: []string{}}

	err := s.runClean(ctx, m, outputDir, result)
	result.Duration = time.Since(start)
	if err != nil {
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		return result, err
	}
	result.Status = StatusSuccess
	s.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
	return result, nil
}

func (s *Service) runClean(ctx context.Context, m *manifest.Book, outputDir string, result *CleanResult) error {
	out, err := absOutput(outputDir)
	if err != nil {
		return err
	}
	result.OutputPath = out
	s.logger.Info("Cleaning '"+outputDir+"'...", logfields.Output(out))

	return s.stage(ctx, s.logger, metrics.StageClean, func() error {
		if err := validateAssetNames(m.AssetDirectoryNames); err != nil {
			return err
		}
		for _, name := range m.AssetDirectoryNames {
			dst := filepath.Join(out, name)
			s.logger.Info("Removing asset directory '"+dst+"'...", logfields.AssetDir(name))
			if err := s.store.RemoveAll(dst); err != nil {
				return err
			}
			result.AssetsRemoved++
		}

		var generated []string
		marker := []byte(GeneratedMarker)
		err := s.store.WalkFiles(out, func(path string) error {
			ok, err := s.store.HasPrefix(path, marker)
			if err != nil {
				return err
			}
			if ok {
				generated = append(generated, path)
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, path := range generated {
			s.logger.Info("Removing '"+path+"'...", logfields.Path(path))
			if err := s.store.RemoveFile(path); err != nil {
				return err
			}
			result.FilesRemoved = append(result.FilesRemoved, path)
		}
		s.recorder.AddFilesRemoved(len(result.FilesRemoved))
		return nil
	})
}
