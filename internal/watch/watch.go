// Package watch rebuilds a book whenever files in its project directory change.
//
// Every rebuild is a full build. Bursts of filesystem events are debounced into
// one rebuild, and a rebuild requested while another is running is queued once.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	ferrors "git.home.luguber.info/inful/wikibook/internal/foundation/errors"
	"git.home.luguber.info/inful/wikibook/internal/logfields"
	"git.home.luguber.info/inful/wikibook/internal/pathutil"
)

// DefaultDebounce is the quiet period after the last event before rebuilding.
const DefaultDebounce = 300 * time.Millisecond

// RebuildFunc performs one full build.
type RebuildFunc func(ctx context.Context) error

// Options configures Run.
type Options struct {
	// ProjectDir is watched recursively.
	ProjectDir string
	// OutputDir is never watched, so writing output cannot trigger a rebuild.
	OutputDir string
	Debounce  time.Duration
	Logger    *slog.Logger
}

// Run builds once, then rebuilds after every debounced burst of changes until
// ctx is canceled. Failed builds are logged and do not stop watching.
func Run(ctx context.Context, opts Options, rebuild RebuildFunc) error {
	w, err := newWatcher(opts)
	if err != nil {
		return err
	}
	return w.run(ctx, rebuild)
}

type watcher struct {
	projectDir string
	outputDir  string
	debounce   time.Duration
	logger     *slog.Logger
}

func newWatcher(opts Options) (*watcher, error) {
	projectDir, err := filepath.Abs(opts.ProjectDir)
	if err != nil {
		return nil, ferrors.IOError("cannot resolve project directory").WithCause(err).WithContext("path", opts.ProjectDir).Build()
	}
	outputDir, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		return nil, ferrors.IOError("cannot resolve output directory").WithCause(err).WithContext("path", opts.OutputDir).Build()
	}
	w := &watcher{
		projectDir: projectDir,
		outputDir:  outputDir,
		debounce:   opts.Debounce,
		logger:     opts.Logger,
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	if w.logger == nil {
		w.logger = slog.New(slog.DiscardHandler)
	}
	return w, nil
}

func (w *watcher) run(ctx context.Context, rebuild RebuildFunc) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return ferrors.IOError("failed to create filesystem watcher").WithCause(err).Build()
	}
	defer func() { _ = fsw.Close() }()

	if err := w.addDirsRecursive(fsw, w.projectDir); err != nil {
		return err
	}

	w.build(ctx, rebuild)

	rebuildReq := make(chan struct{}, 1)
	trigger, stop := debouncer(w.debounce, rebuildReq)
	defer stop()

	quit := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-quit:
				return
			case <-rebuildReq:
				w.logger.Info("Change detected; rebuilding")
				w.build(ctx, rebuild)
			}
		}
	}()
	defer func() {
		close(quit)
		wg.Wait()
	}()

	w.logger.Info("Watching for changes", logfields.Path(w.projectDir))
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopping watch")
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fsw, ev, trigger)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *watcher) build(ctx context.Context, rebuild RebuildFunc) {
	if ctx.Err() != nil {
		return
	}
	if err := rebuild(ctx); err != nil && !errors.Is(err, context.Canceled) {
		w.logger.Warn("Rebuild failed", logfields.Error(err))
	}
}

// debouncer returns a trigger that signals ch once events have been quiet for
// d, and a stop function cancelling any pending signal.
func debouncer(d time.Duration, ch chan<- struct{}) (trigger func(), stop func()) {
	var mu sync.Mutex
	var timer *time.Timer
	stopped := false

	trigger = func() {
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return
		}
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case ch <- struct{}{}:
			default:
			}
		})
	}
	stop = func() {
		mu.Lock()
		defer mu.Unlock()
		stopped = true
		if timer != nil {
			timer.Stop()
		}
	}
	return trigger, stop
}

func (w *watcher) handleEvent(fsw *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if w.shouldIgnore(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = w.addDirsRecursive(fsw, ev.Name)
		}
	}
	w.logger.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

func (w *watcher) addDirsRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return ferrors.IOError("cannot watch directory").WithCause(err).WithContext("path", path).Build()
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.shouldIgnore(path) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			w.logger.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// shouldIgnore reports whether changes at path must not trigger a rebuild:
// anything in the output directory, hidden files other than the .env files
// the manifest loader reads, and editor temp or lock files.
func (w *watcher) shouldIgnore(path string) bool {
	if path == w.outputDir || pathutil.IsContainedIn(w.outputDir, path) {
		return true
	}
	return isTempFile(filepath.Base(path))
}

func isTempFile(base string) bool {
	if base == ".env" || base == ".env.local" {
		return false
	}
	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}
