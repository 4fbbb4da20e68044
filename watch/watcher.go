// Package watch re-runs a callback when files of a site change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounceDelay is used when Config.DebounceDelay is zero.
const DefaultDebounceDelay = 200 * time.Millisecond

// DefaultExtensions are the file types whose changes trigger a pass.
var DefaultExtensions = []string{
	".html", ".css",
	".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".tif", ".tiff", ".svg",
}

// Config configures the watcher
type Config struct {
	// Root is the directory to watch recursively
	Root string

	// DebounceDelay is how long to wait for more changes before calling the handler
	DebounceDelay time.Duration

	// Extensions filters changed files (lowercase, with dot). Empty uses DefaultExtensions.
	Extensions []string

	// Logger for logging events
	Logger *slog.Logger
}

// Handler is called once per burst of changes with the changed paths
// relative to the root, sorted.
type Handler func(ctx context.Context, changed []string)

// Watcher watches a site directory and calls a Handler after changes settle.
type Watcher struct {
	root       string
	debounce   time.Duration
	extensions map[string]bool
	handler    Handler
	watcher    *fsnotify.Watcher
	logger     *slog.Logger

	// pending is only touched by the Run goroutine
	pending map[string]fsnotify.Op // path → most recent operation
}

// New creates a watcher and registers every directory below cfg.Root.
// Changes made after New returns are delivered once Run is called.
func New(cfg Config, handler Handler) (*Watcher, error) {
	if handler == nil {
		return nil, fmt.Errorf("watch: handler is required")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	debounce := cfg.DebounceDelay
	if debounce == 0 {
		debounce = DefaultDebounceDelay
	}

	exts := cfg.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	extensions := make(map[string]bool, len(exts))
	for _, ext := range exts {
		extensions[strings.ToLower(ext)] = true
	}

	w := &Watcher{
		root:       cfg.Root,
		debounce:   debounce,
		extensions: extensions,
		handler:    handler,
		watcher:    fsw,
		logger:     logger,
		pending:    make(map[string]fsnotify.Op),
	}

	if err := w.addWatchesRecursive(cfg.Root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run processes events until ctx is done. The handler runs on the calling
// goroutine, so passes never overlap. Run closes the watcher before it
// returns.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	w.logger.Info("File watcher started",
		slog.String("root", w.root),
		slog.Duration("debounce", w.debounce))

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.handleFSEvent(event) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", slog.String("error", err.Error()))

		case <-timer.C:
			w.flushPending(ctx)
		}
	}
}

// Close releases the watcher without running it.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Relevant reports whether a change to path should trigger a pass.
func (w *Watcher) Relevant(path string) bool {
	return w.extensions[strings.ToLower(filepath.Ext(path))]
}

// addWatchesRecursive adds watches to all directories
func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(path) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory",
				slog.String("path", path),
				slog.String("error", err.Error()))
		} else {
			w.logger.Debug("Watching directory", slog.String("path", path))
		}
		return nil
	})
}

// skipDir reports whether a directory is hidden or holds dependencies.
func skipDir(path string) bool {
	base := filepath.Base(path)
	return base == "node_modules" || strings.HasPrefix(base, ".")
}

// handleFSEvent records a relevant change and reports whether it did.
func (w *Watcher) handleFSEvent(event fsnotify.Event) bool {
	path := event.Name

	if !w.Relevant(path) {
		if event.Has(fsnotify.Create) {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				w.handleNewDirectory(path)
			}
		}
		return false
	}

	w.pending[path] = event.Op

	w.logger.Debug("File change detected",
		slog.String("path", w.rel(path)),
		slog.String("op", event.Op.String()))
	return true
}

// handleNewDirectory adds a watch to a newly created directory
func (w *Watcher) handleNewDirectory(path string) {
	if skipDir(path) {
		return
	}
	// Nested directories arrive in one event when a tree is moved in.
	if err := w.addWatchesRecursive(path); err != nil {
		w.logger.Warn("Failed to watch new directory",
			slog.String("path", path),
			slog.String("error", err.Error()))
	}
}

// flushPending hands the accumulated changes to the handler.
func (w *Watcher) flushPending(ctx context.Context) {
	if len(w.pending) == 0 {
		return
	}
	changed := make([]string, 0, len(w.pending))
	for path := range w.pending {
		changed = append(changed, w.rel(path))
	}
	w.pending = make(map[string]fsnotify.Op)

	sort.Strings(changed)
	w.logger.Info("Changes detected, re-running checks", slog.Int("files", len(changed)))
	w.handler(ctx, changed)
}

func (w *Watcher) rel(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
