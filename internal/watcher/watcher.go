// Package watcher re-links catalog entries when their REAPER project files
// change on disk.
package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"songbook/internal/catalog"
	"songbook/internal/config"
	"songbook/internal/fileutil"
	"songbook/internal/logging"
	"songbook/internal/notifications"
	"songbook/internal/services"
	"songbook/internal/stems"
)

const defaultDebounce = 2 * time.Second

// Watcher monitors the directories of all linked project files and re-links
// the owning songs after a change settles. Editors emit bursts of writes per
// save, so events are debounced per project path before a re-link fires.
type Watcher struct {
	cfg      *config.Config
	catalog  *catalog.Store
	stems    *stems.Service
	notifier notifications.Service
	logger   *slog.Logger
	debounce time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	targets map[string][]string
	running bool

	relinkMu sync.Mutex
}

// New constructs a watcher over the catalog's linked projects.
func New(cfg *config.Config, cat *catalog.Store, svc *stems.Service, logger *slog.Logger) *Watcher {
	return NewWithDependencies(cfg, cat, svc, logger, notifications.NewService(cfg), defaultDebounce)
}

// NewWithDependencies allows injecting custom dependencies (used for tests).
func NewWithDependencies(
	cfg *config.Config,
	cat *catalog.Store,
	svc *stems.Service,
	logger *slog.Logger,
	notifier notifications.Service,
	debounce time.Duration,
) *Watcher {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	w := &Watcher{
		cfg:      cfg,
		catalog:  cat,
		stems:    svc,
		notifier: notifier,
		debounce: debounce,
	}
	w.SetLogger(logger)
	return w
}

// SetLogger updates the watcher's logging destination while preserving component labeling.
func (w *Watcher) SetLogger(logger *slog.Logger) {
	w.logger = logging.NewComponentLogger(logger, "watcher")
}

// Running reports whether the watch loop is active.
func (w *Watcher) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) setRunning(v bool) {
	w.mu.Lock()
	w.running = v
	w.mu.Unlock()
}

// Run watches until ctx is cancelled. It returns a validation error when the
// catalog has no linked projects to watch.
func (w *Watcher) Run(ctx context.Context) error {
	targets, dirs := w.collectTargets()
	if len(targets) == 0 {
		return services.Wrap(services.ErrValidation, "watcher", "run", "no linked projects to watch", nil)
	}

	w.mu.Lock()
	w.targets = targets
	w.timers = make(map[string]*time.Timer)
	w.mu.Unlock()
	defer w.stopTimers()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "watcher", "run", "create filesystem watcher", err)
	}
	defer fsw.Close()

	logger := logging.WithContext(ctx, w.logger)
	watched := 0
	for _, dir := range dirs {
		if addErr := fsw.Add(dir); addErr != nil {
			logger.Warn("failed to watch project directory",
				logging.String("dir", dir),
				logging.Error(addErr))
			continue
		}
		watched++
	}
	if watched == 0 {
		return services.Wrap(services.ErrConfiguration, "watcher", "run", "no project directories could be watched", nil)
	}

	w.setRunning(true)
	defer w.setRunning(false)

	logger.Info("watching linked projects",
		logging.Int("projects", len(targets)),
		logging.Int("directories", watched),
		logging.Bool("notifications", w.cfg.Notifications.NtfyTopic != ""))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)
		case watchErr, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("filesystem watcher error", logging.Error(watchErr))
		}
	}
}

// collectTargets maps each linked project path to the songs that reference
// it and returns the set of parent directories to watch.
func (w *Watcher) collectTargets() (map[string][]string, []string) {
	targets := make(map[string][]string)
	dirSet := make(map[string]struct{})
	for _, song := range w.catalog.Songs() {
		if !song.HasProject() {
			continue
		}
		path := filepath.Clean(song.Project)
		if !fileutil.Exists(path) {
			w.logger.Warn("linked project file missing; not watching",
				logging.String(logging.FieldProject, path),
				logging.String(logging.FieldSongID, song.ID),
			)
			continue
		}
		targets[path] = append(targets[path], song.ID)
		dirSet[filepath.Dir(path)] = struct{}{}
	}
	dirs := make([]string, 0, len(dirSet))
	for dir := range dirSet {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return targets, dirs
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	path := filepath.Clean(event.Name)

	w.mu.Lock()
	_, linked := w.targets[path]
	w.mu.Unlock()
	if !linked {
		return
	}

	logging.WithContext(ctx, w.logger).Debug("project change detected",
		logging.String(logging.FieldProject, path),
		logging.String("op", event.Op.String()))
	w.scheduleRelink(ctx, path)
}

// scheduleRelink arms the per-path debounce timer, extending it when events
// keep arriving for the same project.
func (w *Watcher) scheduleRelink(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if timer, ok := w.timers[path]; ok {
		timer.Reset(w.debounce)
		return
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		w.relink(ctx, path)
	})
}

// relink re-links every song bound to path. Re-links are serialized so
// concurrent timers cannot race on the catalog.
func (w *Watcher) relink(ctx context.Context, path string) {
	if ctx.Err() != nil {
		return
	}
	w.relinkMu.Lock()
	defer w.relinkMu.Unlock()

	w.mu.Lock()
	songIDs := append([]string(nil), w.targets[path]...)
	w.mu.Unlock()

	logger := logging.WithContext(ctx, w.logger)
	for _, songID := range songIDs {
		result, err := w.stems.LinkProject(ctx, songID, path)
		if err != nil {
			logger.Error("re-link failed",
				logging.String(logging.FieldSongID, songID),
				logging.String(logging.FieldProject, path),
				logging.Alert("review"),
				logging.Error(err))
			if notifyErr := w.notifier.Publish(ctx, notifications.RelinkFailed(path, err)); notifyErr != nil {
				logger.Debug("relink failure notification not delivered", logging.Error(notifyErr))
			}
			continue
		}
		logger.Info("project re-linked",
			logging.String(logging.FieldSongID, songID),
			logging.String(logging.FieldProject, path),
			logging.Int("tracks", len(result.Tracks)))
		if notifyErr := w.notifier.Publish(ctx, notifications.ProjectRelinked(result.Song.Title, len(result.Tracks))); notifyErr != nil {
			logger.Debug("relink notification not delivered", logging.Error(notifyErr))
		}
	}
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, timer := range w.timers {
		timer.Stop()
		delete(w.timers, path)
	}
}
