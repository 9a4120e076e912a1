package api

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/seenimoa/folio/internal/logging"
)

// Watcher reports changes below a set of files and directories, coalescing
// bursts of events into one callback.
type Watcher struct {
	paths    []string
	debounce time.Duration
	log      *zap.Logger
	onChange func(path string)

	files map[string]bool // watched individually through their parent dir
}

// NewWatcher creates a watcher. Directories are watched recursively; for a
// file its parent directory is watched and events are filtered to the file.
func NewWatcher(paths []string, debounce time.Duration, log *zap.Logger, onChange func(path string)) *Watcher {
	return &Watcher{
		paths:    paths,
		debounce: debounce,
		log:      logging.OrNop(log),
		onChange: onChange,
		files:    make(map[string]bool),
	}
}

// Run watches until ctx ends.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	var dirs []string
	for _, p := range w.paths {
		info, err := os.Stat(p)
		if err != nil {
			w.log.Warn("not watching missing path", zap.String("path", p))
			continue
		}
		if info.IsDir() {
			dirs = append(dirs, filepath.Clean(p))
			w.addRecursive(fsw, p)
			continue
		}
		w.files[filepath.Clean(p)] = true
		if err := fsw.Add(filepath.Dir(p)); err != nil {
			w.log.Warn("failed to watch", zap.String("path", p), zap.Error(err))
		}
	}

	w.log.Debug("watching for changes", zap.Strings("paths", w.paths))

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		lastHit string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op == fsnotify.Chmod || !w.relevant(ev.Name, dirs) {
				continue
			}
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					w.addRecursive(fsw, ev.Name)
				}
			}
			lastHit = ev.Name
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.onChange(lastHit)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) relevant(name string, dirs []string) bool {
	name = filepath.Clean(name)
	if w.files[name] {
		return true
	}
	for _, d := range dirs {
		if name == d || strings.HasPrefix(name, d+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// addRecursive watches root and every directory below it, skipping hidden ones.
func (w *Watcher) addRecursive(fsw *fsnotify.Watcher, root string) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			w.log.Warn("failed to watch directory", zap.String("path", path), zap.Error(err))
		}
		return nil
	})
	if err != nil {
		w.log.Warn("walking watch root", zap.String("path", root), zap.Error(err))
	}
}
