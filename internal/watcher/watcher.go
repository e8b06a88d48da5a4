package watcher

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// FileState is what the Watcher remembers about one tracked path.
type FileState struct {
	Dev  uint64
	Ino  uint64
	Size int64
}

// Watcher polls a glob pattern and reports whether any matched file grew.
// It is not safe for concurrent use; a single render loop owns it.
type Watcher struct {
	pattern string
	files   map[string]FileState
	logger  *slog.Logger
}

// New creates a Watcher for pattern. The pattern is validated but not
// resolved; the first ScanForGrowth records baselines.
func New(pattern string) (*Watcher, error) {
	if pattern == "" {
		return nil, fmt.Errorf("pattern cannot be empty")
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
	}
	return &Watcher{
		pattern: pattern,
		files:   make(map[string]FileState),
		logger:  slog.Default(),
	}, nil
}

// SetLogger replaces the logger used for per-scan diagnostics.
func (w *Watcher) SetLogger(l *slog.Logger) {
	if l != nil {
		w.logger = l
	}
}

// Pattern returns the glob the watcher resolves on every scan.
func (w *Watcher) Pattern() string {
	return w.pattern
}

// Tracked returns a copy of the current per-path state.
func (w *Watcher) Tracked() map[string]FileState {
	out := make(map[string]FileState, len(w.files))
	for path, st := range w.files {
		out[path] = st
	}
	return out
}

// ScanForGrowth resolves the pattern, updates per-path state and reports
// whether any matched file grew since the previous scan. Stat failures drop
// the path and are never returned to the caller.
func (w *Watcher) ScanForGrowth() bool {
	matches, err := filepath.Glob(w.pattern)
	if err != nil {
		// Only ErrBadPattern, which New already rejected.
		w.logger.Debug("glob_failed", slog.String("pattern", w.pattern), slog.String("error", err.Error()))
		return false
	}
	sort.Strings(matches)

	live := make(map[string]struct{}, len(matches))
	for _, path := range matches {
		live[path] = struct{}{}
	}
	for path := range w.files {
		if _, ok := live[path]; !ok {
			delete(w.files, path)
			w.logger.Debug("path_dropped", slog.String("path", path), slog.String("reason", "no longer matched"))
		}
	}

	grew := false
	for _, path := range matches {
		if w.scanPath(path) {
			grew = true
		}
	}
	return grew
}

// scanPath applies the baseline/rotation/truncation/growth rules to one path
// and reports whether it grew.
func (w *Watcher) scanPath(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		if _, ok := w.files[path]; ok {
			delete(w.files, path)
			w.logger.Debug("path_dropped", slog.String("path", path), slog.String("error", err.Error()))
		}
		return false
	}

	dev, ino := fileIdentity(info)
	size := info.Size()

	prev, ok := w.files[path]
	if !ok {
		w.files[path] = FileState{Dev: dev, Ino: ino, Size: size}
		w.logger.Debug("path_tracked", slog.String("path", path), slog.Int64("baseline", size))
		return false
	}

	st := prev
	if st.Dev != dev || st.Ino != ino {
		st = FileState{Dev: dev, Ino: ino, Size: 0}
		w.logger.Debug("path_rotated", slog.String("path", path))
	}

	grew := false
	switch {
	case size < st.Size:
		st.Size = 0
		w.logger.Debug("path_truncated", slog.String("path", path), slog.Int64("size", size))
	case size > st.Size:
		st.Size = size
		grew = true
	}

	w.files[path] = st
	return grew
}
