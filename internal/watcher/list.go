package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// FileInfo describes one file currently matched by a pattern.
type FileInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
	Dev     uint64
	Ino     uint64
}

// List resolves pattern once and stats every match, in lexicographic order.
// Matches that cannot be stat'ed are skipped, as ScanForGrowth does.
func List(pattern string) ([]FileInfo, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
	}
	sort.Strings(matches)

	files := make([]FileInfo, 0, len(matches))
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		dev, ino := fileIdentity(info)
		files = append(files, FileInfo{
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Dev:     dev,
			Ino:     ino,
		})
	}
	return files, nil
}

// Newest returns the most recent modification time in files, or the zero
// time when files is empty.
func Newest(files []FileInfo) time.Time {
	var newest time.Time
	for _, f := range files {
		if f.ModTime.After(newest) {
			newest = f.ModTime
		}
	}
	return newest
}
