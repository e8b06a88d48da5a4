package watcher

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Notifier turns filesystem events under the pattern's directory into
// wake-up hints. Growth is still decided by Watcher.ScanForGrowth.
type Notifier struct {
	pattern string
	fsw     *fsnotify.Watcher
	wake    chan struct{}
	errs    chan error
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// NewNotifier starts watching the deepest directory of pattern that contains
// no glob metacharacters.
func NewNotifier(pattern string) (*Notifier, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fs watcher: %w", err)
	}

	dir := staticDir(pattern)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	n := &Notifier{
		pattern: filepath.Clean(pattern),
		fsw:     fsw,
		wake:    make(chan struct{}, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
	}
	n.wg.Add(1)
	go n.run()
	return n, nil
}

// Wake receives a value after at least one relevant filesystem event.
// Bursts of events collapse into one pending wake-up.
func (n *Notifier) Wake() <-chan struct{} {
	return n.wake
}

// Errors receives errors reported by the underlying fsnotify watcher.
func (n *Notifier) Errors() <-chan error {
	return n.errs
}

// Close stops watching. It is safe to call more than once.
func (n *Notifier) Close() error {
	var err error
	n.once.Do(func() {
		close(n.done)
		err = n.fsw.Close()
		n.wg.Wait()
	})
	return err
}

func (n *Notifier) run() {
	defer n.wg.Done()

	for {
		select {
		case event, ok := <-n.fsw.Events:
			if !ok {
				return
			}
			if !n.relevant(event) {
				continue
			}
			select {
			case n.wake <- struct{}{}:
			default:
			}
		case err, ok := <-n.fsw.Errors:
			if !ok {
				return
			}
			select {
			case n.errs <- err:
			default:
			}
		case <-n.done:
			return
		}
	}
}

func (n *Notifier) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	// Event names are the cleaned watch directory joined with the base
	// name, so "*.log" sees "./a.log" and "./logs/*.log" sees "logs/a.log".
	matched, err := filepath.Match(n.pattern, filepath.Clean(event.Name))
	return err == nil && matched
}

// staticDir returns the longest leading directory of pattern free of glob
// metacharacters.
func staticDir(pattern string) string {
	dir := filepath.Dir(pattern)
	for strings.ContainsAny(dir, "*?[") {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return dir
}
