// Package watcher detects growth of append-only log files by polling.
//
// A Watcher resolves a glob pattern on every scan and keeps one FileState
// (device, inode, size) per matched path. ScanForGrowth reports whether any
// matched file got bigger since the previous scan:
//   - Baseline: a path seen for the first time is recorded at its current
//     size; bytes that existed before monitoring never count as growth
//   - Truncation: a file that shrank is re-baselined at 0 without reporting
//     growth on that scan
//   - Rotation: a path whose device/inode changed is re-baselined at 0 and
//     compared again, so content written to the replacement file counts
//   - Vanished or unreadable paths are dropped silently
//
// Polling with identity tracking needs no special permissions and tells
// appends, truncations and rotations apart on every platform with stat(2).
//
// The optional Notifier adds fsnotify-based wake-ups so a caller can scan as
// soon as something changes in the watched directory instead of waiting for
// its next tick. It never decides growth by itself.
//
// Example usage:
//
//	w, err := watcher.New("/var/log/myservice/*.log")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for range time.Tick(time.Second) {
//		if w.ScanForGrowth() {
//			fmt.Println("log grew")
//		}
//	}
package watcher
