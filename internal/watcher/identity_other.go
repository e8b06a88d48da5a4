//go:build !unix

package watcher

import "os"

// fileIdentity is unavailable without stat(2); rotation then shows up only as
// truncation.
func fileIdentity(os.FileInfo) (dev, ino uint64) {
	return 0, 0
}
