//go:build unix

package watcher

import (
	"os"
	"syscall"
)

// fileIdentity returns the device and inode numbers backing info.
func fileIdentity(info os.FileInfo) (dev, ino uint64) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 0
	}
	return uint64(st.Dev), uint64(st.Ino)
}
