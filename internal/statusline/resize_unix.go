//go:build unix

package statusline

import (
	"os"
	"os/signal"
	"syscall"
)

// subscribeResize calls raise on every SIGWINCH until released.
func subscribeResize(raise func()) func() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-sigCh:
				raise()
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}
