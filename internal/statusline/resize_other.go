//go:build !unix

package statusline

// subscribeResize is a no-op where there is no resize signal; the loop still
// reads the live width on every tick.
func subscribeResize(func()) func() {
	return func() {}
}
