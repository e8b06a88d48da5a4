//go:build !darwin

package terminal

import "github.com/blackwell-systems/pulsebar/internal/config"

// queryOSColorMode has no OS appearance setting to read here.
func queryOSColorMode() (config.ColorMode, bool) {
	return "", false
}
