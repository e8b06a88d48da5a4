//go:build darwin

package terminal

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/blackwell-systems/pulsebar/internal/config"
)

// queryOSColorMode reads the macOS appearance. The AppleInterfaceStyle key
// only exists in dark mode, so any failure means light.
func queryOSColorMode() (config.ColorMode, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").Output()
	if err != nil {
		return config.ColorModeLight, true
	}
	if strings.EqualFold(strings.TrimSpace(string(out)), "dark") {
		return config.ColorModeDark, true
	}
	return config.ColorModeLight, true
}
