package terminal

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/blackwell-systems/pulsebar/internal/config"
)

// ColorModeEnv overrides color-mode detection when the option is auto.
const ColorModeEnv = "PULSEBAR_COLOR_MODE"

// DefaultColorMode is used when nothing else gives an answer.
const DefaultColorMode = config.ColorModeDark

// Env carries the environment signals Resolve reads. Query funcs may be nil.
type Env struct {
	TermProgram string
	ColorMode   string
	ColorFGBG   string

	// QueryOS asks the operating system for its appearance setting.
	QueryOS func() (config.ColorMode, bool)
	// QueryTerminal asks the terminal for its background color.
	QueryTerminal func() (config.ColorMode, bool)

	// Stderr receives advisories about downgraded features.
	Stderr io.Writer
}

// EnvFromOS reads the process environment.
func EnvFromOS() Env {
	return Env{
		TermProgram:   os.Getenv("TERM_PROGRAM"),
		ColorMode:     os.Getenv(ColorModeEnv),
		ColorFGBG:     os.Getenv("COLORFGBG"),
		QueryOS:       queryOSColorMode,
		QueryTerminal: queryTerminalColorMode,
		Stderr:        os.Stderr,
	}
}

type colorModeResolver func(config.Options, Env) (config.ColorMode, bool)

// colorModeChain is tried in order; the first resolver with an answer wins.
var colorModeChain = []colorModeResolver{
	explicitColorMode,
	envColorMode,
	osColorMode,
	colorFGBGMode,
	terminalColorMode,
}

// ResolveColorMode returns dark or light, never auto.
func ResolveColorMode(opts config.Options, env Env) config.ColorMode {
	for _, resolve := range colorModeChain {
		if mode, ok := resolve(opts, env); ok {
			return mode
		}
	}
	return DefaultColorMode
}

func explicitColorMode(opts config.Options, _ Env) (config.ColorMode, bool) {
	return concrete(opts.ColorMode)
}

func envColorMode(_ config.Options, env Env) (config.ColorMode, bool) {
	mode, ok := config.ParseColorMode(env.ColorMode)
	if !ok {
		return "", false
	}
	return concrete(mode)
}

func osColorMode(_ config.Options, env Env) (config.ColorMode, bool) {
	if env.QueryOS == nil {
		return "", false
	}
	return env.QueryOS()
}

// colorFGBGMode parses COLORFGBG ("fg;bg" or "fg;default;bg"). The
// background is an ANSI color index; 7 and 9-15 are light.
func colorFGBGMode(_ config.Options, env Env) (config.ColorMode, bool) {
	if env.ColorFGBG == "" {
		return "", false
	}
	parts := strings.Split(env.ColorFGBG, ";")
	if len(parts) < 2 {
		return "", false
	}
	bg, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil || bg < 0 {
		return "", false
	}
	if bg == 7 || (bg >= 9 && bg <= 15) {
		return config.ColorModeLight, true
	}
	return config.ColorModeDark, true
}

func terminalColorMode(_ config.Options, env Env) (config.ColorMode, bool) {
	if env.QueryTerminal == nil {
		return "", false
	}
	return env.QueryTerminal()
}

func concrete(mode config.ColorMode) (config.ColorMode, bool) {
	switch mode {
	case config.ColorModeDark, config.ColorModeLight:
		return mode, true
	default:
		return "", false
	}
}

// queryTerminalColorMode sends an OSC background query. It only runs when
// stdout is a terminal; tmux and screen usually leave it unanswered.
func queryTerminalColorMode() (config.ColorMode, bool) {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return "", false
	}
	output := termenv.NewOutput(os.Stdout)
	bg := output.BackgroundColor()
	if bg == nil {
		return "", false
	}
	if _, ok := bg.(termenv.NoColor); ok {
		return "", false
	}
	if output.HasDarkBackground() {
		return config.ColorModeDark, true
	}
	return config.ColorModeLight, true
}
