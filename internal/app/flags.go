package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/pulsebar/internal/config"
)

// rootFlags holds raw flag values. Only flags the user actually set are
// copied onto the settings, so the defaults file fills in the rest.
type rootFlags struct {
	configPath    string
	warn          int
	critical      int
	okGlyph       string
	warnGlyph     string
	criticalGlyph string
	decay         string
	interval      int
	width         string
	hideCursor    bool
	terminal      string
	symbolWidth   string
	glyphStyle    string
	colorMode     string
	fsEvents      bool
	logFile       string
}

// registerThresholds adds the flags shared by every command.
func (f *rootFlags) registerThresholds(cmd *cobra.Command) {
	d := config.DefaultSettings()
	flags := cmd.Flags()

	flags.StringVar(&f.configPath, "config", "", "defaults file (default: $XDG_CONFIG_HOME/pulsebar/config.yaml)")
	flags.IntVar(&f.warn, "warn", d.WarnSeconds, "seconds of inactivity before the warn state")
	flags.IntVar(&f.critical, "critical", d.CriticalSeconds, "seconds of inactivity before the critical state")
}

func (f *rootFlags) register(cmd *cobra.Command) {
	d := config.DefaultSettings()
	flags := cmd.Flags()

	f.registerThresholds(cmd)
	flags.StringVar(&f.okGlyph, "ok-glyph", config.DefaultOKGlyph, "glyph for the ok state")
	flags.StringVar(&f.warnGlyph, "warn-glyph", config.DefaultWarnGlyph, "glyph for the warn state")
	flags.StringVar(&f.criticalGlyph, "critical-glyph", config.DefaultCriticalGlyph, "glyph for the critical state")
	flags.StringVar(&f.decay, "decay", d.Decay, "side the bar empties from: left or right")
	flags.IntVar(&f.interval, "interval", d.IntervalMS, "refresh interval in milliseconds")
	flags.StringVar(&f.width, "width", d.Width, "line width in columns, or auto to follow the terminal")
	flags.BoolVar(&f.hideCursor, "hide-cursor", d.HideCursor, "hide the cursor while running")
	flags.StringVar(&f.terminal, "terminal", d.Terminal, "terminal profile: auto, iterm2, wezterm, apple-terminal or generic")
	flags.StringVar(&f.symbolWidth, "symbol-width", d.SymbolWidth, "columns per glyph: auto, 1 or 2")
	flags.StringVar(&f.glyphStyle, "glyph-style", d.GlyphStyle, "glyph style: auto, text or image")
	flags.StringVar(&f.colorMode, "color-mode", d.ColorMode, "color mode: auto, dark or light")
	flags.BoolVar(&f.fsEvents, "fs-events", d.FSEvents, "wake early on filesystem events")
	flags.StringVar(&f.logFile, "log-file", d.LogFile, "write a structured debug log to this file")
}

// options merges built-in defaults, the defaults file, flags and the
// positional pattern, in that order, and validates the result.
func (f *rootFlags) options(cmd *cobra.Command, args []string) (config.Options, error) {
	flags := cmd.Flags()

	s, err := settingsFromFile(f.configPath, flags.Changed("config"))
	if err != nil {
		return config.Options{}, err
	}

	if flags.Changed("warn") {
		s.WarnSeconds = f.warn
	}
	if flags.Changed("critical") {
		s.CriticalSeconds = f.critical
	}
	if flags.Changed("ok-glyph") {
		s.OKGlyph = &f.okGlyph
	}
	if flags.Changed("warn-glyph") {
		s.WarnGlyph = &f.warnGlyph
	}
	if flags.Changed("critical-glyph") {
		s.CriticalGlyph = &f.criticalGlyph
	}
	if flags.Changed("decay") {
		s.Decay = f.decay
	}
	if flags.Changed("interval") {
		s.IntervalMS = f.interval
	}
	if flags.Changed("width") {
		s.Width = f.width
	}
	if flags.Changed("hide-cursor") {
		s.HideCursor = f.hideCursor
	}
	if flags.Changed("terminal") {
		s.Terminal = f.terminal
	}
	if flags.Changed("symbol-width") {
		s.SymbolWidth = f.symbolWidth
	}
	if flags.Changed("glyph-style") {
		s.GlyphStyle = f.glyphStyle
	}
	if flags.Changed("color-mode") {
		s.ColorMode = f.colorMode
	}
	if flags.Changed("fs-events") {
		s.FSEvents = f.fsEvents
	}
	if flags.Changed("log-file") {
		s.LogFile = f.logFile
	}
	if len(args) == 1 {
		s.Pattern = args[0]
	}

	return s.Options()
}

func requireFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("config file: %w", err)
	}
	return nil
}
