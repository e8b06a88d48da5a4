package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidOptions is wrapped by every validation failure returned from
// Settings.Options.
var ErrInvalidOptions = errors.New("invalid options")

// Decay selects which edge of the bar empties as idle time grows.
type Decay string

const (
	DecayLeft  Decay = "left"
	DecayRight Decay = "right"
)

// Profile names a terminal whose quirks pulsebar knows about.
type Profile string

const (
	ProfileAuto          Profile = "auto"
	ProfileITerm2        Profile = "iterm2"
	ProfileWezTerm       Profile = "wezterm"
	ProfileAppleTerminal Profile = "apple-terminal"
	ProfileGeneric       Profile = "generic"
)

// GlyphStyle selects text symbols or inline images for the bar.
type GlyphStyle string

const (
	GlyphStyleAuto  GlyphStyle = "auto"
	GlyphStyleText  GlyphStyle = "text"
	GlyphStyleImage GlyphStyle = "image"
)

// ColorMode is the terminal theme the glyph variants are chosen for.
type ColorMode string

const (
	ColorModeAuto  ColorMode = "auto"
	ColorModeDark  ColorMode = "dark"
	ColorModeLight ColorMode = "light"
)

// Default glyphs. Warn and critical are replaced by their light-theme
// variants at resolution time unless the user supplied them.
const (
	DefaultOKGlyph       = "🟩"
	DefaultWarnGlyph     = "🟨"
	DefaultCriticalGlyph = "⬜"
)

// Glyph is a bar symbol together with whether the user chose it.
type Glyph struct {
	Text   string
	Custom bool
}

// Options is the validated run configuration. It is never mutated after
// Settings.Options returns it.
type Options struct {
	Pattern       string
	Warn          time.Duration
	Critical      time.Duration
	OKGlyph       Glyph
	WarnGlyph     Glyph
	CriticalGlyph Glyph
	Decay         Decay
	Interval      time.Duration
	Width         int // 0 means follow the terminal
	HideCursor    bool
	Terminal      Profile
	SymbolWidth   int // 0 means auto
	GlyphStyle    GlyphStyle
	ColorMode     ColorMode
	FSEvents      bool
	LogFile       string
}

// Settings is the unvalidated form shared by command-line flags and the
// defaults file. Nil glyph pointers mean "use the built-in glyph".
type Settings struct {
	Pattern         string  `yaml:"pattern"`
	WarnSeconds     int     `yaml:"warn_seconds"`
	CriticalSeconds int     `yaml:"critical_seconds"`
	OKGlyph         *string `yaml:"ok_glyph"`
	WarnGlyph       *string `yaml:"warn_glyph"`
	CriticalGlyph   *string `yaml:"critical_glyph"`
	Decay           string  `yaml:"decay"`
	IntervalMS      int     `yaml:"interval_ms"`
	Width           string  `yaml:"width"`
	HideCursor      bool    `yaml:"hide_cursor"`
	Terminal        string  `yaml:"terminal"`
	SymbolWidth     string  `yaml:"symbol_width"`
	GlyphStyle      string  `yaml:"glyph_style"`
	ColorMode       string  `yaml:"color_mode"`
	FSEvents        bool    `yaml:"fs_events"`
	LogFile         string  `yaml:"log_file"`
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		WarnSeconds:     60,
		CriticalSeconds: 300,
		Decay:           string(DecayLeft),
		IntervalMS:      1000,
		Width:           "auto",
		HideCursor:      true,
		Terminal:        string(ProfileAuto),
		SymbolWidth:     "auto",
		GlyphStyle:      string(GlyphStyleAuto),
		ColorMode:       string(ColorModeAuto),
	}
}

// Options validates s and returns the immutable run configuration.
func (s Settings) Options() (Options, error) {
	pattern := strings.TrimSpace(s.Pattern)
	if pattern == "" {
		return Options{}, invalid("a log file glob pattern is required")
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return Options{}, invalid("glob %q: %v", pattern, err)
	}

	if s.WarnSeconds < 0 {
		return Options{}, invalid("warn must not be negative, got %d", s.WarnSeconds)
	}
	if s.CriticalSeconds <= s.WarnSeconds {
		return Options{}, invalid("critical (%ds) must be greater than warn (%ds)", s.CriticalSeconds, s.WarnSeconds)
	}

	okGlyph, err := glyph("ok", s.OKGlyph, DefaultOKGlyph)
	if err != nil {
		return Options{}, err
	}
	warnGlyph, err := glyph("warn", s.WarnGlyph, DefaultWarnGlyph)
	if err != nil {
		return Options{}, err
	}
	criticalGlyph, err := glyph("critical", s.CriticalGlyph, DefaultCriticalGlyph)
	if err != nil {
		return Options{}, err
	}

	decay := Decay(strings.ToLower(strings.TrimSpace(s.Decay)))
	if decay != DecayLeft && decay != DecayRight {
		return Options{}, invalid("decay must be left or right, got %q", s.Decay)
	}

	if s.IntervalMS <= 0 {
		return Options{}, invalid("interval must be a positive number of milliseconds, got %d", s.IntervalMS)
	}

	width, err := parseAutoInt("width", s.Width, nil)
	if err != nil {
		return Options{}, err
	}
	symbolWidth, err := parseAutoInt("symbol width", s.SymbolWidth, []int{1, 2})
	if err != nil {
		return Options{}, err
	}

	profile := Profile(strings.ToLower(strings.TrimSpace(s.Terminal)))
	switch profile {
	case ProfileAuto, ProfileITerm2, ProfileWezTerm, ProfileAppleTerminal, ProfileGeneric:
	default:
		return Options{}, invalid("unknown terminal profile %q", s.Terminal)
	}

	style := GlyphStyle(strings.ToLower(strings.TrimSpace(s.GlyphStyle)))
	switch style {
	case GlyphStyleAuto, GlyphStyleText, GlyphStyleImage:
	default:
		return Options{}, invalid("glyph style must be auto, text or image, got %q", s.GlyphStyle)
	}

	mode, ok := ParseColorMode(s.ColorMode)
	if !ok {
		return Options{}, invalid("color mode must be auto, dark or light, got %q", s.ColorMode)
	}

	return Options{
		Pattern:       pattern,
		Warn:          time.Duration(s.WarnSeconds) * time.Second,
		Critical:      time.Duration(s.CriticalSeconds) * time.Second,
		OKGlyph:       okGlyph,
		WarnGlyph:     warnGlyph,
		CriticalGlyph: criticalGlyph,
		Decay:         decay,
		Interval:      time.Duration(s.IntervalMS) * time.Millisecond,
		Width:         width,
		HideCursor:    s.HideCursor,
		Terminal:      profile,
		SymbolWidth:   symbolWidth,
		GlyphStyle:    style,
		ColorMode:     mode,
		FSEvents:      s.FSEvents,
		LogFile:       strings.TrimSpace(s.LogFile),
	}, nil
}

// ParseColorMode normalizes a color mode value. The empty string is auto.
func ParseColorMode(v string) (ColorMode, bool) {
	switch mode := ColorMode(strings.ToLower(strings.TrimSpace(v))); mode {
	case "", ColorModeAuto:
		return ColorModeAuto, true
	case ColorModeDark, ColorModeLight:
		return mode, true
	default:
		return "", false
	}
}

func glyph(name string, v *string, fallback string) (Glyph, error) {
	if v == nil {
		return Glyph{Text: fallback}, nil
	}
	if *v == "" {
		return Glyph{}, invalid("%s glyph must not be empty", name)
	}
	return Glyph{Text: *v, Custom: true}, nil
}

// parseAutoInt accepts "auto" (returned as 0) or a positive integer, limited
// to allowed when allowed is non-nil.
func parseAutoInt(name, v string, allowed []int) (int, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" || v == "auto" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, invalid("%s must be auto or a positive integer, got %q", name, v)
	}
	if allowed == nil {
		return n, nil
	}
	for _, a := range allowed {
		if n == a {
			return n, nil
		}
	}
	return 0, invalid("%s must be auto or one of %v, got %d", name, allowed, n)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidOptions, fmt.Sprintf(format, args...))
}
