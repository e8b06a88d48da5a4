// Package terminal resolves how the status line is drawn on the host
// terminal: redraw prefix, symbol width, cursor hiding, glyph style, color
// mode and the per-state glyphs. Resolution happens once per run.
package terminal

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"github.com/blackwell-systems/pulsebar/internal/config"
	"github.com/blackwell-systems/pulsebar/internal/width"
)

// Redraw prefixes.
const (
	CarriageReturn = "\r"
	ClearLine      = "\r" + termenv.CSI + termenv.EraseEntireLineSeq
)

// State is the bar's three-way classification of idle time.
type State int

const (
	StateOK State = iota
	StateWarn
	StateCritical
	numStates
)

func (s State) String() string {
	switch s {
	case StateOK:
		return "ok"
	case StateWarn:
		return "warn"
	case StateCritical:
		return "critical"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Glyph is the resolved symbol for one state.
type Glyph struct {
	Text  string
	Width int
	Image bool
}

// Config is the run-fixed rendering configuration.
type Config struct {
	Profile     config.Profile
	DrawPrefix  string
	SymbolWidth int
	CursorHide  bool
	GlyphStyle  config.GlyphStyle
	ColorMode   config.ColorMode
	Glyphs      [numStates]Glyph
}

// Glyph returns the resolved glyph for s.
func (c *Config) Glyph(s State) Glyph {
	if s < 0 || s >= numStates {
		return Glyph{}
	}
	return c.Glyphs[s]
}

type profileSpec struct {
	drawPrefix  string
	symbolWidth int
	cursorHide  bool
	images      bool
	autoStyle   config.GlyphStyle
}

// profiles holds the per-terminal defaults. Every known terminal draws the
// built-in square emoji two cells wide and honors cursor hiding, so those two
// columns agree across rows; the rows differ in redraw prefix and images.
var profiles = map[config.Profile]profileSpec{
	config.ProfileITerm2:        {drawPrefix: CarriageReturn, symbolWidth: 2, cursorHide: true, images: true, autoStyle: config.GlyphStyleImage},
	config.ProfileWezTerm:       {drawPrefix: CarriageReturn, symbolWidth: 2, cursorHide: true, images: true, autoStyle: config.GlyphStyleText},
	config.ProfileAppleTerminal: {drawPrefix: ClearLine, symbolWidth: 2, cursorHide: true, autoStyle: config.GlyphStyleText},
	config.ProfileGeneric:       {drawPrefix: CarriageReturn, symbolWidth: 2, cursorHide: true, autoStyle: config.GlyphStyleText},
}

// termPrograms maps TERM_PROGRAM values to profiles.
var termPrograms = map[string]config.Profile{
	"iTerm.app":      config.ProfileITerm2,
	"WezTerm":        config.ProfileWezTerm,
	"Apple_Terminal": config.ProfileAppleTerminal,
}

// glyphSubstitution replaces a built-in glyph a terminal draws badly.
type glyphSubstitution struct {
	profile config.Profile
	from    string
	to      string
}

// compatSubstitutions only apply to built-in glyphs, never to user glyphs.
var compatSubstitutions = []glyphSubstitution{
	// Apple Terminal renders U+2B1C with a broken cell background.
	{profile: config.ProfileAppleTerminal, from: "⬜", to: "█"},
}

// lightVariants are the built-in glyphs used on light backgrounds.
var lightVariants = map[State]string{
	StateWarn:     "🟧",
	StateCritical: "⬛",
}

// DetectProfile classifies a TERM_PROGRAM value. Unknown values are generic.
func DetectProfile(termProgram string) config.Profile {
	if p, ok := termPrograms[termProgram]; ok {
		return p
	}
	return config.ProfileGeneric
}

// Resolve derives the run's rendering configuration from opts and env.
func Resolve(opts config.Options, env Env) Config {
	profile := opts.Terminal
	if profile == config.ProfileAuto || profile == "" {
		profile = DetectProfile(env.TermProgram)
	}
	spec, ok := profiles[profile]
	if !ok {
		profile = config.ProfileGeneric
		spec = profiles[profile]
	}

	style := opts.GlyphStyle
	switch style {
	case config.GlyphStyleImage:
		if !spec.images {
			advise(env.Stderr, "%s cannot display inline images; using text glyphs", profile)
			style = config.GlyphStyleText
		}
	case config.GlyphStyleText:
	default:
		style = spec.autoStyle
	}

	symbolWidth := spec.symbolWidth
	if style == config.GlyphStyleImage {
		symbolWidth = 2
	}
	if opts.SymbolWidth > 0 {
		symbolWidth = opts.SymbolWidth
	}

	cfg := Config{
		Profile:     profile,
		DrawPrefix:  spec.drawPrefix,
		SymbolWidth: symbolWidth,
		CursorHide:  spec.cursorHide,
		GlyphStyle:  style,
		ColorMode:   ResolveColorMode(opts, env),
	}
	for s := StateOK; s < numStates; s++ {
		cfg.Glyphs[s] = resolveGlyph(s, opts, cfg)
	}
	return cfg
}

func resolveGlyph(s State, opts config.Options, cfg Config) Glyph {
	if cfg.GlyphStyle == config.GlyphStyleImage {
		return Glyph{Text: ImageGlyph(s, cfg.ColorMode, cfg.SymbolWidth), Width: cfg.SymbolWidth, Image: true}
	}

	g := OptionGlyph(opts, s)
	text := g.Text
	if !g.Custom {
		if v, ok := lightVariants[s]; ok && cfg.ColorMode == config.ColorModeLight {
			text = v
		}
		for _, sub := range compatSubstitutions {
			if sub.profile == cfg.Profile && sub.from == text {
				text = sub.to
			}
		}
	}

	w := width.String(text)
	switch {
	case opts.SymbolWidth > 0:
		w = opts.SymbolWidth
	case width.HasPictographic(text):
		w = cfg.SymbolWidth
	}
	if w < 1 {
		w = 1
	}
	return Glyph{Text: text, Width: w}
}

// OptionGlyph returns the configured glyph for s.
func OptionGlyph(opts config.Options, s State) config.Glyph {
	switch s {
	case StateWarn:
		return opts.WarnGlyph
	case StateCritical:
		return opts.CriticalGlyph
	default:
		return opts.OKGlyph
	}
}

func advise(w io.Writer, format string, args ...any) {
	if w == nil {
		return
	}
	fmt.Fprintf(w, "pulsebar: "+format+"\n", args...)
}
