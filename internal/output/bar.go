// Package output renders the heartbeat status line and the matched-file table.
package output

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/blackwell-systems/pulsebar/internal/config"
	"github.com/blackwell-systems/pulsebar/internal/terminal"
	"github.com/blackwell-systems/pulsebar/internal/width"
)

// Line is one rendered status line.
type Line struct {
	Text  string
	Width int // visual width in terminal cells
	State terminal.State
}

// RenderLine returns the status line for the given idle duration.
// Example: [01:05]       🟨🟨🟨🟨🟨🟨
func RenderLine(opts config.Options, idle time.Duration, totalColumns int, cfg *terminal.Config) string {
	return Render(opts, idle, totalColumns, cfg).Text
}

// Render is RenderLine with the visual width and state of the result.
// A nil cfg draws the option glyphs as plain text.
func Render(opts config.Options, idle time.Duration, totalColumns int, cfg *terminal.Config) Line {
	if idle < 0 {
		idle = 0
	}
	state := Classify(opts, idle)

	prefix := "[" + FormatElapsed(int64(idle/time.Second)) + "] "
	prefixWidth := width.String(prefix)
	available := totalColumns - prefixWidth
	if available <= 0 {
		return Line{Text: prefix, Width: prefixWidth, State: state}
	}

	filled := available
	if state != terminal.StateCritical {
		filled = fillColumns(available, idle, opts.Critical)
	}

	g := glyphFor(opts, cfg, state)
	glyphs, used := repeat(g, filled)
	blank := available - used
	if blank < 0 {
		blank = 0
	}

	var b strings.Builder
	b.WriteString(prefix)
	// Critical is always drawn solid against the right edge.
	if state == terminal.StateCritical || opts.Decay != config.DecayRight {
		b.WriteString(strings.Repeat(" ", blank))
		b.WriteString(glyphs)
	} else {
		b.WriteString(glyphs)
		b.WriteString(strings.Repeat(" ", blank))
	}
	return Line{Text: b.String(), Width: prefixWidth + used + blank, State: state}
}

// Classify maps an idle duration onto ok, warn or critical.
func Classify(opts config.Options, idle time.Duration) terminal.State {
	switch {
	case idle >= opts.Critical:
		return terminal.StateCritical
	case idle >= opts.Warn:
		return terminal.StateWarn
	default:
		return terminal.StateOK
	}
}

// FormatElapsed formats seconds as mm:ss, or hh:mm:ss from one hour on.
func FormatElapsed(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// fillColumns returns round(available * (1 - idle/critical)), clamped.
func fillColumns(available int, idle, critical time.Duration) int {
	if critical <= 0 {
		return 0
	}
	fraction := math.Max(0, 1-idle.Seconds()/critical.Seconds())
	n := int(math.Round(float64(available) * fraction))
	switch {
	case n < 0:
		return 0
	case n > available:
		return available
	}
	return n
}

// repeat fills n columns with g. A glyph wider than n is still drawn once.
// It returns the text and the columns it occupies.
func repeat(g terminal.Glyph, n int) (string, int) {
	if n <= 0 || g.Text == "" {
		return "", 0
	}
	w := g.Width
	if w < 1 {
		w = 1
	}
	count := n / w
	if count == 0 {
		count = 1
	}
	return strings.Repeat(g.Text, count), count * w
}

func glyphFor(opts config.Options, cfg *terminal.Config, s terminal.State) terminal.Glyph {
	if cfg != nil {
		g := cfg.Glyph(s)
		if opts.SymbolWidth > 0 {
			g.Width = opts.SymbolWidth
		}
		return g
	}

	text := terminal.OptionGlyph(opts, s).Text
	w := opts.SymbolWidth
	if w <= 0 {
		w = width.String(text)
	}
	if w < 1 {
		w = 1
	}
	return terminal.Glyph{Text: text, Width: w}
}
