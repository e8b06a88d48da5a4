package output

import (
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/pulsebar/internal/config"
	"github.com/blackwell-systems/pulsebar/internal/terminal"
)

// letterOptions uses single-column glyphs so layouts are easy to read.
func letterOptions(decay config.Decay) config.Options {
	return config.Options{
		Pattern:       "*.log",
		Warn:          5 * time.Second,
		Critical:      10 * time.Second,
		OKGlyph:       config.Glyph{Text: "O", Custom: true},
		WarnGlyph:     config.Glyph{Text: "W", Custom: true},
		CriticalGlyph: config.Glyph{Text: "C", Custom: true},
		Decay:         decay,
		Interval:      time.Second,
	}
}

// ── Elapsed formatting ───────────────────────────────────────────────────────

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{61, "01:01"},
		{3599, "59:59"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{-4, "00:00"},
	}
	for _, tt := range tests {
		if got := FormatElapsed(tt.seconds); got != tt.want {
			t.Errorf("FormatElapsed(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

// ── Classification ───────────────────────────────────────────────────────────

func TestClassify(t *testing.T) {
	opts := letterOptions(config.DecayLeft)
	tests := []struct {
		idle time.Duration
		want terminal.State
	}{
		{0, terminal.StateOK},
		{4999 * time.Millisecond, terminal.StateOK},
		{5 * time.Second, terminal.StateWarn},
		{9 * time.Second, terminal.StateWarn},
		{10 * time.Second, terminal.StateCritical},
		{time.Hour, terminal.StateCritical},
	}
	for _, tt := range tests {
		if got := Classify(opts, tt.idle); got != tt.want {
			t.Errorf("Classify(%v) = %s, want %s", tt.idle, got, tt.want)
		}
	}
}

// ── Layout ───────────────────────────────────────────────────────────────────

func TestRenderLine_WarnDecayLeft(t *testing.T) {
	got := RenderLine(letterOptions(config.DecayLeft), 5*time.Second, 20, nil)
	want := "[00:05] " + "      " + "WWWWWW"
	if got != want {
		t.Errorf("RenderLine() = %q, want %q", got, want)
	}
}

func TestRenderLine_WarnDecayRight(t *testing.T) {
	got := RenderLine(letterOptions(config.DecayRight), 5*time.Second, 20, nil)
	want := "[00:05] " + "WWWWWW" + "      "
	if got != want {
		t.Errorf("RenderLine() = %q, want %q", got, want)
	}
}

func TestRenderLine_CriticalIgnoresDecay(t *testing.T) {
	want := "[00:10] " + strings.Repeat("C", 12)
	for _, decay := range []config.Decay{config.DecayLeft, config.DecayRight} {
		if got := RenderLine(letterOptions(decay), 10*time.Second, 20, nil); got != want {
			t.Errorf("decay %s: RenderLine() = %q, want %q", decay, got, want)
		}
	}
}

func TestRenderLine_FullAtZeroIdle(t *testing.T) {
	got := RenderLine(letterOptions(config.DecayLeft), 0, 20, nil)
	want := "[00:00] " + strings.Repeat("O", 12)
	if got != want {
		t.Errorf("RenderLine() = %q, want %q", got, want)
	}
}

func TestRenderLine_RoundsFill(t *testing.T) {
	// 12 columns at 75% remaining.
	got := RenderLine(letterOptions(config.DecayRight), 2500*time.Millisecond, 20, nil)
	want := "[00:02] " + strings.Repeat("O", 9) + "   "
	if got != want {
		t.Errorf("RenderLine() = %q, want %q", got, want)
	}
}

func TestRenderLine_NoRoomForBar(t *testing.T) {
	opts := letterOptions(config.DecayLeft)
	for _, cols := range []int{0, 5, 8} {
		if got := RenderLine(opts, 3*time.Second, cols, nil); got != "[00:03] " {
			t.Errorf("cols=%d: RenderLine() = %q, want prefix only", cols, got)
		}
	}
}

func TestRenderLine_NegativeIdleClamped(t *testing.T) {
	got := RenderLine(letterOptions(config.DecayLeft), -time.Minute, 12, nil)
	if got != "[00:00] OOOO" {
		t.Errorf("RenderLine() = %q, want %q", got, "[00:00] OOOO")
	}
}

func TestRenderLine_HourPrefix(t *testing.T) {
	got := RenderLine(letterOptions(config.DecayLeft), time.Hour+time.Second, 20, nil)
	want := "[01:00:01] " + strings.Repeat("C", 9)
	if got != want {
		t.Errorf("RenderLine() = %q, want %q", got, want)
	}
}

// ── Glyph repetition ─────────────────────────────────────────────────────────

func TestRender_WideGlyphs(t *testing.T) {
	opts := letterOptions(config.DecayLeft)
	opts.OKGlyph = config.Glyph{Text: "🟩"}

	line := Render(opts, time.Second, 20, nil)
	// 12 columns at 90% is 11; five 2-cell glyphs use 10 of them.
	want := "[00:01] " + "  " + strings.Repeat("🟩", 5)
	if line.Text != want {
		t.Errorf("Text = %q, want %q", line.Text, want)
	}
	if line.Width != 20 {
		t.Errorf("Width = %d, want 20", line.Width)
	}
}

func TestRender_GlyphWiderThanSpaceDrawnOnce(t *testing.T) {
	opts := letterOptions(config.DecayLeft)
	opts.OKGlyph = config.Glyph{Text: "🟩"}

	line := Render(opts, 0, 9, nil)
	if line.Text != "[00:00] 🟩" {
		t.Errorf("Text = %q, want one glyph", line.Text)
	}
	if line.Width != 10 {
		t.Errorf("Width = %d, want 10", line.Width)
	}
}

func TestRender_SymbolWidthOverride(t *testing.T) {
	opts := letterOptions(config.DecayRight)
	opts.SymbolWidth = 2

	// Each "O" is counted as two cells.
	line := Render(opts, 0, 20, nil)
	want := "[00:00] " + strings.Repeat("O", 6)
	if line.Text != want {
		t.Errorf("Text = %q, want %q", line.Text, want)
	}
	if line.Width != 20 {
		t.Errorf("Width = %d, want 20", line.Width)
	}
}

func TestRender_ResolvedConfigGlyphs(t *testing.T) {
	const img = "\x1b]1337;File=inline=1:AAAA\a"
	cfg := &terminal.Config{
		SymbolWidth: 2,
		Glyphs: [3]terminal.Glyph{
			{Text: img, Width: 2, Image: true},
			{Text: "w", Width: 1},
			{Text: "c", Width: 1},
		},
	}
	line := Render(letterOptions(config.DecayLeft), 0, 20, cfg)

	want := "[00:00] " + strings.Repeat(img, 6)
	if line.Text != want {
		t.Errorf("Text = %q, want six image glyphs", line.Text)
	}
	if line.Width != 20 {
		t.Errorf("Width = %d, want 20", line.Width)
	}
	if line.State != terminal.StateOK {
		t.Errorf("State = %s, want ok", line.State)
	}
}
