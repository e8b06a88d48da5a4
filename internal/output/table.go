package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"

	"github.com/blackwell-systems/pulsebar/internal/config"
	"github.com/blackwell-systems/pulsebar/internal/terminal"
	"github.com/blackwell-systems/pulsebar/internal/watcher"
)

// ANSI color codes for heartbeat state display
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

const pathColumn = 44

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// RenderFileTable renders the files a pattern currently matches, with the
// heartbeat state each one alone would produce at now.
func RenderFileTable(files []watcher.FileInfo, opts config.Options, now time.Time) string {
	if len(files) == 0 {
		return fmt.Sprintf("No files match %s\n", opts.Pattern)
	}

	var sb strings.Builder

	// Header
	sb.WriteString(fmt.Sprintf("%s %-9s %-16s %s\n",
		runewidth.FillRight("File", pathColumn), "Size", "Last Write", "State"))
	sb.WriteString(strings.Repeat("─", pathColumn+36))
	sb.WriteString("\n")

	// Rows
	for _, f := range files {
		state := Classify(opts, now.Sub(f.ModTime))
		sb.WriteString(fmt.Sprintf("%s %-9s %-16s %s\n",
			runewidth.FillRight(truncate(f.Path, pathColumn), pathColumn),
			formatSize(f.Size),
			formatRelativeTime(f.ModTime, now),
			colorize(stateColor(state), strings.ToUpper(state.String()))))
	}

	return sb.String()
}

// RenderFileSummary renders the one-line footer under RenderFileTable.
// Format: "3 files · newest write 2 minutes ago · WARN"
func RenderFileSummary(files []watcher.FileInfo, opts config.Options, now time.Time) string {
	if len(files) == 0 {
		return ""
	}
	newest := watcher.Newest(files)
	state := Classify(opts, now.Sub(newest))

	noun := "files"
	if len(files) == 1 {
		noun = "file"
	}
	return fmt.Sprintf("%d %s · newest write %s · %s\n",
		len(files), noun,
		formatRelativeTime(newest, now),
		colorize(stateColor(state), strings.ToUpper(state.String())))
}

func stateColor(s terminal.State) string {
	switch s {
	case terminal.StateOK:
		return colorGreen
	case terminal.StateWarn:
		return colorYellow
	case terminal.StateCritical:
		return colorRed
	default:
		return colorGray
	}
}

// formatSize converts bytes to human-readable size (GB, MB, KB).
func formatSize(bytes int64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.0f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.0f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// formatRelativeTime converts a timestamp to time before now (e.g. "2 days ago").
func formatRelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}

	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return plural(int(diff.Hours()/24), "day")
	case diff < 30*24*time.Hour:
		return plural(int(diff.Hours()/24/7), "week")
	case diff < 365*24*time.Hour:
		return plural(int(diff.Hours()/24/30), "month")
	default:
		return plural(int(diff.Hours()/24/365), "year")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// truncate shortens s to at most maxWidth cells, keeping the end of the
// path and marking the cut with "...".
func truncate(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	runes := []rune(s)
	for i := range runes {
		tail := string(runes[i:])
		if runewidth.StringWidth(tail) <= maxWidth-3 {
			return "..." + tail
		}
	}
	return "..."
}
