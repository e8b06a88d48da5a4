// Package width measures how many terminal columns text occupies.
//
// Every code point contributes 0, 1 or 2 columns:
//
//   - 0: NUL and other C0/C1 controls, zero-width joiners and non-joiners,
//     variation selectors, combining marks
//   - 2: Extended_Pictographic (emoji-like) code points and East Asian
//     wide/fullwidth code points
//   - 1: everything else
//
// Strings are walked by rune, so a multi-byte character counts once and
// invalid UTF-8 bytes count as one column each.
package width

import (
	"unicode"

	"github.com/mattn/go-runewidth"
)

// cond is pinned to non-East-Asian ambiguous widths so results do not depend
// on the caller's locale (runewidth.DefaultCondition reads LC_ALL and friends).
var cond = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// String returns the column width of s. It is never negative.
func String(s string) int {
	n := 0
	for _, r := range s {
		n += Rune(r)
	}
	return n
}

// Rune returns the column width of a single code point.
func Rune(r rune) int {
	switch {
	case r == 0 || unicode.IsControl(r):
		return 0
	case isZeroWidth(r):
		return 0
	case unicode.In(r, unicode.Mn, unicode.Me):
		return 0
	case IsPictographic(r):
		return 2
	case cond.RuneWidth(r) == 2:
		return 2
	default:
		return 1
	}
}

// IsPictographic reports whether r has the Extended_Pictographic property.
func IsPictographic(r rune) bool {
	return unicode.Is(extendedPictographic, r)
}

// HasPictographic reports whether any code point in s is pictographic.
func HasPictographic(s string) bool {
	for _, r := range s {
		if IsPictographic(r) {
			return true
		}
	}
	return false
}

func isZeroWidth(r rune) bool {
	switch {
	case r == 0x200B, r == 0x200C, r == 0x200D, r == 0x2060, r == 0xFEFF:
		return true
	case r >= 0xFE00 && r <= 0xFE0F:
		return true
	case r >= 0xE0100 && r <= 0xE01EF:
		return true
	}
	return false
}
