package terminal

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

// DefaultColumns is used when neither the terminal nor $COLUMNS knows.
const DefaultColumns = 80

// Columns returns the column count of the terminal on fd, falling back to
// $COLUMNS and then DefaultColumns.
func Columns(fd uintptr) int {
	if w, _, err := term.GetSize(int(fd)); err == nil && w > 0 {
		return w
	}
	if cols, ok := os.LookupEnv("COLUMNS"); ok {
		if n, err := strconv.Atoi(cols); err == nil && n > 0 {
			return n
		}
	}
	return DefaultColumns
}
