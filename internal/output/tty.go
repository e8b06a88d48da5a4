package output

import (
	"io"

	"github.com/mattn/go-isatty"
)

// WriterIsTTY returns true if the given writer exposes an Fd() method
// (e.g. *os.File) and that fd is a terminal. Plain io.Writer values such
// as *bytes.Buffer are never terminals.
func WriterIsTTY(w io.Writer) bool {
	return isTTY(w)
}

// ReaderIsTTY is WriterIsTTY for input streams.
func ReaderIsTTY(r io.Reader) bool {
	return isTTY(r)
}

func isTTY(v any) bool {
	type fder interface {
		Fd() uintptr
	}
	if f, ok := v.(fder); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}
