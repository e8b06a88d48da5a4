package terminal

import (
	"os"
	"testing"
)

// notATerminal returns a descriptor term.GetSize rejects.
func notATerminal(t *testing.T) uintptr {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "size")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f.Fd()
}

func TestColumns_EnvFallback(t *testing.T) {
	t.Setenv("COLUMNS", "132")
	if got := Columns(notATerminal(t)); got != 132 {
		t.Errorf("Columns() = %d, want 132", got)
	}
}

func TestColumns_Default(t *testing.T) {
	for _, v := range []string{"", "wide", "-3", "0"} {
		t.Setenv("COLUMNS", v)
		if got := Columns(notATerminal(t)); got != DefaultColumns {
			t.Errorf("COLUMNS=%q: Columns() = %d, want %d", v, got, DefaultColumns)
		}
	}
}
