package watcher

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// writeFile replaces path with content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}

// appendFile appends content to path.
func appendFile(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		t.Fatalf("OpenFile(%s): %v", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("WriteString(%s): %v", path, err)
	}
}

func newTestWatcher(t *testing.T, pattern string) *Watcher {
	t.Helper()
	w, err := New(pattern)
	if err != nil {
		t.Fatalf("New(%q) error = %v", pattern, err)
	}
	return w
}

// ── New ──────────────────────────────────────────────────────────────────────

func TestNew(t *testing.T) {
	w := newTestWatcher(t, "/tmp/*.log")
	if w.Pattern() != "/tmp/*.log" {
		t.Errorf("Pattern() = %q", w.Pattern())
	}
	if w.files == nil {
		t.Error("files map not initialized")
	}
}

func TestNew_EmptyPattern(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Error("New(\"\") expected error, got nil")
	}
}

func TestNew_BadPattern(t *testing.T) {
	if _, err := New("/tmp/[a-"); err == nil {
		t.Error("New(bad pattern) expected error, got nil")
	}
}

// ── ScanForGrowth ────────────────────────────────────────────────────────────

func TestScanForGrowth_PreexistingContentIsBaseline(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	writeFile(t, path, "existing line\n")

	w := newTestWatcher(t, filepath.Join(dir, "*.log"))
	if w.ScanForGrowth() {
		t.Fatal("first scan reported growth for pre-existing content")
	}

	st, ok := w.Tracked()[path]
	if !ok {
		t.Fatal("path not tracked after first scan")
	}
	if st.Size != int64(len("existing line\n")) {
		t.Errorf("baseline = %d, want %d", st.Size, len("existing line\n"))
	}
}

func TestScanForGrowth_AppendReportedOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	writeFile(t, path, "a\n")

	w := newTestWatcher(t, filepath.Join(dir, "*.log"))
	w.ScanForGrowth()

	appendFile(t, path, "b\n")
	if !w.ScanForGrowth() {
		t.Fatal("scan after append = false, want true")
	}
	if w.ScanForGrowth() {
		t.Fatal("scan without new writes = true, want false")
	}
}

func TestScanForGrowth_Truncation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	writeFile(t, path, "some content\n")

	w := newTestWatcher(t, filepath.Join(dir, "*.log"))
	w.ScanForGrowth()

	if err := os.Truncate(path, 0); err != nil {
		t.Fatalf("Truncate: %v", err)
	}
	if w.ScanForGrowth() {
		t.Fatal("scan after truncation = true, want false")
	}
	if got := w.Tracked()[path].Size; got != 0 {
		t.Errorf("stored size after truncation = %d, want 0", got)
	}

	appendFile(t, path, "x\n")
	if !w.ScanForGrowth() {
		t.Fatal("scan after append past truncated baseline = false, want true")
	}
}

func TestScanForGrowth_Rotation(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("device/inode identity is unix-only")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	writeFile(t, path, "old content that is fairly long\n")

	w := newTestWatcher(t, filepath.Join(dir, "app.log"))
	w.ScanForGrowth()
	before := w.Tracked()[path]

	// Rotate: move the original aside and start a new file at the same path.
	if err := os.Rename(path, path+".1"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	writeFile(t, path, "")
	if w.ScanForGrowth() {
		t.Fatal("scan of empty replacement file = true, want false")
	}
	after := w.Tracked()[path]
	if after.Ino == before.Ino && after.Dev == before.Dev {
		t.Fatal("identity not updated after rotation")
	}

	appendFile(t, path, "new\n")
	if !w.ScanForGrowth() {
		t.Fatal("write to rotated file not detected as growth")
	}
}

func TestScanForGrowth_RotationWithShorterContent(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("device/inode identity is unix-only")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	writeFile(t, path, "old content that is fairly long\n")

	w := newTestWatcher(t, path)
	w.ScanForGrowth()

	if err := os.Rename(path, path+".1"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	writeFile(t, path, "new\n")

	// Shorter than the old baseline, but compared against 0 after rotation.
	if !w.ScanForGrowth() {
		t.Fatal("rotated file with fresh content = false, want true")
	}
}

func TestScanForGrowth_NewMatchingFileIsBaselined(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, filepath.Join(dir, "*.log"))
	if w.ScanForGrowth() {
		t.Fatal("scan with no matches = true")
	}

	writeFile(t, filepath.Join(dir, "late.log"), "hello\n")
	if w.ScanForGrowth() {
		t.Fatal("first sighting of a new file reported growth")
	}

	appendFile(t, filepath.Join(dir, "late.log"), "more\n")
	if !w.ScanForGrowth() {
		t.Fatal("append to newly tracked file not detected")
	}
}

func TestScanForGrowth_AnyFileGrowing(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.log")
	b := filepath.Join(dir, "b.log")
	writeFile(t, a, "a\n")
	writeFile(t, b, "b\n")

	w := newTestWatcher(t, filepath.Join(dir, "*.log"))
	w.ScanForGrowth()

	appendFile(t, b, "b\n")
	if !w.ScanForGrowth() {
		t.Fatal("growth of second file not reported")
	}
	if len(w.Tracked()) != 2 {
		t.Errorf("tracked = %d paths, want 2", len(w.Tracked()))
	}
}

func TestScanForGrowth_DropsVanishedPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	writeFile(t, path, "a\n")

	w := newTestWatcher(t, filepath.Join(dir, "*.log"))
	w.ScanForGrowth()

	if err := os.Remove(path); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if w.ScanForGrowth() {
		t.Fatal("scan after removal = true")
	}
	if _, ok := w.Tracked()[path]; ok {
		t.Error("removed path still tracked")
	}

	// Re-created file starts from a fresh baseline.
	writeFile(t, path, "recreated content\n")
	if w.ScanForGrowth() {
		t.Fatal("re-created file reported growth on first sighting")
	}
}

func TestScanForGrowth_UnstatablePathDropped(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	link := filepath.Join(dir, "app.log")
	writeFile(t, target, "data\n")
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("Symlink: %v", err)
	}

	w := newTestWatcher(t, filepath.Join(dir, "*.log"))
	w.ScanForGrowth()
	if _, ok := w.Tracked()[link]; !ok {
		t.Fatal("symlinked log not tracked")
	}

	// A dangling symlink still matches the glob but cannot be stat'd.
	if err := os.Remove(target); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if w.ScanForGrowth() {
		t.Fatal("scan with dangling symlink = true")
	}
	if _, ok := w.Tracked()[link]; ok {
		t.Error("unstat-able path still tracked")
	}
}
