package sapling

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-click", "after-click"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	s := NewScene(SceneConfig{Width: 10, Height: 10})
	s.Screenshot("a")
	s.Screenshot("b")
	s.Screenshot("c")
	if s.PendingScreenshots() != 3 {
		t.Fatalf("PendingScreenshots = %d, want 3", s.PendingScreenshots())
	}
	if got := strings.Join(s.screenshotQueue, ","); got != "a,b,c" {
		t.Errorf("queue = %s, want a,b,c", got)
	}
}

func TestScreenshotDirDefault(t *testing.T) {
	s := NewScene(SceneConfig{})
	if s.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want %q", s.ScreenshotDir, "screenshots")
	}
}

func TestScreenshotWritesPNG(t *testing.T) {
	resetPending(t)
	surface, err := NewGGSurface(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { surface.Close() })

	s := NewScene(SceneConfig{Width: 32, Height: 32})
	s.ScreenshotDir = filepath.Join(t.TempDir(), "shots")
	s.Stage().Add(box("red", 0, 0, 16, 16))
	s.Screenshot("first frame")
	s.Frame(surface)

	if s.PendingScreenshots() != 0 {
		t.Errorf("PendingScreenshots = %d after frame, want 0", s.PendingScreenshots())
	}
	matches, err := filepath.Glob(filepath.Join(s.ScreenshotDir, "*_first_frame.png"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one screenshot, found %v", matches)
	}
	info, err := os.Stat(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("screenshot file is empty")
	}
}

func TestScreenshotDroppedWithoutSnapshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never")
	s := NewScene(SceneConfig{Width: 8, Height: 8})
	s.ScreenshotDir = dir
	s.Screenshot("lost")
	s.Frame(NewRecorder(8, 8))

	if s.PendingScreenshots() != 0 {
		t.Errorf("PendingScreenshots = %d, want 0", s.PendingScreenshots())
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("screenshot dir created for a surface without pixels: %v", err)
	}
}
