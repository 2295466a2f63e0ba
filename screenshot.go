package sapling

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Screenshot queues a labeled screenshot to be captured at the end of the
// next Frame. The PNG is written to ScreenshotDir with a timestamped file
// name. Surfaces that cannot read back their pixels drop the request.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// PendingScreenshots returns the number of queued screenshot labels.
func (s *Scene) PendingScreenshots() int {
	return len(s.screenshotQueue)
}

// flushScreenshots captures the rendered frame once and writes one file per
// queued label.
func (s *Scene) flushScreenshots(surface Surface) {
	if len(s.screenshotQueue) == 0 {
		return
	}
	defer func() { s.screenshotQueue = s.screenshotQueue[:0] }()

	snap, ok := surface.(Snapshotter)
	if !ok {
		logger().Warn("sapling: screenshot: surface cannot snapshot", "labels", len(s.screenshotQueue))
		return
	}
	src, err := snap.Snapshot()
	if err != nil {
		logger().Warn("sapling: screenshot: snapshot failed", "error", err)
		return
	}
	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		logger().Warn("sapling: screenshot: mkdir failed", "dir", s.ScreenshotDir, "error", err)
		return
	}

	img := toNRGBA(src)
	stamp := time.Now().Format("20060102_150405")
	for _, label := range s.screenshotQueue {
		path := filepath.Join(s.ScreenshotDir, stamp+"_"+sanitizeLabel(label)+".png")
		if err := writePNG(path, img); err != nil {
			logger().Warn("sapling: screenshot", "error", err)
			continue
		}
		logger().Debug("sapling: screenshot written", "path", path)
	}
}

// toNRGBA converts premultiplied pixels to straight alpha.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps [A-Za-z0-9.-], replaces everything else with an
// underscore and falls back to "unlabeled" for blank labels.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
