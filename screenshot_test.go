package barchart

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	for in, want := range map[string]string{
		"":             "unlabeled",
		"  ":           "unlabeled",
		"settled":      "settled",
		"after exit/2": "after_exit_2",
		"v1.0-final":   "v1.0-final",
	} {
		if got := sanitizeLabel(in); got != want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		128, 64, 0, 128, // half-transparent orange
		255, 255, 255, 255,
		0, 0, 0, 0,
	}
	img := unpremultiply(pixels, 3, 1)
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{255, 127, 0, 128}) {
		t.Errorf("pixel 0 = %v", got)
	}
	if got := img.NRGBAAt(1, 0); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("pixel 1 = %v", got)
	}
	if got := img.NRGBAAt(2, 0); got != (color.NRGBA{}) {
		t.Errorf("pixel 2 = %v", got)
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(1, 1, color.NRGBA{255, 0, 0, 255})
	if err := writePNG(path, src); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if r, _, _, _ := img.At(1, 1).RGBA(); r != 0xffff {
		t.Errorf("decoded red = %x, want ffff", r)
	}
}

func TestWritePNGBadPath(t *testing.T) {
	err := writePNG(filepath.Join(t.TempDir(), "missing", "out.png"), image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	if err == nil {
		t.Error("expected error for a missing directory")
	}
}

func TestScreenshotQueues(t *testing.T) {
	s := NewScene()
	s.Screenshot("a")
	s.Screenshot("b")
	if len(s.screenshotQueue) != 2 {
		t.Errorf("queue = %v, want 2 entries", s.screenshotQueue)
	}
}
