package debug

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/webp"

	"github.com/Faultbox/glbview/internal/engine/scene"
)

func TestBBoxWireframe(t *testing.T) {
	b := scene.Bounds{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 2, 3}}
	v := BBoxWireframe(b, 0.5, SelectionColor)

	if len(v) != BBoxWireframeVertexCount*LineVertexFloats {
		t.Fatalf("expected %d floats, got %d", BBoxWireframeVertexCount*LineVertexFloats, len(v))
	}

	lo, hi := mgl32.Vec3{-0.5, -0.5, -0.5}, mgl32.Vec3{1.5, 2.5, 3.5}
	for i := 0; i < len(v); i += LineVertexFloats {
		p := mgl32.Vec3{v[i], v[i+1], v[i+2]}
		for a := 0; a < 3; a++ {
			if p[a] != lo[a] && p[a] != hi[a] {
				t.Fatalf("vertex %d not on a padded corner: %v", i/LineVertexFloats, p)
			}
		}
		if c := (mgl32.Vec3{v[i+3], v[i+4], v[i+5]}); c != SelectionColor {
			t.Fatalf("vertex %d has colour %v", i/LineVertexFloats, c)
		}
	}
}

func TestAxesLines(t *testing.T) {
	v := AxesLines(5)
	if len(v) != 6*LineVertexFloats {
		t.Fatalf("expected 3 lines, got %d floats", len(v))
	}
	// Second vertex is the X tip
	if v[6] != 5 || v[7] != 0 || v[8] != 0 {
		t.Errorf("unexpected X tip %v", v[6:9])
	}
	// Z tip is last
	if v[32] != 5 {
		t.Errorf("unexpected Z tip %v", v[30:33])
	}
}

func TestNewScreenshotCaptureRejectsFormat(t *testing.T) {
	if _, err := NewScreenshotCapture(t.TempDir(), "shot", "gif"); err == nil {
		t.Error("expected error for gif")
	}
}

func TestCaptureFromPixelsFlips(t *testing.T) {
	tests := []struct {
		format string
		decode func(data []byte) (r, g, b uint32, err error)
	}{
		{"png", func(data []byte) (uint32, uint32, uint32, error) {
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				return 0, 0, 0, err
			}
			r, g, b, _ := img.At(0, 0).RGBA()
			return r, g, b, nil
		}},
		{"webp", func(data []byte) (uint32, uint32, uint32, error) {
			img, err := webp.Decode(bytes.NewReader(data))
			if err != nil {
				return 0, 0, 0, err
			}
			r, g, b, _ := img.At(0, 0).RGBA()
			return r, g, b, nil
		}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "shots")
			sc, err := NewScreenshotCapture(dir, "glbview", tt.format)
			if err != nil {
				t.Fatal(err)
			}
			sc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

			// 1x2: GL bottom row red, top row blue
			pixels := []byte{
				255, 0, 0, 255,
				0, 0, 255, 255,
			}
			name, err := sc.CaptureFromPixels(pixels, 1, 2)
			if err != nil {
				t.Fatalf("capture failed: %v", err)
			}
			if !strings.HasSuffix(name, "glbview_2024-05-01_12-00-00.000."+tt.format) {
				t.Errorf("unexpected file name %s", name)
			}

			data, err := os.ReadFile(name)
			if err != nil {
				t.Fatal(err)
			}
			r, _, b, err := tt.decode(data)
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if r != 0 || b != 0xffff {
				t.Errorf("expected top-left blue after flip, got r=%d b=%d", r, b)
			}
		})
	}
}

func TestCaptureFromPixelsSizeMismatch(t *testing.T) {
	sc, _ := NewScreenshotCapture(t.TempDir(), "x", "png")
	if _, err := sc.CaptureFromPixels(make([]byte, 3), 1, 1); err == nil {
		t.Error("expected size mismatch error")
	}
}
