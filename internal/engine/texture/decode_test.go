package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/bmp"
)

func checker() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 0, color.NRGBA{G: 255, A: 255})
	img.Set(0, 1, color.NRGBA{B: 255, A: 255})
	img.Set(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	return img
}

func TestDecodeFormats(t *testing.T) {
	var pngBuf, bmpBuf, webpBuf bytes.Buffer
	if err := png.Encode(&pngBuf, checker()); err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(&bmpBuf, checker()); err != nil {
		t.Fatal(err)
	}
	if err := nativewebp.Encode(&webpBuf, checker(), nil); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		data []byte
		hint string
	}{
		{"png", pngBuf.Bytes(), "3.png"},
		{"png by mime type", pngBuf.Bytes(), "image/png"},
		{"png without hint", pngBuf.Bytes(), ""},
		{"bmp", bmpBuf.Bytes(), "image/bmp"},
		{"webp", webpBuf.Bytes(), "image/webp"},
		{"tga", tgaChecker(), "sky.TGA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Decode(tt.data, tt.hint)
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
				t.Fatalf("unexpected size %v", img.Bounds())
			}
			if got := img.RGBAAt(0, 0); got != (color.RGBA{R: 255, A: 255}) {
				t.Errorf("top-left: expected red, got %v", got)
			}
			if got := img.RGBAAt(0, 1); got != (color.RGBA{B: 255, A: 255}) {
				t.Errorf("bottom-left: expected blue, got %v", got)
			}
		})
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode([]byte("not an image"), "x.png"); err == nil {
		t.Error("expected error for garbage data")
	}
}

func TestLoadPNGFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "3.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, checker()); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("top-right: expected green, got %v", got)
	}
}

func TestLoadJPEGFromDisk(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 16, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			src.SetRGBA(x, y, color.RGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "base.jpg")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := jpeg.Encode(f, src, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 8 {
		t.Fatalf("unexpected size %v", img.Bounds())
	}
	if r := img.RGBAAt(4, 4).R; r < 190 || r > 210 {
		t.Errorf("expected grey near 200, got %d", r)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load("/nonexistent/3.png"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestImageToRGBARebasesOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 7))
	src.SetRGBA(5, 5, color.RGBA{R: 9, A: 255})

	out := ImageToRGBA(src)
	if out.Bounds().Min != (image.Point{}) {
		t.Fatalf("expected origin at 0,0, got %v", out.Bounds())
	}
	if out.RGBAAt(0, 0).R != 9 {
		t.Errorf("expected pixel copied, got %v", out.RGBAAt(0, 0))
	}
}

func TestFlipVertical(t *testing.T) {
	img := ImageToRGBA(checker())
	flipped := FlipVertical(img)

	if flipped.RGBAAt(0, 0) != img.RGBAAt(0, 1) {
		t.Errorf("expected bottom row on top, got %v", flipped.RGBAAt(0, 0))
	}
	if flipped.RGBAAt(1, 1) != img.RGBAAt(1, 0) {
		t.Errorf("expected top row at bottom, got %v", flipped.RGBAAt(1, 1))
	}
}

// tgaChecker encodes checker() as an uncompressed 24-bit bottom-up TGA.
func tgaChecker() []byte {
	header := []byte{
		0, 0, 2, // no id, no colour map, true-colour
		0, 0, 0, 0, 0,
		0, 0, 0, 0, // origin
		2, 0, 2, 0, // 2x2
		24, 0,
	}
	src := checker()
	var pix []byte
	for y := 1; y >= 0; y-- {
		for x := 0; x < 2; x++ {
			c := src.NRGBAAt(x, y)
			pix = append(pix, c.B, c.G, c.R)
		}
	}
	return append(header, pix...)
}
