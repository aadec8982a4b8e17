// Package texture provides image decoding and texture processing utilities.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

// The tga package registers itself with an empty magic string, which
// matches everything, so image.Decode cannot be used while it is linked.
var decoders = []struct {
	match  func([]byte) bool
	decode func(io.Reader) (image.Image, error)
}{
	{prefix("\x89PNG\r\n\x1a\n"), png.Decode},
	{prefix("\xff\xd8"), jpeg.Decode},
	{prefix("BM"), bmp.Decode},
	{func(b []byte) bool {
		return len(b) >= 12 && string(b[:4]) == "RIFF" && string(b[8:12]) == "WEBP"
	}, webp.Decode},
}

func prefix(magic string) func([]byte) bool {
	return func(b []byte) bool { return bytes.HasPrefix(b, []byte(magic)) }
}

// Decode decodes PNG, JPEG, BMP, WebP or TGA data into RGBA.
// hint is a file name or MIME type; TGA has no magic number and is only
// recognised through it.
func Decode(data []byte, hint string) (*image.RGBA, error) {
	var img image.Image
	var err error

	switch {
	case isTGA(hint):
		img, err = tga.Decode(bytes.NewReader(data))
	default:
		err = fmt.Errorf("unknown image format")
		for _, d := range decoders {
			if d.match(data) {
				img, err = d.decode(bytes.NewReader(data))
				break
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", hint, err)
	}
	return ImageToRGBA(img), nil
}

// Load reads and decodes an image file.
func Load(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read texture: %w", err)
	}
	return Decode(data, filepath.Base(path))
}

func isTGA(hint string) bool {
	h := strings.ToLower(hint)
	return strings.HasSuffix(h, ".tga") || h == "image/tga" || h == "image/x-tga"
}

// ImageToRGBA converts any image.Image to *image.RGBA with its origin at (0, 0).
func ImageToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// FlipVertical returns a copy of img with rows in reverse order.
// GL expects the first row at the bottom.
func FlipVertical(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	h := b.Dy()
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+b.Dx()*4]
		dst := out.Pix[(h-1-y)*out.Stride:]
		copy(dst, src)
	}
	return out
}
