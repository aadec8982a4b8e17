package ui2d

import (
	"image"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Printable ASCII range baked into the atlas.
const (
	firstGlyph   = ' '
	lastGlyph    = '~'
	atlasColumns = 16
)

// Atlas is a grid of fixed-width glyph cells in a single-channel image.
type Atlas struct {
	Image  *image.Alpha
	GlyphW int
	GlyphH int
}

// BuildAtlas rasterises printable ASCII from a fixed-width face.
func BuildAtlas(face *basicfont.Face) *Atlas {
	count := int(lastGlyph-firstGlyph) + 1
	rows := (count + atlasColumns - 1) / atlasColumns
	a := &Atlas{
		Image:  image.NewAlpha(image.Rect(0, 0, atlasColumns*face.Advance, rows*face.Height)),
		GlyphW: face.Advance,
		GlyphH: face.Height,
	}

	d := &font.Drawer{Dst: a.Image, Src: image.Opaque, Face: face}
	for r := firstGlyph; r <= lastGlyph; r++ {
		i := int(r - firstGlyph)
		col, row := i%atlasColumns, i/atlasColumns
		d.Dot = fixed.P(col*a.GlyphW, row*a.GlyphH+face.Ascent)
		d.DrawString(string(r))
	}
	return a
}

// GlyphUV returns the texture rectangle of r. Runes outside the atlas
// map to '?'.
func (a *Atlas) GlyphUV(r rune) (u0, v0, u1, v1 float32) {
	if r < firstGlyph || r > lastGlyph {
		r = '?'
	}
	i := int(r - firstGlyph)
	col, row := i%atlasColumns, i/atlasColumns
	b := a.Image.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())

	u0 = float32(col*a.GlyphW) / w
	v0 = float32(row*a.GlyphH) / h
	u1 = float32((col+1)*a.GlyphW) / w
	v1 = float32((row+1)*a.GlyphH) / h
	return u0, v0, u1, v1
}

// Measure returns the size of text at scale. Newlines start a new line.
func (a *Atlas) Measure(text string, scale float32) (float32, float32) {
	if text == "" {
		return 0, 0
	}
	lines := strings.Split(text, "\n")
	widest := 0
	for _, l := range lines {
		widest = max(widest, len([]rune(l)))
	}
	return float32(widest*a.GlyphW) * scale, float32(len(lines)*a.GlyphH) * scale
}

// Font is an atlas uploaded as a GL texture.
type Font struct {
	atlas *Atlas
	texID uint32
}

// NewFont bakes the 7x13 bitmap face and uploads it.
// Must be called with a current GL context.
func NewFont() *Font {
	f := &Font{atlas: BuildAtlas(basicfont.Face7x13)}
	img := f.atlas.Image
	b := img.Bounds()

	gl.GenTextures(1, &f.texID)
	gl.BindTexture(gl.TEXTURE_2D, f.texID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return f
}

// TextureID returns the GL texture holding the atlas.
func (f *Font) TextureID() uint32 { return f.texID }

// GlyphSize returns the unscaled glyph cell size.
func (f *Font) GlyphSize() (int, int) { return f.atlas.GlyphW, f.atlas.GlyphH }

// GetGlyphUV returns the texture rectangle of r.
func (f *Font) GetGlyphUV(r rune) (u0, v0, u1, v1 float32) { return f.atlas.GlyphUV(r) }

// MeasureText returns the size of text at scale.
func (f *Font) MeasureText(text string, scale float32) (float32, float32) {
	return f.atlas.Measure(text, scale)
}

// Close deletes the texture.
func (f *Font) Close() {
	if f.texID != 0 {
		gl.DeleteTextures(1, &f.texID)
		f.texID = 0
	}
}
