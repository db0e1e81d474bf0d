package content

import "fmt"

// SurfaceFormat is the pixel layout of a texture.
type SurfaceFormat uint32

const (
	SurfaceColor SurfaceFormat = iota
	SurfaceBgr565
	SurfaceBgra5551
	SurfaceBgra4444
	SurfaceDxt1
	SurfaceDxt3
	SurfaceDxt5
	SurfaceNormalizedByte2
	SurfaceNormalizedByte4
	SurfaceRgba1010102
	SurfaceRg32
	SurfaceRgba64
	SurfaceAlpha8
	SurfaceSingle
	SurfaceVector2
	SurfaceVector4
	SurfaceHalfSingle
	SurfaceHalfVector2
	SurfaceHalfVector4
	SurfaceHdrBlendable

	surfaceFormatCount
)

var surfaceFormatNames = [surfaceFormatCount]string{
	"Color",
	"Bgr565",
	"Bgra5551",
	"Bgra4444",
	"Dxt1",
	"Dxt3",
	"Dxt5",
	"NormalizedByte2",
	"NormalizedByte4",
	"Rgba1010102",
	"Rg32",
	"Rgba64",
	"Alpha8",
	"Single",
	"Vector2",
	"Vector4",
	"HalfSingle",
	"HalfVector2",
	"HalfVector4",
	"HdrBlendable",
}

// Valid reports whether f is one of the known formats.
func (f SurfaceFormat) Valid() bool {
	return f < surfaceFormatCount
}

func (f SurfaceFormat) String() string {
	if f.Valid() {
		return surfaceFormatNames[f]
	}
	return fmt.Sprintf("SurfaceFormat(%d)", uint32(f))
}

// Texture2D is a 2-D texture with its mip chain. MipLevels[0] is the full
// size image.
type Texture2D struct {
	Format    SurfaceFormat
	Width     uint32
	Height    uint32
	MipLevels [][]byte
}

// Rectangle is an integer rectangle.
type Rectangle struct {
	X, Y, Width, Height int32
}

// Vector3 is a 3-component float vector.
type Vector3 struct {
	X, Y, Z float32
}

// SpriteFont is a bitmap font. Glyphs, Cropping and CharMap are parallel
// slices in well-formed files.
type SpriteFont struct {
	Texture           Texture2D
	Glyphs            []Rectangle
	Cropping          []Rectangle
	CharMap           []rune
	VerticalSpacing   int32
	HorizontalSpacing float32
	Kerning           []Vector3
	DefaultChar       *rune
}

// Glyph describes one character of a SpriteFont.
type Glyph struct {
	Char     rune
	Bounds   Rectangle
	Cropping Rectangle
	Kerning  Vector3
}

// Glyph returns the glyph for c. Missing entries in the parallel slices
// are left zero.
func (f *SpriteFont) Glyph(c rune) (Glyph, bool) {
	for i, ch := range f.CharMap {
		if ch != c {
			continue
		}
		g := Glyph{Char: c}
		if i < len(f.Glyphs) {
			g.Bounds = f.Glyphs[i]
		}
		if i < len(f.Cropping) {
			g.Cropping = f.Cropping[i]
		}
		if i < len(f.Kerning) {
			g.Kerning = f.Kerning[i]
		}
		return g, true
	}
	return Glyph{}, false
}
