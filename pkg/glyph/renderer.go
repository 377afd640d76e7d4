package glyph

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/tagcloud/pkg/fonts"
)

type faceKey struct {
	family, style, weight string
	size                  float64
}

// Renderer is an [Oracle] backed by fogleman/gg and TrueType fonts.
//
// Faces are cached per (font, size). A Renderer and the surfaces it creates
// are not safe for concurrent use; create one per layout pass.
type Renderer struct {
	registry *fonts.Registry
	faces    map[faceKey]font.Face
}

// NewRenderer returns a renderer resolving fonts from reg, or from
// [fonts.Default] when reg is nil.
func NewRenderer(reg *fonts.Registry) *Renderer {
	if reg == nil {
		reg = fonts.Default()
	}
	return &Renderer{registry: reg, faces: make(map[faceKey]font.Face)}
}

// Face returns the cached face for f.
func (r *Renderer) Face(f Font) font.Face {
	k := faceKey{
		family: fonts.NormalizeFamily(f.Family),
		style:  fonts.NormalizeStyle(f.Style),
		weight: fonts.NormalizeWeight(f.Weight),
		size:   f.Size,
	}
	if face, ok := r.faces[k]; ok {
		return face
	}
	face := fonts.Face(r.registry.Lookup(k.family, k.style, k.weight), f.Size)
	r.faces[k] = face
	return face
}

// Measure returns the advance width of text and the face's line height.
func (r *Renderer) Measure(text string, f Font) (Extent, error) {
	if f.Size <= 0 {
		return Extent{}, nil
	}
	face := r.Face(f)
	m := face.Metrics()
	return Extent{
		Width:  float64(font.MeasureString(face, text)) / 64,
		Height: float64(m.Ascent+m.Descent) / 64,
	}, nil
}

// Close releases all cached faces.
func (r *Renderer) Close() error {
	for k, face := range r.faces {
		face.Close()
		delete(r.faces, k)
	}
	return nil
}

// NewSurface allocates a transparent RGBA surface.
func (r *Renderer) NewSurface(width, height int) Surface {
	dc := gg.NewContext(width, height)
	return &ggSurface{r: r, dc: dc, img: dc.Image().(*image.RGBA)}
}

type ggSurface struct {
	r   *Renderer
	dc  *gg.Context
	img *image.RGBA
}

func (s *ggSurface) Width() int  { return s.dc.Width() }
func (s *ggSurface) Height() int { return s.dc.Height() }

func (s *ggSurface) Clear() {
	s.dc.SetColor(color.Transparent)
	s.dc.Clear()
}

func (s *ggSurface) DrawText(text string, f Font, x, y, rotation, outline float64) {
	dc := s.dc
	dc.Push()
	defer dc.Pop()

	dc.SetFontFace(s.r.Face(f))
	dc.SetColor(color.Black)
	dc.Translate(x, y)
	if rotation != 0 {
		dc.Rotate(gg.Radians(rotation))
	}
	// gg has no stroked text, so the outline is approximated by offset copies.
	if outline > 0 {
		for _, off := range outlineOffsets(outline) {
			dc.DrawStringAnchored(text, off.X, off.Y, 0.5, 0)
		}
	}
	dc.DrawStringAnchored(text, 0, 0, 0.5, 0)
}

func (s *ggSurface) Alpha(x, y int) uint8 {
	if !(image.Point{x, y}.In(s.img.Rect)) {
		return 0
	}
	return s.img.Pix[s.img.PixOffset(x, y)+3]
}

// outlineOffsets returns the eight compass offsets at distance d.
func outlineOffsets(d float64) []gg.Point {
	return []gg.Point{
		{X: -d, Y: -d}, {X: 0, Y: -d}, {X: d, Y: -d},
		{X: -d, Y: 0}, {X: d, Y: 0},
		{X: -d, Y: d}, {X: 0, Y: d}, {X: d, Y: d},
	}
}
