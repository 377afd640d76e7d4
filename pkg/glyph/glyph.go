package glyph

import "fmt"

// Font identifies a face at a pixel size.
type Font struct {
	Family string  `json:"family"`
	Style  string  `json:"style,omitempty"`
	Weight string  `json:"weight,omitempty"`
	Size   float64 `json:"size"`
}

// WithSize returns a copy of f at the given pixel size.
func (f Font) WithSize(size float64) Font {
	f.Size = size
	return f
}

// String renders f in CSS shorthand order ("italic bold 12px sans").
func (f Font) String() string {
	return fmt.Sprintf("%s %s %gpx %s", orDefault(f.Style, "normal"), orDefault(f.Weight, "normal"), f.Size, f.Family)
}

// Extent is the measured size of a run of text in device pixels.
type Extent struct {
	Width  float64
	Height float64
}

// Measurer reports the pixel extent of text set in a font.
type Measurer interface {
	Measure(text string, f Font) (Extent, error)
}

// Surface is an offscreen RGBA raster. Text drawn into it is anchored at the
// horizontal centre of its advance with the alphabetic baseline at (x, y),
// then rotated clockwise by rotation degrees around that anchor.
type Surface interface {
	Width() int
	Height() int
	Clear()
	DrawText(text string, f Font, x, y, rotation, outline float64)
	Alpha(x, y int) uint8
}

// Oracle measures text and creates scratch surfaces.
type Oracle interface {
	Measurer
	NewSurface(width, height int) Surface
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
