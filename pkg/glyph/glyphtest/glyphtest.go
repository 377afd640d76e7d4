// Package glyphtest provides a deterministic glyph oracle for tests.
//
// BlockOracle draws every non-space rune as a solid block, so sprites and
// collisions can be reasoned about exactly without a font rasterizer.
package glyphtest

import (
	"math"
	"unicode"

	"github.com/matzehuels/tagcloud/pkg/glyph"
)

// Default block proportions, relative to the font size.
const (
	DefaultAdvance = 0.6
	DefaultAscent  = 0.8
	DefaultDescent = 0.2
)

// BlockOracle measures each rune as Advance*size wide and draws the
// non-space runs of the text as filled rectangles spanning Ascent*size above
// the baseline to Descent*size below it. It counts calls so tests can assert
// caching behaviour.
type BlockOracle struct {
	Advance float64
	Ascent  float64
	Descent float64

	Measures int
	Surfaces int
	Draws    int
}

// New returns a BlockOracle with the default proportions.
func New() *BlockOracle {
	return &BlockOracle{Advance: DefaultAdvance, Ascent: DefaultAscent, Descent: DefaultDescent}
}

// Reset zeroes the call counters.
func (o *BlockOracle) Reset() {
	o.Measures, o.Surfaces, o.Draws = 0, 0, 0
}

func (o *BlockOracle) Measure(text string, f glyph.Font) (glyph.Extent, error) {
	o.Measures++
	n := len([]rune(text))
	return glyph.Extent{
		Width:  float64(n) * o.Advance * f.Size,
		Height: (o.Ascent + o.Descent) * f.Size,
	}, nil
}

func (o *BlockOracle) NewSurface(width, height int) glyph.Surface {
	o.Surfaces++
	return &surface{o: o, w: width, h: height, alpha: make([]uint8, width*height)}
}

type surface struct {
	o     *BlockOracle
	w, h  int
	alpha []uint8
}

func (s *surface) Width() int  { return s.w }
func (s *surface) Height() int { return s.h }

func (s *surface) Clear() { clear(s.alpha) }

func (s *surface) Alpha(x, y int) uint8 {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return 0
	}
	return s.alpha[y*s.w+x]
}

// DrawText fills, for every run of non-space runes, the rectangle the run
// occupies in local (unrotated) coordinates, grown by outline on each side.
func (s *surface) DrawText(text string, f glyph.Font, x, y, rotation, outline float64) {
	s.o.Draws++
	runes := []rune(text)
	adv := s.o.Advance * f.Size
	left := -float64(len(runes)) * adv / 2
	top := -s.o.Ascent*f.Size - outline
	bottom := s.o.Descent*f.Size + outline

	rad := rotation * math.Pi / 180
	sin, cos := math.Sincos(rad)

	for start := 0; start < len(runes); {
		if unicode.IsSpace(runes[start]) {
			start++
			continue
		}
		end := start
		for end < len(runes) && !unicode.IsSpace(runes[end]) {
			end++
		}
		x0 := left + float64(start)*adv - outline
		x1 := left + float64(end)*adv + outline
		s.fillRotated(x, y, sin, cos, x0, top, x1, bottom)
		start = end
	}
}

// fillRotated sets every pixel whose centre, mapped back into local
// coordinates, falls inside [x0,x1)×[y0,y1).
func (s *surface) fillRotated(ox, oy, sin, cos, x0, y0, x1, y1 float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range [][2]float64{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		px := ox + c[0]*cos - c[1]*sin
		py := oy + c[0]*sin + c[1]*cos
		minX, maxX = math.Min(minX, px), math.Max(maxX, px)
		minY, maxY = math.Min(minY, py), math.Max(maxY, py)
	}
	for py := max(0, int(math.Floor(minY))); py < min(s.h, int(math.Ceil(maxY))); py++ {
		for px := max(0, int(math.Floor(minX))); px < min(s.w, int(math.Ceil(maxX))); px++ {
			dx, dy := float64(px)+0.5-ox, float64(py)+0.5-oy
			lx := dx*cos + dy*sin
			ly := -dx*sin + dy*cos
			if lx >= x0 && lx < x1 && ly >= y0 && ly < y1 {
				s.alpha[py*s.w+px] = 255
			}
		}
	}
}
