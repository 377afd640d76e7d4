package cloud

import (
	"math"
	"sort"

	"github.com/matzehuels/tagcloud/pkg/glyph"
)

// fitFraction is the share of each canvas side the top tag may occupy.
const fitFraction = 3

// fontRange is the output range of the numeric size scale.
type fontRange struct {
	Min, Max float64
}

// solveFontRange finds the largest integer font size at which text, rotated
// by rotation degrees about its centre, fits within a third of the canvas.
//
// Sizes are searched in [max(1, ⌈h/50⌉), max(lo, ⌊h/3⌋)]. When no size fits
// exactly the largest size that fits is taken; when none fits, the smallest.
// The lower end of the returned range is h/50.
func solveFontRange(m glyph.Measurer, text string, rotation float64, f glyph.Font, width, height int) (fontRange, error) {
	limitW := float64(width) / fitFraction
	limitH := float64(height) / fitFraction
	minSize := float64(height) / 50

	lo := max(1, int(math.Ceil(minSize)))
	hi := max(lo, int(limitH))
	n := hi - lo + 1

	var measureErr error
	compare := func(size int) int {
		if measureErr != nil {
			return -1
		}
		e, err := m.Measure(text, f.WithSize(float64(size)))
		if err != nil {
			measureErr = err
			return -1
		}
		bw, bh := rotatedExtent(e.Width, e.Height, rotation)
		switch {
		case bw > limitW || bh > limitH:
			return -1
		case bw == limitW || bh == limitH:
			return 0
		default:
			return 1
		}
	}

	// First size that does not fit with room to spare.
	idx := sort.Search(n, func(i int) bool { return compare(lo+i) <= 0 })
	if measureErr != nil {
		return fontRange{}, measureErr
	}
	if idx == n || compare(lo+idx) != 0 {
		idx--
	}
	idx = min(max(idx, 0), n-1)
	return fontRange{Min: minSize, Max: float64(lo + idx)}, measureErr
}

// rotatedExtent returns the axis-aligned size of a w×h box rotated by deg
// degrees about its centre.
func rotatedExtent(w, h, deg float64) (float64, float64) {
	if deg == 0 {
		return w, h
	}
	sin, cos := math.Sincos(deg * math.Pi / 180)
	sin, cos = math.Abs(sin), math.Abs(cos)
	return w*cos + h*sin, w*sin + h*cos
}
