package cloud

import (
	"math"

	"github.com/matzehuels/tagcloud/pkg/glyph"
)

// Raster working area. Sprites are batched into one strip of this size.
const (
	workingWidthWords = 64
	workingWidth      = workingWidthWords * wordBits
	workingHeight     = 2048
)

// rasterizer turns tags into sprites using one scratch surface.
type rasterizer struct {
	oracle  glyph.Oracle
	surface glyph.Surface
	font    glyph.Font
	padding float64
}

// cell returns the raster cell size of t: the measured advance by twice the
// font size, expanded to the rotated corner extent, with the width rounded
// up to whole words. Glyphs are drawn one pixel larger than their layout
// size.
func (r *rasterizer) cell(t *Tag) (w, h int, err error) {
	e, err := r.oracle.Measure(t.Text, r.font.WithSize(t.FontSize+1))
	if err != nil {
		return 0, 0, err
	}
	fw, fh := e.Width, 2*math.Floor(t.FontSize)
	if t.Rotation != 0 {
		sin, cos := math.Sincos(t.Rotation * math.Pi / 180)
		wcr, wsr, hcr, hsr := fw*cos, fw*sin, fh*cos, fh*sin
		fw = math.Max(math.Abs(wcr+hsr), math.Abs(wcr-hsr))
		fh = math.Max(math.Abs(wsr+hcr), math.Abs(wsr-hcr))
	}
	return roundUpWord(int(math.Ceil(fw))), int(fh), nil
}

// rasterize builds sprites for tags[i] and as many of the following
// not-yet-rasterized tags as fit in the strip. Cells are laid left to right
// and wrap into rows; the batch ends when the strip height is exhausted.
//
// Each cell is read back right after its glyph is drawn, so a sprite never
// picks up ink from glyphs drawn after it. The strip is not cleared between
// cells: ink overhanging into a later cell is read with that cell. It only
// adds set bits, so the later sprite is more conservative but still never
// overlaps. A tag whose cell exceeds the working area on its own is marked
// StatusRasterOverflow.
func (r *rasterizer) rasterize(tags []*Tag, i int) error {
	if tags[i].rastered {
		return nil
	}
	if r.surface == nil {
		r.surface = r.oracle.NewSurface(workingWidth, workingHeight)
	}
	s := r.surface
	s.Clear()

	x, y, rowH := 0, 0, 0
	for _, t := range tags[i:] {
		if t.rastered {
			continue
		}
		w, h, err := r.cell(t)
		if err != nil {
			return err
		}
		if w > workingWidth || h > workingHeight {
			t.rastered = true
			t.Status = StatusRasterOverflow
			continue
		}
		if x+w > workingWidth {
			x, y, rowH = 0, y+rowH, 0
		}
		if y+h > workingHeight {
			break
		}
		rowH = max(rowH, h)

		s.DrawText(t.Text, r.font.WithSize(t.FontSize+1),
			float64(x+w>>1), float64(y+h>>1), t.Rotation, r.padding)

		t.Width = w
		t.X1, t.Y1 = w>>1, h>>1
		t.X0, t.Y0 = -t.X1, -t.Y1
		readSprite(s, t, x, y)
		x += w
	}
	return nil
}

// readSprite packs the inked pixels of t's cell at (x, y) into t.Sprite and
// trims the glyph box to the first and last inked rows. A cell without ink
// marks t degenerate.
func readSprite(s glyph.Surface, t *Tag, x, y int) {
	t.rastered = true
	w, w32, h := t.Width, t.Words(), t.Y1-t.Y0
	sprite := make([]uint32, h*w32)
	first, last := -1, -1
	for j := 0; j < h; j++ {
		row := sprite[j*w32 : (j+1)*w32]
		var seen uint32
		for i := 0; i < w; i++ {
			if s.Alpha(x+i, y+j) != 0 {
				m := bit(i)
				row[i>>5] |= m
				seen |= m
			}
		}
		if seen != 0 {
			if first < 0 {
				first = j
			}
			last = j
		}
	}

	if first < 0 {
		t.HasText = false
		t.Sprite = nil
		t.Status = StatusDegenerate
		return
	}
	t.HasText = true
	t.Sprite = sprite[first*w32 : (last+1)*w32]
	t.Y1 = t.Y0 + last + 1
	t.Y0 += first
}
