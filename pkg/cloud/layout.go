package cloud

import (
	"context"
	"image"
	"math"
	"slices"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/glyph"
)

// Draw is the final transform of one placed tag. X and Y are relative to
// the result's Origin and are scaled by its Scale.
type Draw struct {
	X, Y     float64
	Rotation float64
	FontSize float64
	Fill     string
	Font     glyph.Font
}

// Sink receives placed tags.
type Sink interface {
	DrawTag(text string, d Draw)
}

// SinkFunc adapts a function to [Sink].
type SinkFunc func(text string, d Draw)

func (f SinkFunc) DrawTag(text string, d Draw) { f(text, d) }

// Skipped records a tag that is not part of the rendered cloud.
type Skipped struct {
	RowIndex int
	Text     string
	Status   Status
	Err      error
}

// Result is the output of one layout pass.
type Result struct {
	Width, Height int
	Mode          Mode
	Font          glyph.Font

	// Scale is the uniform factor that makes the placed tags fill the
	// canvas; Origin is the canvas centre the tag coordinates are relative to.
	Scale  float64
	Origin image.Point

	// Bounds is the union of the placed occupancy rectangles in canvas
	// coordinates. It is empty when nothing was placed.
	Bounds image.Rectangle

	MinFontSize, MaxFontSize float64

	// Tags holds a snapshot of every tag in processing order.
	Tags    []Tag
	Skipped []Skipped
}

// Placed returns the placed tags in processing order.
func (r *Result) Placed() []Tag {
	var out []Tag
	for _, t := range r.Tags {
		if t.Placed {
			out = append(out, t)
		}
	}
	return out
}

// Transform maps tag coordinates to canvas coordinates.
func (r *Result) Transform(x, y float64) (float64, float64) {
	return float64(r.Origin.X) + r.Scale*x, float64(r.Origin.Y) + r.Scale*y
}

// Emit draws every placed tag, largest first.
func (r *Result) Emit(s Sink) {
	for _, t := range r.Tags {
		if !t.Placed {
			continue
		}
		s.DrawTag(t.Text, Draw{
			X:        float64(t.X),
			Y:        float64(t.Y),
			Rotation: t.Rotation,
			FontSize: t.FontSize,
			Fill:     t.Fill,
			Font:     r.Font.WithSize(t.FontSize),
		})
	}
}

// Layout runs one full pass over records.
func Layout(ctx context.Context, records []Record, p Params, oracle glyph.Oracle) (*Result, error) {
	return run(ctx, NewTags(records), p, oracle, nil)
}

// pass owns the scratch state of one layout run.
type pass struct {
	params Params
	board  *Board
	bounds Bounds
	raster rasterizer
}

func run(ctx context.Context, tags []*Tag, p Params, oracle glyph.Oracle, logger *log.Logger) (*Result, error) {
	p = p.withDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	for _, t := range tags {
		if err := errs.ValidateWeight(t.Text, t.Weight); err != nil {
			return nil, err
		}
	}

	angles := p.angleSet()
	for _, t := range tags {
		t.reset()
		t.Rotation = rotationFor(t, angles)
	}

	order := slices.Clone(tags)
	slices.SortStableFunc(order, func(a, b *Tag) int {
		switch {
		case a.Weight > b.Weight:
			return -1
		case a.Weight < b.Weight:
			return 1
		default:
			return a.RowIndex - b.RowIndex
		}
	})

	res := &Result{
		Width:  p.Width,
		Height: p.Height,
		Mode:   p.Mode,
		Font:   p.Font,
		Scale:  1,
		Origin: image.Pt(p.Width>>1, p.Height>>1),
	}
	if len(order) == 0 {
		return res, nil
	}

	top := order[0]
	fr, err := solveFontRange(oracle, top.Text, top.Rotation, p.Font, p.Width, p.Height)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "measure %q", top.Text)
	}
	res.MinFontSize, res.MaxFontSize = fr.Min, fr.Max

	scale := newLinearScale(order, p.Domain)
	for _, t := range order {
		t.SizeRatio = sizeRatio(t.Weight, top.Weight)
		t.FontSize = math.Floor(fr.Min + scale.ratio(t.Weight)*(fr.Max-fr.Min))
		t.Fill = p.Palette.Hex(t.SizeRatio)
	}

	ps := &pass{
		params: p,
		board:  NewBoard(p.Width, p.Height),
		raster: rasterizer{oracle: oracle, font: p.Font, padding: p.Padding},
	}
	cx, cy := p.Width>>1, p.Height>>1
	for i, t := range order {
		if err := ctx.Err(); err != nil {
			return nil, errs.Wrap(errs.ErrCodeTimeout, err, "layout pass cancelled after %d of %d tags", i, len(order))
		}
		t.X, t.Y = cx, cy
		if err := ps.raster.rasterize(order, i); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInternal, err, "rasterize %q", t.Text)
		}
		if t.Status == StatusPending {
			if t.HasText && ps.place(t) {
				ps.bounds.Add(t)
				t.Placed, t.Status = true, StatusPlaced
				t.X -= cx
				t.Y -= cy
			} else {
				t.Status = StatusUnplaceable
			}
		}
		if t.Status != StatusPlaced {
			res.Skipped = append(res.Skipped, Skipped{RowIndex: t.RowIndex, Text: t.Text, Status: t.Status, Err: t.Status.Err()})
			if logger != nil {
				logger.Debug("tag skipped", "row", t.RowIndex, "text", t.Text, "reason", t.Status)
			}
		}
	}

	if ps.bounds.Valid {
		res.Bounds = ps.bounds.Rect
		res.Scale = fitScale(ps.bounds.Rect, p.Width, p.Height)
	}
	res.Tags = make([]Tag, len(order))
	for i, t := range order {
		res.Tags[i] = *t
	}
	return res, nil
}

// fitScale returns the uniform factor that stretches b, which is positioned
// around the canvas centre, to fill the canvas.
func fitScale(b image.Rectangle, width, height int) float64 {
	w, h := float64(width), float64(height)
	s := math.Min(
		math.Min(w/math.Abs(float64(b.Max.X)-w/2), w/math.Abs(float64(b.Min.X)-w/2)),
		math.Min(h/math.Abs(float64(b.Max.Y)-h/2), h/math.Abs(float64(b.Min.Y)-h/2)),
	) / 2
	if math.IsInf(s, 0) || math.IsNaN(s) {
		return 1
	}
	return s
}
