package cloud

import (
	"math"

	errs "github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/fonts"
	"github.com/matzehuels/tagcloud/pkg/glyph"
	"github.com/matzehuels/tagcloud/pkg/palette"
)

// Default layout parameters.
const (
	DefaultWidth   = 800
	DefaultHeight  = 600
	DefaultPadding = 1.0
)

// DefaultAngleRange alternates between horizontal and vertical words.
var DefaultAngleRange = AngleRange{Count: 2, From: 0, To: 90}

// AngleRange generates Count evenly spaced angles from From to To degrees,
// both inclusive.
type AngleRange struct {
	Count    int
	From, To float64
}

// Angles expands the range.
func (r AngleRange) Angles() []float64 {
	if r.Count <= 0 {
		return nil
	}
	div := float64(r.Count - 1)
	if r.Count == 1 {
		div = 1
	}
	step := (r.To - r.From) / div
	out := make([]float64, r.Count)
	for i := range out {
		out[i] = r.From + step*float64(i)
	}
	return out
}

func (r AngleRange) isZero() bool {
	return r == AngleRange{}
}

// Domain overrides the weight range of the numeric size scale.
type Domain struct {
	Min, Max float64
}

// ColorScale maps a size ratio in [0, 1] to a fill colour.
type ColorScale interface {
	Hex(t float64) string
}

// Params is the immutable input of one layout pass.
type Params struct {
	Width, Height int

	// Angles, when non-nil, is the explicit rotation set. Otherwise the set
	// is generated from AngleRange.
	Angles     []float64
	AngleRange AngleRange

	Mode    Mode
	Font    glyph.Font // Size is ignored
	Padding float64    // outline width drawn around each glyph, in pixels
	Domain  *Domain
	Palette ColorScale
}

// DefaultParams returns an 800×600 spiral layout rotating words by 0 or 90
// degrees in the Go sans font.
func DefaultParams() Params {
	return Params{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		AngleRange: DefaultAngleRange,
		Mode:       ModeSpiral,
		Font:       glyph.Font{Family: fonts.DefaultFamily, Style: fonts.StyleNormal, Weight: fonts.WeightNormal},
		Padding:    DefaultPadding,
		Palette:    palette.Default(),
	}
}

// withDefaults fills unset optional fields. Canvas size and an explicitly
// empty angle set are left alone so Validate can reject them.
func (p Params) withDefaults() Params {
	if p.Mode == "" {
		p.Mode = ModeSpiral
	}
	if p.Angles == nil && p.AngleRange.isZero() {
		p.AngleRange = DefaultAngleRange
	}
	if p.Font.Family == "" {
		p.Font.Family = fonts.DefaultFamily
	}
	if p.Palette == nil {
		p.Palette = palette.Default()
	}
	return p
}

// Validate reports an INVALID_CONFIGURATION error for parameters no pass can
// run with.
func (p Params) Validate() error {
	if err := errs.ValidateCanvas(p.Width, p.Height); err != nil {
		return err
	}
	if err := errs.ValidateMode(string(p.Mode)); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfiguration, err, "invalid placement mode")
	}
	angles := p.angleSet()
	if len(angles) == 0 {
		return errs.New(errs.ErrCodeInvalidConfiguration, "angle set is empty")
	}
	for _, a := range angles {
		if !finite(a) {
			return errs.New(errs.ErrCodeInvalidConfiguration, "angle must be finite, got %v", a)
		}
	}
	if !finite(p.Padding) || p.Padding < 0 {
		return errs.New(errs.ErrCodeInvalidConfiguration, "padding must be a non-negative number, got %v", p.Padding)
	}
	if d := p.Domain; d != nil && (!finite(d.Min) || !finite(d.Max)) {
		return errs.New(errs.ErrCodeInvalidConfiguration, "scale domain must be finite, got [%v, %v]", d.Min, d.Max)
	}
	return nil
}

// angleSet returns the explicit angles, or the generated range.
func (p Params) angleSet() []float64 {
	if p.Angles != nil {
		return p.Angles
	}
	return p.AngleRange.Angles()
}

// rotationFor assigns the rotation for a tag: its own angle when set,
// otherwise angles[rowIndex % len(angles)].
func rotationFor(t *Tag, angles []float64) float64 {
	if t.Angle != nil {
		return *t.Angle
	}
	return angles[t.RowIndex%len(angles)]
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
