// Package palette maps normalized values onto colours.
//
// A [Linear] scale blends between colour stops in CIE L*a*b* space using
// go-colorful, which keeps perceived lightness changing evenly along the
// scale. The tag cloud uses it to colour each word by its size ratio.
package palette

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultBase is the base colour of the default single-hue progression.
const DefaultBase = "#3b5998"

// tintAmount is how far toward white the light end of a single-hue
// progression sits.
const tintAmount = 0.7

var white = colorful.Color{R: 1, G: 1, B: 1}

// Linear is a piecewise-linear colour scale over [0, 1].
type Linear struct {
	stops []colorful.Color
}

// NewLinear returns a scale through the given stops, evenly spaced.
// A single stop yields a constant scale.
func NewLinear(stops ...colorful.Color) *Linear {
	return &Linear{stops: append([]colorful.Color(nil), stops...)}
}

// SingleHue returns a scale from a light tint of base (t=0) to base (t=1).
func SingleHue(base colorful.Color) *Linear {
	return NewLinear(base.BlendLab(white, tintAmount).Clamped(), base)
}

// Default returns the single-hue progression over [DefaultBase].
func Default() *Linear {
	base, _ := colorful.Hex(DefaultBase)
	return SingleHue(base)
}

// At returns the colour at t, clamped to [0, 1]. NaN maps to 0.
func (l *Linear) At(t float64) colorful.Color {
	switch len(l.stops) {
	case 0:
		return colorful.Color{}
	case 1:
		return l.stops[0]
	}
	if math.IsNaN(t) || t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	seg := float64(len(l.stops) - 1)
	i := int(t * seg)
	if i >= len(l.stops)-1 {
		return l.stops[len(l.stops)-1]
	}
	local := t*seg - float64(i)
	return l.stops[i].BlendLab(l.stops[i+1], local).Clamped()
}

// Hex returns the colour at t as "#rrggbb".
func (l *Linear) Hex(t float64) string {
	return l.At(t).Hex()
}

// Stops returns the stop colours as hex strings.
func (l *Linear) Stops() []string {
	out := make([]string, len(l.stops))
	for i, c := range l.stops {
		out[i] = c.Hex()
	}
	return out
}

// Parse builds a scale from a palette spec.
//
// A single colour ("#3b5998") yields a single-hue progression ending at that
// colour. A comma-separated list ("#eee,#3b5998,#000") yields a linear scale
// through the listed stops. An empty spec yields [Default].
func Parse(spec string) (*Linear, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Default(), nil
	}
	parts := strings.Split(spec, ",")
	stops := make([]colorful.Color, 0, len(parts))
	for _, p := range parts {
		c, err := parseColor(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		stops = append(stops, c)
	}
	if len(stops) == 1 {
		return SingleHue(stops[0]), nil
	}
	return NewLinear(stops...), nil
}

func parseColor(s string) (colorful.Color, error) {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	// colorful.Hex accepts the short form too.
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}
