package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/document"
	"github.com/matzehuels/tagcloud/pkg/fonts"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	fontFamily string
}

// WithBackground fills the canvas with a colour before drawing words.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithFontFamily overrides the CSS font-family derived from the layout font.
func WithFontFamily(css string) SVGOption {
	return func(r *svgRenderer) { r.fontFamily = css }
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG renders the layout as a standalone SVG document.
func RenderSVG(l document.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		l.Width, l.Height, l.Width, l.Height)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(r.background))
	}

	family := r.fontFamily
	if family == "" {
		family = fonts.CSSFamily(l.Font.Family)
	}
	fmt.Fprintf(&buf, `  <g transform="matrix(%s 0 0 %s %s %s)" font-family="%s"%s>`+"\n",
		num(l.Scale), num(l.Scale), num(l.OriginX), num(l.OriginY), escapeXML(family), fontAttrs(l.Font))

	l.Emit(&svgSink{buf: &buf})

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

type svgSink struct {
	buf *bytes.Buffer
}

func (s *svgSink) DrawTag(text string, d cloud.Draw) {
	fill := ""
	if d.Fill != "" {
		fill = fmt.Sprintf(` fill="%s"`, escapeXML(d.Fill))
	}
	fmt.Fprintf(s.buf, `    <text text-anchor="middle" transform="translate(%s,%s)rotate(%s)" style="font-size:%spx"%s>%s</text>`+"\n",
		num(d.X), num(d.Y), num(d.Rotation), num(d.FontSize), fill, escapeXML(text))
}

func fontAttrs(f document.Font) string {
	var attrs string
	if fonts.NormalizeStyle(f.Style) == fonts.StyleItalic {
		attrs += ` font-style="italic"`
	}
	switch fonts.NormalizeWeight(f.Weight) {
	case fonts.WeightBold:
		attrs += ` font-weight="bold"`
	case fonts.WeightMedium:
		attrs += ` font-weight="500"`
	}
	return attrs
}

// num formats f with at most two decimals and no trailing zeros.
func num(f float64) string {
	r := math.Round(f*100) / 100
	if r == 0 {
		r = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
