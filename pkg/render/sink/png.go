package sink

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/document"
	errs "github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/fonts"
	"github.com/matzehuels/tagcloud/pkg/glyph"
	"github.com/matzehuels/tagcloud/pkg/render"
)

// DefaultPNGScale renders PNGs at 2x resolution.
const DefaultPNGScale = 2.0

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts  []SVGOption
	scale    float64
	thumbW   int
	thumbH   int
	rsvg     bool
	registry *fonts.Registry
}

// WithPNGSVGOptions passes SVG options (such as the background) through to
// the PNG renderer.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithThumbnail downsamples the image to fit within width×height. A zero
// dimension is derived from the other, preserving the aspect ratio.
func WithThumbnail(width, height int) PNGOption {
	return func(r *pngRenderer) { r.thumbW, r.thumbH = width, height }
}

// WithRSVG renders the SVG output through rsvg-convert instead of the native
// rasterizer.
func WithRSVG() PNGOption {
	return func(r *pngRenderer) { r.rsvg = true }
}

// WithRegistry sets the fonts used by the native rasterizer.
func WithRegistry(reg *fonts.Registry) PNGOption {
	return func(r *pngRenderer) { r.registry = reg }
}

// RenderPNG renders the layout as PNG.
func RenderPNG(ctx context.Context, l document.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: DefaultPNGScale}
	for _, opt := range opts {
		opt(&r)
	}
	if err := errs.ValidateRenderSize(l.Width, l.Height, r.scale); err != nil {
		return nil, err
	}
	if err := errs.ValidateThumbnail(r.thumbW, r.thumbH); err != nil {
		return nil, err
	}

	if r.rsvg {
		data, err := render.ToPNG(ctx, RenderSVG(l, r.svgOpts...), r.scale)
		if err != nil || !r.thumbnail() {
			return data, err
		}
		img, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode png: %w", err)
		}
		return r.encode(img)
	}

	img, err := r.rasterize(l)
	if err != nil {
		return nil, err
	}
	return r.encode(img)
}

func (r *pngRenderer) encode(img image.Image) ([]byte, error) {
	img, err := r.fit(img)
	if err != nil {
		return nil, err
	}
	return encodePNG(img)
}

// Rasterize draws the layout into an image at the given scale.
func Rasterize(l document.Layout, scale float64, opts ...SVGOption) (image.Image, error) {
	r := pngRenderer{scale: scale, svgOpts: opts}
	return r.rasterize(l)
}

func (r *pngRenderer) rasterize(l document.Layout) (image.Image, error) {
	if err := errs.ValidateRenderSize(l.Width, l.Height, r.scale); err != nil {
		return nil, err
	}
	svg := newSVGRenderer(r.svgOpts...)

	w := int(math.Ceil(float64(l.Width) * r.scale))
	h := int(math.Ceil(float64(l.Height) * r.scale))
	dc := gg.NewContext(w, h)
	if svg.background != "" {
		dc.SetHexColor(svg.background)
		dc.Clear()
	}

	faces := glyph.NewRenderer(r.registry)
	defer faces.Close()

	l.Emit(cloud.SinkFunc(func(text string, d cloud.Draw) {
		x, y := l.Transform(d.X, d.Y)
		f := d.Font.WithSize(d.FontSize * l.Scale * r.scale)
		if f.Size <= 0 {
			return
		}

		dc.Push()
		defer dc.Pop()
		dc.SetFontFace(faces.Face(f))
		if d.Fill != "" {
			dc.SetHexColor(d.Fill)
		} else {
			dc.SetRGB(0, 0, 0)
		}
		dc.Translate(x*r.scale, y*r.scale)
		if d.Rotation != 0 {
			dc.Rotate(gg.Radians(d.Rotation))
		}
		dc.DrawStringAnchored(text, 0, 0, 0.5, 0)
	}))
	return dc.Image(), nil
}

func (r *pngRenderer) thumbnail() bool { return r.thumbW > 0 || r.thumbH > 0 }

// fit downsamples img to the thumbnail box. A side derived from the aspect
// ratio is bounded like an explicit one.
func (r *pngRenderer) fit(img image.Image) (image.Image, error) {
	if !r.thumbnail() {
		return img, nil
	}
	if r.thumbW > 0 && r.thumbH > 0 {
		return imaging.Fit(img, r.thumbW, r.thumbH, imaging.Lanczos), nil
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return img, nil
	}
	w, h := r.thumbW, r.thumbH
	if w == 0 {
		w = int(math.Round(float64(h) * float64(b.Dx()) / float64(b.Dy())))
	} else {
		h = int(math.Round(float64(w) * float64(b.Dy()) / float64(b.Dx())))
	}
	if err := errs.ValidateThumbnail(w, h); err != nil {
		return nil, err
	}
	return imaging.Resize(img, r.thumbW, r.thumbH, imaging.Lanczos), nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
