package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/tagcloud/pkg/document"
	errs "github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/observability"
	"github.com/matzehuels/tagcloud/pkg/render/sink"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, l document.Layout, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := render(ctx, l, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func render(ctx context.Context, l document.Layout, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, l, buildPNGOptions(opts, svgOpts)...)
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, l, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(l)
		default:
			return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Background != "" {
		svgOpts = append(svgOpts, sink.WithBackground(opts.Background))
	}
	return svgOpts
}

func buildPNGOptions(opts Options, svgOpts []sink.SVGOption) []sink.PNGOption {
	pngOpts := []sink.PNGOption{sink.WithPNGSVGOptions(svgOpts...)}
	if opts.Scale > 0 {
		pngOpts = append(pngOpts, sink.WithScale(opts.Scale))
	}
	if opts.ThumbWidth > 0 || opts.ThumbHeight > 0 {
		pngOpts = append(pngOpts, sink.WithThumbnail(opts.ThumbWidth, opts.ThumbHeight))
	}
	if opts.UseRSVG {
		pngOpts = append(pngOpts, sink.WithRSVG())
	}
	if opts.Registry != nil {
		pngOpts = append(pngOpts, sink.WithRegistry(opts.Registry))
	}
	return pngOpts
}

// RenderFromLayoutData renders output from serialized layout data.
// This is useful when the layout was computed elsewhere (e.g., cached).
func RenderFromLayoutData(ctx context.Context, layoutData []byte, opts Options) (map[string][]byte, error) {
	parsed, err := document.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return Render(ctx, parsed, opts)
}
