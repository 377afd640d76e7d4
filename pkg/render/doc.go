// Package render converts rendered clouds between output formats.
//
// # Overview
//
// Clouds are drawn by the [sink] subpackage, which turns a
// document.Layout into SVG, PNG, PDF, or JSON. This package holds the
// format conversion the sinks share.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert SVG to other formats using the external
// rsvg-convert tool (from librsvg):
//
//	svg := sink.RenderSVG(layout)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [Available] reports whether the tool is installed; PNG output falls back
// to the native rasterizer in the sink package when it is not.
package render
