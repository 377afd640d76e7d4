// Package sink provides output format renderers for tag clouds.
//
// # Overview
//
// A "sink" transforms a document.Layout into a final output format:
//
//   - SVG: one <text> element per word inside a centring group
//   - PNG: native raster via fogleman/gg, or rsvg-convert on request
//   - PDF: SVG converted by rsvg-convert
//   - JSON: the layout document itself
//
// Every renderer walks the layout through [document.Layout.Emit], so each
// format sees the same words in the same order (largest first).
//
// # SVG Output
//
// Words are positioned relative to the canvas centre and the whole cloud
// is scaled to fill the canvas:
//
//	<g transform="matrix(s 0 0 s ox oy)">
//	  <text text-anchor="middle" transform="translate(x,y)rotate(r)">word</text>
//	</g>
//
// Basic usage:
//
//	svg := sink.RenderSVG(layout, sink.WithBackground("#ffffff"))
//
// # PNG Output
//
//	png, err := sink.RenderPNG(ctx, layout, sink.WithScale(2), sink.WithThumbnail(256, 256))
//
// The native renderer needs no external tools and uses the same fonts as the
// layout engine. [WithRSVG] renders the SVG through rsvg-convert instead.
//
// # PDF Output
//
// [RenderPDF] requires librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
package sink
