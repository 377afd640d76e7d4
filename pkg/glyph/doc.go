// Package glyph provides text measurement and pixel read-back for the tag
// cloud layout engine.
//
// The engine never talks to a font rasterizer directly. It asks a [Measurer]
// for text extents and draws into a [Surface] obtained from an [Oracle], then
// samples the surface's alpha channel to build collision sprites.
//
// [Renderer] is the production oracle, backed by fogleman/gg and the
// TrueType fonts in [github.com/matzehuels/tagcloud/pkg/fonts]. Tests use the
// deterministic block oracle from the glyphtest subpackage.
package glyph
