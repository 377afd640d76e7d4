// Package cloud implements the tag cloud layout engine.
//
// # Overview
//
// A layout pass turns weighted records into positioned, rotated, coloured
// words that do not overlap. It is a greedy spatial packer:
//
//  1. Tags are sorted by descending weight (ties keep input order).
//  2. The Font-Size Solver binary-searches the largest font size at which the
//     top tag still fits a third of the canvas; weights are mapped linearly
//     into [height/50, solved size].
//  3. Each tag is drawn into a shared offscreen strip and its ink is packed
//     into a sprite: rows of 32-bit words, one bit per pixel.
//  4. The placer walks an archimedean or rectangular spiral out from the
//     canvas centre, testing the sprite against the board with word-shifted
//     AND. The first free spot that also touches the cloud formed so far wins,
//     and the sprite is OR-merged into the board.
//  5. Once every tag is processed, a uniform scale factor is derived so the
//     union of placed tags fills the target rectangle.
//
// The pass is deterministic: for fixed records, parameters and glyph oracle
// the output is bit-identical between runs.
//
// # Usage
//
//	res, err := cloud.Layout(ctx, records, cloud.DefaultParams(), glyph.NewRenderer(nil))
//	if err != nil {
//	    return err
//	}
//	res.Emit(sink)
//
// [Engine] wraps [Layout] with a Dirty/Clean state machine: mutating data,
// angles or size marks it dirty, and [Engine.Layout] on a clean engine
// returns the cached result without touching the rasterizer.
//
// # Failure Handling
//
// Per-tag failures never abort a pass. Tags that produce no ink, that cannot
// fit the raster working area, or for which the spiral search finds no free
// position are listed in [Result.Skipped]. Invalid parameters (non-positive
// canvas, empty angle set, non-finite weights) fail the whole pass with an
// INVALID_CONFIGURATION error and no partial output.
//
// # Concurrency
//
// A pass owns its board and raster surface. Glyph oracles are generally not
// safe for concurrent use, so concurrent passes need separate oracles.
package cloud
