// Package document provides serialization types for tag lists and cloud layouts.
//
// This package defines the wire format for tagcloud data, used for JSON
// files, API responses, and cache entries (which is why every type also
// carries BSON tags).
//
// # Architecture
//
// The package sits at the serialization boundary between the engine and
// external formats:
//
//   - [Tags], [Layout]: Serialization types (this package)
//   - cloud.Record: Engine input
//   - cloud.Result: Engine output (sprites, statuses, coordinates)
//
// Use [FromRecords]/[Tags.Records] and [FromResult] to convert.
//
// # Tags
//
//	{
//	  "tags": [
//	    {"text": "golang", "weight": 12},
//	    {"text": "cloud", "weight": 4, "angle": 90}
//	  ]
//	}
//
// A tag may also be written as a [text, weight] or [text, weight, angle]
// tuple.
//
// # Layout
//
// A layout holds everything a renderer needs: the canvas, the centring
// transform, the font, and one entry per placed word. Word coordinates are
// relative to the origin and must be scaled by Scale:
//
//	canvasX = OriginX + Scale*word.X
//
// Skipped words are listed with the reason they were left out.
//
//	l, _ := document.ReadLayoutFile("layout.json")
//	l.Emit(sink)
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package document
