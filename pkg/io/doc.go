// Package io reads and writes tag lists for the layout engine.
//
// # Formats
//
// JSON, as an object with a "tags" array or as a bare array:
//
//	{
//	  "tags": [
//	    {"text": "golang", "weight": 12},
//	    {"text": "cloud", "weight": 4, "angle": 90}
//	  ]
//	}
//
// Each element may also be a two- or three-element array, so spreadsheet
// exports work unchanged:
//
//	[["golang", 12], ["cloud", 4, 90]]
//
// CSV (or TSV) with columns text, weight and an optional angle. A first row
// whose weight column is not a number is treated as a header.
//
// Plain text, counted into words by [wordfreq.Parse]; each word's count
// becomes its weight.
//
// # Import
//
// [Import] picks a reader from the file extension: .json, .csv, .tsv, and
// anything else as text.
//
//	recs, err := io.Import("words.csv", io.Options{})
//
// # Export
//
// [WriteJSON] and [ExportJSON] write the object form, which [ReadJSON] reads
// back identically.
//
// [wordfreq.Parse]: github.com/matzehuels/tagcloud/pkg/wordfreq.Parse
package io
