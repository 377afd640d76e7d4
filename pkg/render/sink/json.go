package sink

import (
	"encoding/json"

	"github.com/matzehuels/tagcloud/pkg/document"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact     bool
	dropSkipped bool
}

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// WithJSONPlacedOnly omits the list of skipped words.
func WithJSONPlacedOnly() JSONOption { return func(r *jsonRenderer) { r.dropSkipped = true } }

// RenderJSON exports the layout as a JSON document that
// document.UnmarshalLayout reads back unchanged.
func RenderJSON(l document.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.dropSkipped {
		l.Skipped = nil
	}
	if r.compact {
		return json.Marshal(l)
	}
	return document.MarshalLayout(l)
}
