package document

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/tagcloud/pkg/cloud"
)

// =============================================================================
// Tags - Engine Input
// =============================================================================

// Tags is the canonical serialization format for a tag list.
type Tags struct {
	Tags []Tag `json:"tags" bson:"tags"`
}

// Tag is one weighted text.
type Tag struct {
	Text   string   `json:"text" bson:"text"`
	Weight float64  `json:"weight" bson:"weight"`
	Angle  *float64 `json:"angle,omitempty" bson:"angle,omitempty"` // fixed rotation in degrees
}

// UnmarshalJSON accepts both {"text":…} objects and [text, weight, angle?] tuples.
func (t *Tag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		type plain Tag
		return json.Unmarshal(data, (*plain)(t))
	}
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) < 2 || len(tuple) > 3 {
		return fmt.Errorf("tag tuple must have 2 or 3 elements, got %d", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &t.Text); err != nil {
		return fmt.Errorf("tag text: %w", err)
	}
	if err := json.Unmarshal(tuple[1], &t.Weight); err != nil {
		return fmt.Errorf("tag weight: %w", err)
	}
	t.Angle = nil
	if len(tuple) == 3 {
		var a float64
		if err := json.Unmarshal(tuple[2], &a); err != nil {
			return fmt.Errorf("tag angle: %w", err)
		}
		t.Angle = &a
	}
	return nil
}

// FromRecords converts engine records to their serialization format.
func FromRecords(recs []cloud.Record) Tags {
	out := Tags{Tags: make([]Tag, len(recs))}
	for i, r := range recs {
		out.Tags[i] = Tag{Text: r.Text, Weight: r.Weight, Angle: r.Angle}
	}
	return out
}

// Records converts tags to engine records, preserving order.
func (t Tags) Records() []cloud.Record {
	recs := make([]cloud.Record, len(t.Tags))
	for i, tag := range t.Tags {
		recs[i] = cloud.Record{Text: tag.Text, Weight: tag.Weight, Angle: tag.Angle}
	}
	return recs
}

// MarshalTags serializes tags to compact JSON. The output is stable, so it
// can be hashed for cache keys.
func MarshalTags(t Tags) ([]byte, error) {
	return json.Marshal(t)
}
