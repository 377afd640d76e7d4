package cloud

import (
	"errors"
	"image"
)

// Record is one input row: a word and its weight. Angle, when set,
// overrides the rotation the angle policy would assign.
type Record struct {
	Text   string   `json:"text"`
	Weight float64  `json:"weight"`
	Angle  *float64 `json:"angle,omitempty"`
}

// Status is the outcome of laying out a single tag.
type Status int

const (
	StatusPending Status = iota
	StatusPlaced
	StatusUnplaceable
	StatusDegenerate
	StatusRasterOverflow
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusPlaced:
		return "placed"
	case StatusUnplaceable:
		return "unplaceable"
	case StatusDegenerate:
		return "degenerate"
	case StatusRasterOverflow:
		return "raster-overflow"
	default:
		return "unknown"
	}
}

// Per-tag failures. They are reported in [Result.Skipped] and never abort a
// pass.
var (
	ErrUnplaceable     = errors.New("no free position within the canvas")
	ErrDegenerateGlyph = errors.New("text renders no ink")
	ErrRasterOverflow  = errors.New("glyph exceeds the raster working area")
)

// Err returns the sentinel error for a skip status, or nil.
func (s Status) Err() error {
	switch s {
	case StatusUnplaceable:
		return ErrUnplaceable
	case StatusDegenerate:
		return ErrDegenerateGlyph
	case StatusRasterOverflow:
		return ErrRasterOverflow
	default:
		return nil
	}
}

// Tag is one datum with its derived layout state.
//
// Sprite holds (Y1-Y0) rows of Width/32 words each; bit 31-(i%32) of word
// i/32 is pixel column X0+i relative to the anchor. The glyph box
// [X0,X1)×[Y0,Y1) is the tag's occupancy rectangle.
type Tag struct {
	Text     string
	Weight   float64
	RowIndex int
	Angle    *float64

	FontSize  float64
	Rotation  float64
	SizeRatio float64
	Fill      string

	Sprite         []uint32
	Width          int
	X0, Y0, X1, Y1 int
	HasText        bool

	// X, Y is the anchor: canvas coordinates during placement, relative to
	// the canvas centre once placed.
	X, Y   int
	Placed bool
	Status Status

	rastered bool
}

// NewTags creates tags from records, using the record index as row index.
func NewTags(records []Record) []*Tag {
	tags := make([]*Tag, len(records))
	for i, r := range records {
		tags[i] = &Tag{Text: r.Text, Weight: r.Weight, Angle: r.Angle, RowIndex: i}
	}
	return tags
}

// Words returns the number of words per sprite row.
func (t *Tag) Words() int { return t.Width >> 5 }

// Rect returns the occupancy rectangle in the tag's current coordinates.
func (t *Tag) Rect() image.Rectangle {
	return image.Rect(t.X+t.X0, t.Y+t.Y0, t.X+t.X1, t.Y+t.Y1)
}

// reset drops all geometry so the next pass recomputes it.
func (t *Tag) reset() {
	t.FontSize, t.Rotation, t.SizeRatio, t.Fill = 0, 0, 0, ""
	t.Sprite, t.Width = nil, 0
	t.X0, t.Y0, t.X1, t.Y1 = 0, 0, 0, 0
	t.HasText = false
	t.X, t.Y = 0, 0
	t.Placed = false
	t.Status = StatusPending
	t.rastered = false
}

// Bounds is the running box around all placed tags, in canvas coordinates.
type Bounds struct {
	Rect  image.Rectangle
	Valid bool
}

// Add unions t's occupancy rectangle into b.
func (b *Bounds) Add(t *Tag) {
	r := t.Rect()
	if !b.Valid {
		b.Rect, b.Valid = r, true
		return
	}
	b.Rect.Min.X = min(b.Rect.Min.X, r.Min.X)
	b.Rect.Min.Y = min(b.Rect.Min.Y, r.Min.Y)
	b.Rect.Max.X = max(b.Rect.Max.X, r.Max.X)
	b.Rect.Max.Y = max(b.Rect.Max.Y, r.Max.Y)
}

// Touches reports whether t's occupancy rectangle strictly overlaps b.
func (b *Bounds) Touches(t *Tag) bool {
	r := t.Rect()
	return r.Max.X > b.Rect.Min.X && r.Min.X < b.Rect.Max.X &&
		r.Max.Y > b.Rect.Min.Y && r.Min.Y < b.Rect.Max.Y
}
