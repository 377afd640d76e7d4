package document

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/glyph"
)

// =============================================================================
// Layout - Positioned Words
// =============================================================================

// Layout is the serialization format for a computed cloud.
type Layout struct {
	Width  int     `json:"width" bson:"width"`
	Height int     `json:"height" bson:"height"`
	Mode   string  `json:"mode" bson:"mode"`
	Scale  float64 `json:"scale" bson:"scale"`

	// Canvas point that word coordinates are relative to.
	OriginX float64 `json:"origin_x" bson:"origin_x"`
	OriginY float64 `json:"origin_y" bson:"origin_y"`

	Font    Font   `json:"font" bson:"font"`
	Palette string `json:"palette,omitempty" bson:"palette,omitempty"`

	MinFontSize float64 `json:"min_font_size" bson:"min_font_size"`
	MaxFontSize float64 `json:"max_font_size" bson:"max_font_size"`

	Words   []Word `json:"words" bson:"words"`
	Skipped []Skip `json:"skipped,omitempty" bson:"skipped,omitempty"`
}

// Font names the typeface shared by every word.
type Font struct {
	Family string `json:"family" bson:"family"`
	Style  string `json:"style,omitempty" bson:"style,omitempty"`
	Weight string `json:"weight,omitempty" bson:"weight,omitempty"`
}

// Word is one placed tag.
type Word struct {
	Text     string  `json:"text" bson:"text"`
	X        float64 `json:"x" bson:"x"`
	Y        float64 `json:"y" bson:"y"`
	Rotation float64 `json:"rotate,omitempty" bson:"rotate,omitempty"`
	Size     float64 `json:"size" bson:"size"`
	Fill     string  `json:"fill,omitempty" bson:"fill,omitempty"`
}

// Skip is a tag left out of the cloud.
type Skip struct {
	Row    int    `json:"row" bson:"row"`
	Text   string `json:"text" bson:"text"`
	Reason string `json:"reason" bson:"reason"` // "unplaceable", "degenerate", "raster-overflow"
}

// Placed returns the number of placed words.
func (l *Layout) Placed() int { return len(l.Words) }

// GlyphFont returns the layout font at the given size.
func (l *Layout) GlyphFont(size float64) glyph.Font {
	return glyph.Font{Family: l.Font.Family, Style: l.Font.Style, Weight: l.Font.Weight, Size: size}
}

// Emit replays the placed words into s, largest first.
func (l *Layout) Emit(s cloud.Sink) {
	for _, w := range l.Words {
		s.DrawTag(w.Text, cloud.Draw{
			X:        w.X,
			Y:        w.Y,
			Rotation: w.Rotation,
			FontSize: w.Size,
			Fill:     w.Fill,
			Font:     l.GlyphFont(w.Size),
		})
	}
}

// Transform maps word coordinates to canvas coordinates.
func (l *Layout) Transform(x, y float64) (float64, float64) {
	return l.OriginX + l.Scale*x, l.OriginY + l.Scale*y
}

// =============================================================================
// Result → Layout
// =============================================================================

// Collector is a [cloud.Sink] that records drawn tags as words.
type Collector struct {
	Words []Word
}

// DrawTag implements [cloud.Sink].
func (c *Collector) DrawTag(text string, d cloud.Draw) {
	c.Words = append(c.Words, Word{
		Text:     text,
		X:        d.X,
		Y:        d.Y,
		Rotation: d.Rotation,
		Size:     d.FontSize,
		Fill:     d.Fill,
	})
}

// FromResult converts an engine result to its serialization format.
func FromResult(res *cloud.Result) Layout {
	var c Collector
	res.Emit(&c)

	l := Layout{
		Width:       res.Width,
		Height:      res.Height,
		Mode:        string(res.Mode),
		Scale:       res.Scale,
		OriginX:     float64(res.Origin.X),
		OriginY:     float64(res.Origin.Y),
		Font:        Font{Family: res.Font.Family, Style: res.Font.Style, Weight: res.Font.Weight},
		MinFontSize: res.MinFontSize,
		MaxFontSize: res.MaxFontSize,
		Words:       c.Words,
	}
	if l.Words == nil {
		l.Words = []Word{}
	}
	for _, s := range res.Skipped {
		l.Skipped = append(l.Skipped, Skip{Row: s.RowIndex, Text: s.Text, Reason: s.Status.String()})
	}
	return l
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return Layout{}, fmt.Errorf("layout must have positive dimensions, got %dx%d", l.Width, l.Height)
	}
	if l.Scale == 0 {
		l.Scale = 1
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
