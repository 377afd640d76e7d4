package cloud

import (
	"testing"

	"github.com/matzehuels/tagcloud/pkg/glyph/glyphtest"
)

func TestRasterizeBlock(t *testing.T) {
	o := glyphtest.New()
	r := rasterizer{oracle: o}
	tag := &Tag{Text: "ab", FontSize: 10}

	if err := r.rasterize([]*Tag{tag}, 0); err != nil {
		t.Fatal(err)
	}

	// Drawn at size 11: 13.2px wide, 8.8px above and 2.2px below the
	// baseline, centred in a 32×20 cell.
	if tag.Width != 32 || tag.X0 != -16 || tag.X1 != 16 {
		t.Errorf("box x = [%d, %d) width %d, want [-16, 16) width 32", tag.X0, tag.X1, tag.Width)
	}
	if tag.Y0 != -9 || tag.Y1 != 2 {
		t.Errorf("trimmed box y = [%d, %d), want [-9, 2)", tag.Y0, tag.Y1)
	}
	if !tag.HasText || tag.Status != StatusPending {
		t.Errorf("HasText = %v, Status = %v", tag.HasText, tag.Status)
	}
	if len(tag.Sprite) != 11 {
		t.Fatalf("sprite has %d rows, want 11", len(tag.Sprite))
	}
	for j, row := range tag.Sprite {
		if row != 0x007ffe00 {
			t.Errorf("row %d = %#08x, want columns 9..22 set", j, row)
		}
	}
}

func TestRasterizeRotated(t *testing.T) {
	r := rasterizer{oracle: glyphtest.New()}
	flat := &Tag{Text: "abcdefgh", FontSize: 10}
	tall := &Tag{Text: "abcdefgh", FontSize: 10, Rotation: 90}
	if err := r.rasterize([]*Tag{flat, tall}, 0); err != nil {
		t.Fatal(err)
	}
	if tall.Y1-tall.Y0 <= flat.Y1-flat.Y0 {
		t.Errorf("rotated sprite height %d should exceed flat height %d", tall.Y1-tall.Y0, flat.Y1-flat.Y0)
	}
	if tall.Width >= flat.Width {
		t.Errorf("rotated cell width %d should be below flat width %d", tall.Width, flat.Width)
	}
}

func TestRasterizeDegenerate(t *testing.T) {
	r := rasterizer{oracle: glyphtest.New()}
	tags := []*Tag{
		{Text: "", FontSize: 10},
		{Text: "   ", FontSize: 10},
		{Text: "ok", FontSize: 10},
	}
	if err := r.rasterize(tags, 0); err != nil {
		t.Fatal(err)
	}
	for _, tag := range tags[:2] {
		if tag.HasText || tag.Sprite != nil || tag.Status != StatusDegenerate {
			t.Errorf("%q: HasText=%v sprite=%d status=%v, want degenerate", tag.Text, tag.HasText, len(tag.Sprite), tag.Status)
		}
	}
	if !tags[2].HasText {
		t.Error("non-blank tag in the same batch was not rasterized")
	}
}

func TestRasterizeOverflow(t *testing.T) {
	r := rasterizer{oracle: glyphtest.New()}
	tags := []*Tag{
		{Text: "huge", FontSize: 1500}, // cell height 3000 > 2048
		{Text: "fine", FontSize: 20},
	}
	if err := r.rasterize(tags, 0); err != nil {
		t.Fatal(err)
	}
	if tags[0].Status != StatusRasterOverflow || tags[0].Sprite != nil {
		t.Errorf("huge tag status = %v, want raster-overflow", tags[0].Status)
	}
	if !tags[1].HasText {
		t.Error("batch should continue past an overflowing tag")
	}
}

func TestRasterizeBatches(t *testing.T) {
	o := glyphtest.New()
	r := rasterizer{oracle: o}

	// Cells are 1824×600: one per row, three rows per strip.
	tags := make([]*Tag, 10)
	for i := range tags {
		tags[i] = &Tag{Text: "wwwwwwwwww", FontSize: 300}
	}
	for i := range tags {
		if err := r.rasterize(tags, i); err != nil {
			t.Fatal(err)
		}
	}
	for i, tag := range tags {
		if !tag.HasText {
			t.Fatalf("tag %d not rasterized", i)
		}
		if tag.Y1-tag.Y0 != tags[0].Y1-tags[0].Y0 || len(tag.Sprite) != len(tags[0].Sprite) {
			t.Fatalf("tag %d sprite differs from tag 0", i)
		}
		for k := range tag.Sprite {
			if tag.Sprite[k] != tags[0].Sprite[k] {
				t.Fatalf("tag %d sprite word %d differs from tag 0", i, k)
			}
		}
	}
	if o.Surfaces != 1 {
		t.Errorf("allocated %d surfaces, want 1", o.Surfaces)
	}
	if o.Draws != len(tags) {
		t.Errorf("drew %d glyphs, want %d", o.Draws, len(tags))
	}
}
