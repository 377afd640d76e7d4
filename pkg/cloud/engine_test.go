package cloud

import (
	"context"
	"testing"

	"github.com/matzehuels/tagcloud/pkg/glyph/glyphtest"
)

func TestEngineCleanSkipsRasterizer(t *testing.T) {
	o := glyphtest.New()
	e := NewEngine(o, params(400, 300))
	e.SetData(words(20, "word%d"))

	if !e.Dirty() {
		t.Fatal("engine with fresh data should be dirty")
	}
	first, err := e.Layout(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if e.Dirty() || e.Passes() != 1 {
		t.Fatalf("after Layout: dirty=%v passes=%d", e.Dirty(), e.Passes())
	}

	o.Reset()
	second, err := e.Layout(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if second != first {
		t.Error("clean engine should return the cached result")
	}
	if o.Measures != 0 || o.Draws != 0 || o.Surfaces != 0 {
		t.Errorf("clean Layout touched the oracle: %+v", *o)
	}
	if e.Passes() != 1 {
		t.Errorf("Passes() = %d, want 1", e.Passes())
	}
}

func TestEngineSettersInvalidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Engine)
	}{
		{"data", func(e *Engine) { e.SetData(words(3, "x%d")) }},
		{"angles", func(e *Engine) { e.SetAngles([]float64{0}) }},
		{"angle range", func(e *Engine) { e.SetAngleRange(AngleRange{Count: 3, From: -45, To: 45}) }},
		{"size", func(e *Engine) { e.SetSize(500, 500) }},
		{"params", func(e *Engine) { e.SetParams(params(200, 200)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := glyphtest.New()
			e := NewEngine(o, params(300, 300))
			e.SetData(words(5, "w%d"))
			if _, err := e.Layout(context.Background()); err != nil {
				t.Fatal(err)
			}
			tt.mutate(e)
			if !e.Dirty() {
				t.Fatal("setter did not mark the engine dirty")
			}
			o.Reset()
			if _, err := e.Layout(context.Background()); err != nil {
				t.Fatal(err)
			}
			if e.Passes() != 2 || o.Draws == 0 {
				t.Errorf("dirty Layout: passes=%d draws=%d, want a full pass", e.Passes(), o.Draws)
			}
		})
	}
}

func TestEngineReusesTagsByRow(t *testing.T) {
	e := NewEngine(glyphtest.New(), params(300, 300))
	e.SetData([]Record{{Text: "old", Weight: 1}, {Text: "gone", Weight: 2}})
	before, ok := e.Tag(0)
	if !ok {
		t.Fatal("row 0 missing")
	}

	e.SetData([]Record{{Text: "new", Weight: 3}})
	after, _ := e.Tag(0)
	if after != before {
		t.Error("row 0 should keep its *Tag across SetData")
	}
	if after.Text != "new" || after.Weight != 3 {
		t.Errorf("reused tag = %q/%v, want new/3", after.Text, after.Weight)
	}
	if _, ok := e.Tag(1); ok {
		t.Error("row 1 should be dropped")
	}
}

func TestEngineAngleChange(t *testing.T) {
	e := NewEngine(glyphtest.New(), params(600, 600))
	e.SetData(words(4, "w%d"))
	e.SetAngles([]float64{30})
	res, err := e.Layout(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	for _, tag := range res.Tags {
		if tag.Rotation != 30 {
			t.Errorf("%q rotation = %v, want 30", tag.Text, tag.Rotation)
		}
	}
	if p := e.Params(); len(p.Angles) != 1 {
		t.Errorf("Params().Angles = %v", p.Angles)
	}
}

func TestEngineFailedPassStaysDirty(t *testing.T) {
	e := NewEngine(glyphtest.New(), params(300, 300))
	e.SetData(words(3, "w%d"))
	e.SetSize(0, 300)
	if _, err := e.Layout(context.Background()); err == nil {
		t.Fatal("expected error for zero width")
	}
	if !e.Dirty() || e.Passes() != 0 {
		t.Errorf("dirty=%v passes=%d after failed pass", e.Dirty(), e.Passes())
	}
}

func TestEngineResultSnapshot(t *testing.T) {
	e := NewEngine(glyphtest.New(), params(400, 400))
	e.SetData(words(5, "w%d"))
	first, err := e.Layout(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	size := first.Tags[0].FontSize

	e.SetSize(200, 200)
	if _, err := e.Layout(context.Background()); err != nil {
		t.Fatal(err)
	}
	if first.Tags[0].FontSize != size {
		t.Error("a later pass mutated an earlier result")
	}
}
