package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/document"
	errs "github.com/matzehuels/tagcloud/pkg/errors"
)

func sampleTags() []document.Tag {
	return []document.Tag{
		{Text: "go", Weight: 10},
		{Text: "cloud", Weight: 6},
		{Text: "layout", Weight: 4},
		{Text: "spiral", Weight: 2},
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Text: "hello world"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("size = %dx%d, want %dx%d", opts.Width, opts.Height, DefaultWidth, DefaultHeight)
	}
	if opts.Mode != DefaultMode {
		t.Errorf("Mode = %q, want %q", opts.Mode, DefaultMode)
	}
	if opts.Palette != DefaultPalette {
		t.Errorf("Palette = %q, want %q", opts.Palette, DefaultPalette)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errs.Code
	}{
		{"no source", Options{}, errs.ErrCodeInvalidInput},
		{"bad language", Options{Text: "x", Language: "not a tag!"}, errs.ErrCodeInvalidInput},
		{"bad format", Options{Text: "x", Formats: []string{"gif"}}, errs.ErrCodeInvalidFormat},
		{"bad mode", Options{Text: "x", Mode: "zigzag"}, errs.ErrCodeInvalidConfiguration},
		{"bad size", Options{Text: "x", Width: -5}, errs.ErrCodeInvalidConfiguration},
		{"bad domain", Options{Text: "x", Domain: []float64{1}}, errs.ErrCodeInvalidConfiguration},
		{"bad palette", Options{Text: "x", Palette: "nope"}, errs.ErrCodeInvalidColor},
		{"bad background", Options{Text: "x", Background: "nope"}, errs.ErrCodeInvalidColor},
		{"bad scale", Options{Text: "x", Scale: -1}, errs.ErrCodeInvalidConfiguration},
		{"scale above max", Options{Text: "x", Formats: []string{"png"}, Scale: 150}, errs.ErrCodeInvalidConfiguration},
		{"png too many pixels", Options{Text: "x", Formats: []string{"png"}, Width: 8000, Height: 8000}, errs.ErrCodeInvalidConfiguration},
		{"thumbnail too large", Options{Text: "x", Formats: []string{"png"}, ThumbWidth: errs.MaxCanvasDimension + 1}, errs.ErrCodeInvalidConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errs.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}

func TestOptionsParams(t *testing.T) {
	pad := 3.0
	opts := Options{
		Width:      400,
		Height:     300,
		Mode:       "rectangular",
		AngleCount: 3,
		AngleFrom:  -60,
		AngleTo:    60,
		FontFamily: "Mono",
		FontWeight: "bold",
		Padding:    &pad,
		Domain:     []float64{1, 10},
	}
	opts.SetLayoutDefaults()
	p, err := opts.Params()
	if err != nil {
		t.Fatalf("Params: %v", err)
	}
	if p.Width != 400 || p.Height != 300 {
		t.Errorf("size = %dx%d", p.Width, p.Height)
	}
	if p.Mode != cloud.ModeRectangular {
		t.Errorf("Mode = %q", p.Mode)
	}
	if p.AngleRange.Count != 3 || p.AngleRange.From != -60 || p.AngleRange.To != 60 {
		t.Errorf("AngleRange = %+v", p.AngleRange)
	}
	if p.Padding != 3 {
		t.Errorf("Padding = %v", p.Padding)
	}
	if p.Domain == nil || p.Domain.Min != 1 || p.Domain.Max != 10 {
		t.Errorf("Domain = %+v", p.Domain)
	}
	if p.Font.Family != "mono" || p.Font.Weight != "bold" {
		t.Errorf("Font = %+v", p.Font)
	}
	if p.Palette == nil {
		t.Error("Palette should be set")
	}
}

func TestOptionsExplicitAnglesWin(t *testing.T) {
	opts := Options{Angles: []float64{0, 90}, AngleCount: 5}
	opts.SetLayoutDefaults()
	p, err := opts.Params()
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Angles) != 2 || p.Angles[1] != 90 {
		t.Errorf("Angles = %v", p.Angles)
	}
}

func TestWordOptions(t *testing.T) {
	opts := Options{Ignore: []string{"foo"}, StopWords: true}
	w := opts.WordOptions()
	if w.MaxItems != DefaultMaxItems {
		t.Errorf("MaxItems = %d, want %d", w.MaxItems, DefaultMaxItems)
	}
	if len(w.IgnoreItems) < 2 || w.IgnoreItems[0] != "foo" {
		t.Errorf("IgnoreItems = %v", w.IgnoreItems)
	}
	if len(opts.Ignore) != 1 {
		t.Error("WordOptions must not modify Ignore")
	}
}

func TestParseSources(t *testing.T) {
	ctx := context.Background()

	t.Run("tags", func(t *testing.T) {
		recs, err := Parse(ctx, Options{Tags: sampleTags()})
		if err != nil {
			t.Fatal(err)
		}
		if len(recs) != 4 || recs[0].Text != "go" || recs[0].Weight != 10 {
			t.Errorf("recs = %+v", recs)
		}
	})

	t.Run("empty tag text", func(t *testing.T) {
		_, err := Parse(ctx, Options{Tags: []document.Tag{{Text: "", Weight: 1}}})
		if !errs.Is(err, errs.ErrCodeInvalidInput) {
			t.Errorf("err = %v, want INVALID_INPUT", err)
		}
	})

	t.Run("text", func(t *testing.T) {
		recs, err := Parse(ctx, Options{Text: "gopher gopher cloud"})
		if err != nil {
			t.Fatal(err)
		}
		if len(recs) != 2 || recs[0].Text != "gopher" || recs[0].Weight != 2 {
			t.Errorf("recs = %+v", recs)
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tags.csv")
		if err := os.WriteFile(path, []byte("go,3\ncloud,1\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		recs, err := Parse(ctx, Options{Input: path})
		if err != nil {
			t.Fatal(err)
		}
		if len(recs) != 2 || recs[1].Text != "cloud" {
			t.Errorf("recs = %+v", recs)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Parse(ctx, Options{Input: filepath.Join(t.TempDir(), "nope.json")})
		if !errs.Is(err, errs.ErrCodeFileNotFound) && !strings.Contains(err.Error(), "nope.json") {
			t.Errorf("err = %v", err)
		}
	})
}

func TestGenerateLayout(t *testing.T) {
	ctx := context.Background()
	opts := Options{Tags: sampleTags(), Width: 400, Height: 300}
	recs, err := Parse(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	l, err := GenerateLayout(ctx, recs, opts)
	if err != nil {
		t.Fatalf("GenerateLayout: %v", err)
	}
	if l.Width != 400 || l.Height != 300 {
		t.Errorf("size = %dx%d", l.Width, l.Height)
	}
	if l.Placed()+len(l.Skipped) != len(recs) {
		t.Errorf("placed %d + skipped %d != %d", l.Placed(), len(l.Skipped), len(recs))
	}
	if l.Placed() == 0 {
		t.Fatal("nothing placed")
	}
	if l.Palette != DefaultPalette {
		t.Errorf("Palette = %q", l.Palette)
	}
	for _, w := range l.Words {
		if w.Fill == "" {
			t.Errorf("word %q has no fill", w.Text)
		}
	}
}

func TestRenderFormats(t *testing.T) {
	ctx := context.Background()
	opts := Options{Tags: sampleTags(), Width: 300, Height: 200, Formats: []string{"svg", "json", "png"}, Scale: 1}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	recs, err := Parse(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	l, err := GenerateLayout(ctx, recs, opts)
	if err != nil {
		t.Fatal(err)
	}
	artifacts, err := Render(ctx, l, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(artifacts[FormatSVG], []byte("<svg")) {
		t.Errorf("svg artifact = %.40q", artifacts[FormatSVG])
	}
	if _, err := document.UnmarshalLayout(artifacts[FormatJSON]); err != nil {
		t.Errorf("json artifact: %v", err)
	}
	if !bytes.HasPrefix(artifacts[FormatPNG], []byte("\x89PNG")) {
		t.Error("png artifact missing signature")
	}
}

func TestRenderFromLayoutData(t *testing.T) {
	data := []byte(`{"width":100,"height":50,"words":[{"text":"hi","x":0,"y":0,"size":20,"fill":"#000"}]}`)
	artifacts, err := RenderFromLayoutData(context.Background(), data, Options{Formats: []string{"svg"}})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(artifacts["svg"], []byte(">hi</text>")) {
		t.Errorf("svg = %s", artifacts["svg"])
	}

	if _, err := RenderFromLayoutData(context.Background(), []byte("{"), Options{}); err == nil {
		t.Error("expected error for malformed layout")
	}
}

func TestTagsHashStable(t *testing.T) {
	a := document.Tags{Tags: sampleTags()}.Records()
	b := document.Tags{Tags: sampleTags()}.Records()
	if TagsHash(a) != TagsHash(b) {
		t.Error("equal tags should hash equally")
	}
	b[0].Weight++
	if TagsHash(a) == TagsHash(b) {
		t.Error("different weights should hash differently")
	}
}

func TestRunnerExecuteCaches(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(cache.NewMemoryCache(), nil, nil)
	defer runner.Close()

	opts := Options{Tags: sampleTags(), Width: 300, Height: 200, Formats: []string{"svg", "json"}}

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss: %+v", first.CacheInfo)
	}
	if first.Stats.TagCount != 4 || first.Stats.Placed+first.Stats.Skipped != 4 {
		t.Errorf("stats = %+v", first.Stats)
	}

	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit: %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts["svg"], second.Artifacts["svg"]) {
		t.Error("cached svg differs")
	}

	opts.Refresh = true
	third, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("refresh should bypass the layout cache")
	}
}

func TestRunnerLayoutKeyDependsOnOptions(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(cache.NewMemoryCache(), nil, nil)
	recs := document.Tags{Tags: sampleTags()}.Records()

	if _, hit, err := runner.GenerateLayoutWithCacheInfo(ctx, recs, Options{Width: 300, Height: 200}); err != nil || hit {
		t.Fatalf("first: hit=%v err=%v", hit, err)
	}
	if _, hit, err := runner.GenerateLayoutWithCacheInfo(ctx, recs, Options{Width: 320, Height: 200}); err != nil || hit {
		t.Fatalf("different width should miss: hit=%v err=%v", hit, err)
	}
	if _, hit, err := runner.GenerateLayoutWithCacheInfo(ctx, recs, Options{Width: 300, Height: 200}); err != nil || !hit {
		t.Fatalf("same options should hit: hit=%v err=%v", hit, err)
	}
}

func TestRunnerNilCache(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), Options{Text: "one two two"})
	if err != nil {
		t.Fatal(err)
	}
	if result.CacheInfo.LayoutHit {
		t.Error("null cache should never hit")
	}
	if len(result.Artifacts[FormatSVG]) == 0 {
		t.Error("missing svg")
	}
}

func TestRunnerRenderChecksLayoutSize(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	l := document.Layout{Width: errs.MaxCanvasDimension, Height: errs.MaxCanvasDimension, Mode: "spiral", Scale: 1}

	// Options carry the default 800×600 canvas; the stored layout is what gets rasterized.
	_, _, err := runner.RenderWithCacheInfo(context.Background(), l, Options{Formats: []string{FormatPNG}})
	if !errs.Is(err, errs.ErrCodeInvalidConfiguration) {
		t.Fatalf("png error = %v, want %s", err, errs.ErrCodeInvalidConfiguration)
	}

	artifacts, _, err := runner.RenderWithCacheInfo(context.Background(), l, Options{Formats: []string{FormatSVG}})
	if err != nil {
		t.Fatalf("svg: %v", err)
	}
	if len(artifacts[FormatSVG]) == 0 {
		t.Error("missing svg")
	}
}
