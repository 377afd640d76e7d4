// Package pipeline provides the parse → layout → render pipeline for tag clouds.
//
// This package implements the complete pipeline used by the CLI and the HTTP
// API. Centralizing it keeps option defaults, validation, and caching
// identical for every entry point.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Read weighted tags from inline tags, free text, or a file
//  2. Layout: Size, rasterize, and place every tag (pkg/cloud)
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "words.txt",
//	    Formats: []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	recs, err := pipeline.Parse(ctx, opts)
//	layout, err := runner.GenerateLayout(ctx, recs, opts)
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"

	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/document"
	errs "github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/fonts"
	"github.com/matzehuels/tagcloud/pkg/palette"
	"github.com/matzehuels/tagcloud/pkg/render/sink"
	"github.com/matzehuels/tagcloud/pkg/wordfreq"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = cloud.DefaultWidth

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = cloud.DefaultHeight

	// DefaultMode is the default spiral.
	DefaultMode = string(cloud.ModeSpiral)

	// DefaultPalette is the default single-hue colour scale.
	DefaultPalette = palette.DefaultBase

	// DefaultMaxItems caps the words kept from free text.
	DefaultMaxItems = 250
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options; exactly one source is used, in the order Tags, Text, Input.
	Tags      []document.Tag `json:"tags,omitempty"`
	Text      string         `json:"text,omitempty"`
	Input     string         `json:"-"` // file path, CLI only
	MinLength int            `json:"min_length,omitempty"`
	MaxLength int            `json:"max_length,omitempty"`
	CutLength int            `json:"cut_length,omitempty"`
	MaxItems  int            `json:"max_items,omitempty"`
	StopWords bool           `json:"stop_words,omitempty"` // drop English stop words from text
	Ignore    []string       `json:"ignore,omitempty"`
	Language  string         `json:"language,omitempty"` // BCP 47 tag for lowercasing

	// Layout options
	Width      int       `json:"width,omitempty"`
	Height     int       `json:"height,omitempty"`
	Mode       string    `json:"mode,omitempty"`
	Angles     []float64 `json:"angles,omitempty"`
	AngleCount int       `json:"angle_count,omitempty"`
	AngleFrom  float64   `json:"angle_from,omitempty"`
	AngleTo    float64   `json:"angle_to,omitempty"`
	FontFamily string    `json:"font_family,omitempty"`
	FontStyle  string    `json:"font_style,omitempty"`
	FontWeight string    `json:"font_weight,omitempty"`
	Padding    *float64  `json:"padding,omitempty"`
	Domain     []float64 `json:"domain,omitempty"` // [min, max] weight range
	Palette    string    `json:"palette,omitempty"`
	Refresh    bool      `json:"refresh,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Scale       float64  `json:"scale,omitempty"` // PNG resolution factor
	Background  string   `json:"background,omitempty"`
	ThumbWidth  int      `json:"thumb_width,omitempty"`
	ThumbHeight int      `json:"thumb_height,omitempty"`
	UseRSVG     bool     `json:"rsvg,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger     `json:"-"`
	Registry *fonts.Registry `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Records are the parsed input tags.
	Records []cloud.Record

	// TagsHash is the content hash of the input tags.
	TagsHash string

	// Layout contains the placed words.
	Layout document.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TagCount   int
	Placed     int
	Skipped    int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether layout result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := errs.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks that a tag source is set.
func (o *Options) ValidateForParse() error {
	if len(o.Tags) == 0 && o.Text == "" && o.Input == "" {
		return errs.New(errs.ErrCodeInvalidInput, "tags, text, or an input file is required")
	}
	if o.Language != "" {
		if _, err := language.Parse(o.Language); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid language %q", o.Language)
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// WordOptions returns the free-text tokenizer settings.
func (o *Options) WordOptions() wordfreq.Options {
	w := wordfreq.Options{
		MinLength:   o.MinLength,
		MaxLength:   o.MaxLength,
		CutLength:   o.CutLength,
		MaxItems:    o.MaxItems,
		IgnoreItems: slices.Clone(o.Ignore),
	}
	if w.MaxItems == 0 {
		w.MaxItems = DefaultMaxItems
	}
	if o.StopWords {
		w.IgnoreItems = append(w.IgnoreItems, wordfreq.EnglishStopWords...)
	}
	if tag, err := language.Parse(o.Language); err == nil {
		w.Language = tag
	}
	return w
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if o.FontFamily == "" {
		o.FontFamily = fonts.DefaultFamily
	}
	if o.Palette == "" {
		o.Palette = DefaultPalette
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	_, err := o.Params()
	return err
}

// Params converts the layout options to engine parameters.
func (o *Options) Params() (cloud.Params, error) {
	p := cloud.DefaultParams()
	p.Width, p.Height = o.Width, o.Height
	p.Mode = cloud.Mode(o.Mode)
	p.Font.Family = fonts.NormalizeFamily(o.FontFamily)
	p.Font.Style = fonts.NormalizeStyle(o.FontStyle)
	p.Font.Weight = fonts.NormalizeWeight(o.FontWeight)

	switch {
	case o.Angles != nil:
		p.Angles = slices.Clone(o.Angles)
	case o.AngleCount != 0:
		p.AngleRange = cloud.AngleRange{Count: o.AngleCount, From: o.AngleFrom, To: o.AngleTo}
	}
	if o.Padding != nil {
		p.Padding = *o.Padding
	}
	if len(o.Domain) != 0 {
		if len(o.Domain) != 2 {
			return cloud.Params{}, errs.New(errs.ErrCodeInvalidConfiguration, "domain needs [min, max], got %d values", len(o.Domain))
		}
		p.Domain = &cloud.Domain{Min: o.Domain[0], Max: o.Domain[1]}
	}

	pal, err := palette.Parse(o.Palette)
	if err != nil {
		return cloud.Params{}, errs.Wrap(errs.ErrCodeInvalidColor, err, "invalid palette")
	}
	p.Palette = pal

	if err := p.Validate(); err != nil {
		return cloud.Params{}, err
	}
	return p, nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Background != "" {
		if err := errs.ValidateColor(o.Background); err != nil {
			return err
		}
	}
	if o.Scale < 0 {
		return errs.New(errs.ErrCodeInvalidConfiguration, "scale must be positive, got %v", o.Scale)
	}
	if slices.Contains(o.Formats, FormatPNG) {
		if err := errs.ValidateRenderSize(o.Width, o.Height, o.pngScale()); err != nil {
			return err
		}
		if err := errs.ValidateThumbnail(o.ThumbWidth, o.ThumbHeight); err != nil {
			return err
		}
	}
	return nil
}

// pngScale is the effective PNG scale; zero selects the sink default.
func (o *Options) pngScale() float64 {
	if o.Scale == 0 {
		return sink.DefaultPNGScale
	}
	return o.Scale
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	p, _ := o.Params()
	angles := p.Angles
	if angles == nil {
		angles = p.AngleRange.Angles()
	}
	return cache.LayoutKeyOpts{
		Width:   o.Width,
		Height:  o.Height,
		Mode:    o.Mode,
		Angles:  angles,
		Font:    p.Font.String(),
		Padding: p.Padding,
		Domain:  o.Domain,
		Palette: o.Palette,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Background: o.Background}
	if format == FormatPNG {
		k.Scale = o.Scale
		k.Thumbnail = [2]int{o.ThumbWidth, o.ThumbHeight}
		if o.UseRSVG {
			k.Converter = "rsvg"
		}
	}
	return k
}
