package cli

import (
	"github.com/spf13/pflag"

	"github.com/matzehuels/tagcloud/pkg/pipeline"
)

// Flag values override the config file only when set on the command line,
// so each group registers its flags and later copies the changed ones.

// textFlags control word counting for free-text input.
type textFlags struct {
	minLength int
	maxLength int
	cutLength int
	maxItems  int
	stopWords bool
	ignore    []string
	language  string
}

func (f *textFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&f.minLength, "min-length", 0, "drop words shorter than this")
	fs.IntVar(&f.maxLength, "max-length", 0, "drop words longer than this")
	fs.IntVar(&f.cutLength, "cut-length", 0, "truncate words to this length")
	fs.IntVar(&f.maxItems, "max-items", pipeline.DefaultMaxItems, "keep only the most frequent words")
	fs.BoolVar(&f.stopWords, "stop-words", false, "drop common English words")
	fs.StringSliceVar(&f.ignore, "ignore", nil, "words to drop (comma-separated)")
	fs.StringVar(&f.language, "language", "", "language for lowercasing (BCP 47, e.g. tr)")
}

func (f *textFlags) apply(fs *pflag.FlagSet, opts *pipeline.Options) {
	opts.MinLength = f.minLength
	opts.MaxLength = f.maxLength
	opts.CutLength = f.cutLength
	opts.MaxItems = f.maxItems
	opts.StopWords = f.stopWords
	opts.Ignore = f.ignore
	opts.Language = f.language
}

// layoutFlags control placement.
type layoutFlags struct {
	width      int
	height     int
	mode       string
	angles     []float64
	angleCount int
	angleFrom  float64
	angleTo    float64
	font       string
	fontStyle  string
	fontWeight string
	padding    float64
	domain     []float64
	palette    string
	refresh    bool
}

func (f *layoutFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&f.width, "width", pipeline.DefaultWidth, "canvas width")
	fs.IntVar(&f.height, "height", pipeline.DefaultHeight, "canvas height")
	fs.StringVar(&f.mode, "mode", pipeline.DefaultMode, "placement spiral: spiral, rectangular")
	fs.Float64SliceVar(&f.angles, "angles", nil, "explicit rotation angles in degrees (comma-separated)")
	fs.IntVar(&f.angleCount, "angle-count", 2, "number of evenly spaced rotation angles")
	fs.Float64Var(&f.angleFrom, "angle-from", 0, "first rotation angle")
	fs.Float64Var(&f.angleTo, "angle-to", 90, "last rotation angle")
	fs.StringVar(&f.font, "font", "sans", "font family")
	fs.StringVar(&f.fontStyle, "font-style", "normal", "font style: normal, italic")
	fs.StringVar(&f.fontWeight, "font-weight", "normal", "font weight: normal, medium, bold")
	fs.Float64Var(&f.padding, "padding", 1, "pixels of spacing around each word")
	fs.Float64SliceVar(&f.domain, "domain", nil, "weight range mapped to font sizes: min,max")
	fs.StringVar(&f.palette, "palette", pipeline.DefaultPalette, "colour scale: one hex colour or a comma-separated list")
	fs.BoolVar(&f.refresh, "refresh", false, "recompute even if the layout is cached")
}

func (f *layoutFlags) apply(fs *pflag.FlagSet, opts *pipeline.Options) {
	if fs.Changed("width") {
		opts.Width = f.width
	}
	if fs.Changed("height") {
		opts.Height = f.height
	}
	if fs.Changed("mode") {
		opts.Mode = f.mode
	}
	if fs.Changed("angles") {
		opts.Angles = f.angles
	}
	if fs.Changed("angle-count") || fs.Changed("angle-from") || fs.Changed("angle-to") {
		opts.Angles = nil
		opts.AngleCount = f.angleCount
		opts.AngleFrom = f.angleFrom
		opts.AngleTo = f.angleTo
	}
	if fs.Changed("font") {
		opts.FontFamily = f.font
	}
	if fs.Changed("font-style") {
		opts.FontStyle = f.fontStyle
	}
	if fs.Changed("font-weight") {
		opts.FontWeight = f.fontWeight
	}
	if fs.Changed("padding") {
		p := f.padding
		opts.Padding = &p
	}
	if fs.Changed("domain") {
		opts.Domain = f.domain
	}
	if fs.Changed("palette") {
		opts.Palette = f.palette
	}
	opts.Refresh = f.refresh
}

// renderFlags control output.
type renderFlags struct {
	formats     string
	scale       float64
	background  string
	thumbWidth  int
	thumbHeight int
	rsvg        bool
}

func (f *renderFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	fs.Float64Var(&f.scale, "scale", 2, "PNG resolution factor")
	fs.StringVar(&f.background, "background", "", "background colour (transparent if empty)")
	fs.IntVar(&f.thumbWidth, "thumb-width", 0, "fit PNG output into this width")
	fs.IntVar(&f.thumbHeight, "thumb-height", 0, "fit PNG output into this height")
	fs.BoolVar(&f.rsvg, "rsvg", false, "rasterize PNG with rsvg-convert instead of the built-in renderer")
}

func (f *renderFlags) apply(fs *pflag.FlagSet, opts *pipeline.Options) {
	if fs.Changed("format") || len(opts.Formats) == 0 {
		opts.Formats = parseFormats(f.formats)
	}
	if fs.Changed("scale") {
		opts.Scale = f.scale
	}
	if fs.Changed("background") {
		opts.Background = f.background
	}
	if fs.Changed("thumb-width") {
		opts.ThumbWidth = f.thumbWidth
	}
	if fs.Changed("thumb-height") {
		opts.ThumbHeight = f.thumbHeight
	}
	if fs.Changed("rsvg") {
		opts.UseRSVG = f.rsvg
	}
}
