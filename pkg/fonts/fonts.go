// Package fonts provides the font registry used for glyph measurement and
// raster output.
//
// The Go font family (golang.org/x/image/font/gofont) is compiled into the
// binary, so layouts can be computed headlessly without system fonts. Extra
// TrueType files can be registered under any family name.
package fonts

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Family names registered by NewRegistry.
const (
	FamilySans = "sans"
	FamilyMono = "mono"

	// DefaultFamily is used when a requested family is not registered.
	DefaultFamily = FamilySans
)

// Normalized styles and weights.
const (
	StyleNormal = "normal"
	StyleItalic = "italic"

	WeightNormal = "normal"
	WeightMedium = "medium"
	WeightBold   = "bold"
)

// aliases maps common CSS family names onto registered families.
var aliases = map[string]string{
	"go":         FamilySans,
	"sans-serif": FamilySans,
	"serif":      FamilySans,
	"go mono":    FamilyMono,
	"monospace":  FamilyMono,
}

// cssFamilies is the CSS font-family emitted for built-in families.
var cssFamilies = map[string]string{
	FamilySans: `'Go', 'Helvetica Neue', Arial, sans-serif`,
	FamilyMono: `'Go Mono', Menlo, Consolas, monospace`,
}

type key struct {
	family, style, weight string
}

// Registry maps (family, style, weight) to parsed TrueType fonts.
// Parsed fonts are read-only, so a Registry is safe for concurrent use.
// Faces created from it are not; see Face.
type Registry struct {
	mu    sync.RWMutex
	fonts map[key]*truetype.Font
}

// NewRegistry returns a registry preloaded with the Go fonts under the
// "sans" and "mono" families.
func NewRegistry() *Registry {
	r := &Registry{fonts: make(map[key]*truetype.Font)}
	builtin := []struct {
		family, style, weight string
		ttf                   []byte
	}{
		{FamilySans, StyleNormal, WeightNormal, goregular.TTF},
		{FamilySans, StyleItalic, WeightNormal, goitalic.TTF},
		{FamilySans, StyleNormal, WeightMedium, gomedium.TTF},
		{FamilySans, StyleItalic, WeightMedium, gomediumitalic.TTF},
		{FamilySans, StyleNormal, WeightBold, gobold.TTF},
		{FamilySans, StyleItalic, WeightBold, gobolditalic.TTF},
		{FamilyMono, StyleNormal, WeightNormal, gomono.TTF},
		{FamilyMono, StyleItalic, WeightNormal, gomonoitalic.TTF},
		{FamilyMono, StyleNormal, WeightBold, gomonobold.TTF},
		{FamilyMono, StyleItalic, WeightBold, gomonobolditalic.TTF},
	}
	for _, b := range builtin {
		// The Go fonts are known-good; a parse failure here is a build defect.
		if err := r.Register(b.family, b.style, b.weight, b.ttf); err != nil {
			panic(fmt.Sprintf("fonts: builtin %s/%s/%s: %v", b.family, b.style, b.weight, err))
		}
	}
	return r
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the shared registry (computed once on first access).
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register parses ttf and stores it under the normalized key.
func (r *Registry) Register(family, style, weight string, ttf []byte) error {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", family, err)
	}
	k := key{NormalizeFamily(family), NormalizeStyle(style), NormalizeWeight(weight)}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fonts[k] = f
	return nil
}

// RegisterFile reads a TrueType file from disk and registers it.
func (r *Registry) RegisterFile(family, style, weight, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %s: %w", path, err)
	}
	return r.Register(family, style, weight, data)
}

// Has reports whether any face is registered for family.
func (r *Registry) Has(family string) bool {
	fam := NormalizeFamily(family)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for k := range r.fonts {
		if k.family == fam {
			return true
		}
	}
	return false
}

// Families returns the registered family names, sorted.
func (r *Registry) Families() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for k := range r.fonts {
		if !slices.Contains(out, k.family) {
			out = append(out, k.family)
		}
	}
	slices.Sort(out)
	return out
}

// Lookup resolves a font, falling back first to the normal weight, then to
// the normal style, and finally to DefaultFamily. It never returns nil for a
// registry created by NewRegistry.
func (r *Registry) Lookup(family, style, weight string) *truetype.Font {
	fam, st, wt := NormalizeFamily(family), NormalizeStyle(style), NormalizeWeight(weight)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, f := range []string{fam, DefaultFamily} {
		candidates := []key{
			{f, st, wt},
			{f, st, WeightNormal},
			{f, StyleNormal, wt},
			{f, StyleNormal, WeightNormal},
		}
		for _, k := range candidates {
			if font, ok := r.fonts[k]; ok {
				return font
			}
		}
	}
	return nil
}

// Face creates a font.Face at the given pixel size (72 DPI, so points == pixels).
// Faces cache rasterized glyphs internally and must not be shared across goroutines.
func Face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// CSSFamily returns the CSS font-family value for SVG output.
func CSSFamily(family string) string {
	fam := NormalizeFamily(family)
	if css, ok := cssFamilies[fam]; ok {
		return css
	}
	return fmt.Sprintf("'%s', sans-serif", strings.ReplaceAll(family, "'", ""))
}

// NormalizeFamily lowercases family and resolves aliases.
func NormalizeFamily(family string) string {
	f := strings.ToLower(strings.TrimSpace(family))
	if f == "" {
		return DefaultFamily
	}
	if a, ok := aliases[f]; ok {
		return a
	}
	return f
}

// NormalizeStyle maps CSS font-style values onto normal/italic.
func NormalizeStyle(style string) string {
	switch strings.ToLower(strings.TrimSpace(style)) {
	case "italic", "oblique":
		return StyleItalic
	default:
		return StyleNormal
	}
}

// NormalizeWeight maps CSS font-weight keywords and numbers onto
// normal/medium/bold.
func NormalizeWeight(weight string) string {
	w := strings.ToLower(strings.TrimSpace(weight))
	switch w {
	case "bold", "bolder":
		return WeightBold
	case "medium":
		return WeightMedium
	case "", "normal", "lighter", "light":
		return WeightNormal
	}
	if n, err := strconv.Atoi(w); err == nil {
		switch {
		case n >= 600:
			return WeightBold
		case n >= 500:
			return WeightMedium
		}
	}
	return WeightNormal
}
