package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// MaxCanvasDimension bounds canvas width and height. Boards are allocated as
// width*height bits, so this keeps a single pass below a few megabytes.
const MaxCanvasDimension = 16384

// ValidateCanvas checks that a canvas has positive, bounded integer dimensions.
func ValidateCanvas(width, height int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidConfiguration, "canvas dimensions must be positive, got %dx%d", width, height)
	}
	if width > MaxCanvasDimension || height > MaxCanvasDimension {
		return New(ErrCodeInvalidConfiguration, "canvas too large (max %d per side), got %dx%d",
			MaxCanvasDimension, width, height)
	}
	return nil
}

// MaxRenderScale bounds the raster scale factor of PNG output.
const MaxRenderScale = 8.0

// MaxRenderPixels bounds the pixel count of one raster image (an 8192×8192
// RGBA buffer is 256 MiB).
const MaxRenderPixels = 8192 * 8192

// ValidateRenderSize checks that rasterizing a width×height canvas at scale
// stays within [MaxRenderScale] and [MaxRenderPixels].
func ValidateRenderSize(width, height int, scale float64) error {
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0 {
		return New(ErrCodeInvalidConfiguration, "scale must be positive, got %v", scale)
	}
	if scale > MaxRenderScale {
		return New(ErrCodeInvalidConfiguration, "scale too large (max %v), got %v", MaxRenderScale, scale)
	}
	w := math.Ceil(float64(width) * scale)
	h := math.Ceil(float64(height) * scale)
	if w*h > MaxRenderPixels {
		return New(ErrCodeInvalidConfiguration, "image too large (max %d pixels), got %.0fx%.0f", MaxRenderPixels, w, h)
	}
	return nil
}

// ValidateThumbnail checks thumbnail bounds. Zero means "derive from the
// other side".
func ValidateThumbnail(width, height int) error {
	if width < 0 || height < 0 {
		return New(ErrCodeInvalidConfiguration, "thumbnail dimensions must not be negative, got %dx%d", width, height)
	}
	if width > MaxCanvasDimension || height > MaxCanvasDimension {
		return New(ErrCodeInvalidConfiguration, "thumbnail too large (max %d per side), got %dx%d",
			MaxCanvasDimension, width, height)
	}
	if width*height > MaxRenderPixels {
		return New(ErrCodeInvalidConfiguration, "thumbnail too large (max %d pixels), got %dx%d", MaxRenderPixels, width, height)
	}
	return nil
}

// ValidateWeight rejects NaN and infinite weights.
func ValidateWeight(text string, w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return New(ErrCodeInvalidConfiguration, "weight of %q must be finite, got %v", text, w)
	}
	return nil
}

// ValidateText checks a tag text for control characters other than plain whitespace.
// Empty text is allowed; the layout engine excludes it as a degenerate glyph.
func ValidateText(text string) error {
	if len(text) > 1024 {
		return New(ErrCodeInvalidInput, "tag text too long (max 1024 bytes)")
	}
	for _, r := range text {
		if r == '\x00' || (unicode.IsControl(r) && !unicode.IsSpace(r)) {
			return New(ErrCodeInvalidInput, "tag text contains invalid control characters")
		}
	}
	return nil
}

// ValidFormats lists the output formats the renderers support.
var ValidFormats = []string{"svg", "png", "pdf", "json"}

// ValidateFormat checks an output format name.
func ValidateFormat(format string) error {
	for _, f := range ValidFormats {
		if format == f {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(ValidFormats, ", "))
}

// ValidModes lists the spiral placement modes.
var ValidModes = []string{"spiral", "rectangular"}

// ValidateMode checks a placement mode name.
func ValidateMode(mode string) error {
	for _, m := range ValidModes {
		if mode == m {
			return nil
		}
	}
	return New(ErrCodeInvalidMode, "unknown placement mode %q (want spiral or rectangular)", mode)
}

// hexColorRegex matches #rgb and #rrggbb colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor validates a hex color string such as "#3b5998".
func ValidateColor(color string) error {
	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidColor, "invalid color %q (want #rgb or #rrggbb)", color)
	}
	return nil
}

// ValidatePath validates a relative output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
