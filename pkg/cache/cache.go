// Package cache stores computed layouts and rendered artifacts.
//
// # Backends
//
//   - [NullCache]: caching disabled
//   - [MemoryCache]: in-process map, for tests and single-instance servers
//   - [FileCache]: one file per entry, for the CLI (~/.cache/tagcloud)
//   - [RedisCache]: shared cache for multi-instance deployments
//   - [MongoCache]: durable storage with server-side expiry
//
// # Keys
//
// A [Keyer] derives keys from content hashes plus every option that affects
// the output, so a changed option never returns a stale entry:
//
//	k := cache.NewDefaultKeyer()
//	key := k.LayoutKey(cache.Hash(tagsJSON), cache.LayoutKeyOpts{Width: 800, Height: 600})
//
// Layouts stored by the HTTP API are addressed by ID instead, via
// [Keyer.DocumentKey].
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A zero ttl stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Entry lifetimes.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
	TTLDocument = 24 * time.Hour
)

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies a layout of the tags hashing to tagsHash.
	LayoutKey(tagsHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies one rendered format of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
	// DocumentKey identifies a layout stored under an ID.
	DocumentKey(id string) string
}

// LayoutKeyOpts lists the layout options that change the placement.
type LayoutKeyOpts struct {
	Width   int       `json:"w"`
	Height  int       `json:"h"`
	Mode    string    `json:"mode"`
	Angles  []float64 `json:"angles"`
	Font    string    `json:"font"`
	Padding float64   `json:"pad"`
	Domain  []float64 `json:"domain,omitempty"`
	Palette string    `json:"palette,omitempty"`
}

// ArtifactKeyOpts lists the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Scale      float64 `json:"scale,omitempty"`
	Background string  `json:"bg,omitempty"`
	Thumbnail  [2]int  `json:"thumb,omitempty"`
	Converter  string  `json:"conv,omitempty"`
}

// DefaultKeyer hashes options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(tagsHash string, opts LayoutKeyOpts) string {
	return hashKey("cloud", tagsHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// DocumentKey implements [Keyer].
func (DefaultKeyer) DocumentKey(id string) string {
	return "layout:" + id
}
