// Package config loads tagcloud settings from a TOML file.
//
// A config file mirrors the pipeline's option groups:
//
//	[layout]
//	width = 800
//	height = 600
//	mode = "spiral"
//	angle_count = 2
//	angle_from = 0
//	angle_to = 90
//	palette = "#3b5998"
//
//	[font]
//	family = "sans"
//
//	[[font.files]]
//	family = "serif"
//	path = "/usr/share/fonts/truetype/dejavu/DejaVuSerif.ttf"
//
//	[render]
//	formats = ["svg", "png"]
//	scale = 2
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//	read_timeout = "10s"
//
// Every key is optional. Command-line flags override file values.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tagcloud/pkg/cache"
	errs "github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/fonts"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
)

// FileName is the config file looked up in the user config directory.
const FileName = "config.toml"

// Server defaults.
const (
	DefaultAddr         = ":8080"
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 60 * time.Second
	DefaultMaxBodyBytes = 4 << 20
)

// Config is the decoded config file.
type Config struct {
	Layout Layout `toml:"layout"`
	Font   Font   `toml:"font"`
	Render Render `toml:"render"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
}

// Layout holds the [layout] section.
type Layout struct {
	Width      int       `toml:"width"`
	Height     int       `toml:"height"`
	Mode       string    `toml:"mode"`
	Angles     []float64 `toml:"angles"`
	AngleCount int       `toml:"angle_count"`
	AngleFrom  float64   `toml:"angle_from"`
	AngleTo    float64   `toml:"angle_to"`
	Padding    *float64  `toml:"padding"`
	Domain     []float64 `toml:"domain"`
	Palette    string    `toml:"palette"`
}

// Font holds the [font] section.
type Font struct {
	Family string     `toml:"family"`
	Style  string     `toml:"style"`
	Weight string     `toml:"weight"`
	Files  []FontFile `toml:"files"`
}

// FontFile registers a TrueType file under a family.
type FontFile struct {
	Family string `toml:"family"`
	Style  string `toml:"style"`
	Weight string `toml:"weight"`
	Path   string `toml:"path"`
}

// Render holds the [render] section.
type Render struct {
	Formats     []string `toml:"formats"`
	Scale       float64  `toml:"scale"`
	Background  string   `toml:"background"`
	ThumbWidth  int      `toml:"thumb_width"`
	ThumbHeight int      `toml:"thumb_height"`
	RSVG        bool     `toml:"rsvg"`
}

// Cache holds the [cache] section.
type Cache struct {
	Backend         string `toml:"backend"` // none, memory, file, redis, mongo
	Dir             string `toml:"dir"`
	RedisAddr       string `toml:"redis_addr"`
	RedisPassword   string `toml:"redis_password"`
	RedisDB         int    `toml:"redis_db"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Server holds the [server] section.
type Server struct {
	Addr         string        `toml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
	MaxBodyBytes int64         `toml:"max_body_bytes"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Layout: Layout{
			Width:   pipeline.DefaultWidth,
			Height:  pipeline.DefaultHeight,
			Mode:    pipeline.DefaultMode,
			Palette: pipeline.DefaultPalette,
		},
		Font:   Font{Family: fonts.DefaultFamily},
		Render: Render{Formats: []string{pipeline.FormatSVG}},
		Cache:  Cache{Backend: cache.BackendFile},
		Server: Server{
			Addr:         DefaultAddr,
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
	}
}

// DefaultPath returns the config file path in the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tagcloud", FileName), nil
}

// Load reads path over the defaults. An empty path loads the file at
// DefaultPath if it exists, and the defaults otherwise.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		if os.IsNotExist(err) {
			return Config{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return Config{}, errs.Wrap(errs.ErrCodeInvalidPath, err, "open config %s", path)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfiguration, err, "config %s", path)
	}
	return cfg, nil
}

// Decode parses TOML from r over the defaults. Unknown keys are rejected.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errs.New(errs.ErrCodeInvalidConfiguration, "unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Options converts the layout, font and render sections to pipeline options.
func (c Config) Options() pipeline.Options {
	l, f, r := c.Layout, c.Font, c.Render
	opts := pipeline.Options{
		Width:       l.Width,
		Height:      l.Height,
		Mode:        l.Mode,
		Angles:      l.Angles,
		AngleCount:  l.AngleCount,
		AngleFrom:   l.AngleFrom,
		AngleTo:     l.AngleTo,
		Padding:     l.Padding,
		Domain:      l.Domain,
		Palette:     l.Palette,
		FontFamily:  f.Family,
		FontStyle:   f.Style,
		FontWeight:  f.Weight,
		Formats:     r.Formats,
		Scale:       r.Scale,
		Background:  r.Background,
		ThumbWidth:  r.ThumbWidth,
		ThumbHeight: r.ThumbHeight,
		UseRSVG:     r.RSVG,
	}
	return opts
}

// CacheConfig converts the [cache] section. A file backend without a
// directory uses defaultDir.
func (c Config) CacheConfig(defaultDir string) cache.Config {
	cc := cache.Config{
		Backend: c.Cache.Backend,
		Dir:     c.Cache.Dir,
		Redis: cache.RedisConfig{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
		},
		Mongo: cache.MongoConfig{
			URI:        c.Cache.MongoURI,
			Database:   c.Cache.MongoDatabase,
			Collection: c.Cache.MongoCollection,
		},
	}
	if cc.Backend == cache.BackendFile && cc.Dir == "" {
		cc.Dir = defaultDir
	}
	return cc
}

// Registry returns the default font registry, or a fresh one with the
// configured font files added.
func (c Config) Registry() (*fonts.Registry, error) {
	if len(c.Font.Files) == 0 {
		return fonts.Default(), nil
	}
	reg := fonts.NewRegistry()
	for _, ff := range c.Font.Files {
		if ff.Family == "" || ff.Path == "" {
			return nil, errs.New(errs.ErrCodeInvalidFont, "font file needs a family and a path")
		}
		if err := reg.RegisterFile(ff.Family, ff.Style, ff.Weight, ff.Path); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFont, err, "register font %s", ff.Path)
		}
	}
	return reg, nil
}
