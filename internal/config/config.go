// Package config loads cardspace settings from a TOML file.
//
// The file is optional: every field has a default, and a missing file
// yields [Default]. Values present in the file override the defaults
// field by field.
//
//	[layout]
//	initial = "helix"
//	sphere_radius = 800
//
//	[transition]
//	duration = "1.5s"
//
//	[source]
//	kind = "sheet"
//	url = "https://docs.google.com/spreadsheets/d/.../pub?output=csv"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cardspace/pkg/errors"
	"github.com/matzehuels/cardspace/pkg/layout"
	"github.com/matzehuels/cardspace/pkg/records"
	"github.com/matzehuels/cardspace/pkg/selector"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the complete configuration.
type Config struct {
	Layout     Layout     `toml:"layout"`
	Transition Transition `toml:"transition"`
	Source     Source     `toml:"source"`
	Cache      Cache      `toml:"cache"`
	Server     Server     `toml:"server"`
}

// Layout holds the initial layout and the geometry constants.
type Layout struct {
	Initial string `toml:"initial"`

	TableColumns  int     `toml:"table_columns"`
	TableRows     int     `toml:"table_rows"`
	TableSpacingX float64 `toml:"table_spacing_x"`
	TableSpacingY float64 `toml:"table_spacing_y"`

	SphereRadius float64 `toml:"sphere_radius"`

	HelixRadius    float64 `toml:"helix_radius"`
	HelixStep      float64 `toml:"helix_step"`
	HelixAngleStep float64 `toml:"helix_angle_step"`
	HelixTop       float64 `toml:"helix_top"`

	GridColumns int     `toml:"grid_columns"`
	GridRows    int     `toml:"grid_rows"`
	GridDepth   int     `toml:"grid_depth"`
	GridCell    float64 `toml:"grid_cell"`

	TetraSpacing     float64 `toml:"tetra_spacing"`
	TetraLayerHeight float64 `toml:"tetra_layer_height"`
	TetraTop         float64 `toml:"tetra_top"`
	TetraFaceCenter  bool    `toml:"tetra_face_center"`
}

// Transition configures animation timing.
type Transition struct {
	Duration Duration `toml:"duration"`
	Jitter   bool     `toml:"jitter"`
	FPS      int      `toml:"fps"`
}

// Source selects the record provider.
type Source struct {
	Kind  string `toml:"kind"`
	Count int    `toml:"count"`
	Seed  uint64 `toml:"seed"`

	URL string `toml:"url"`

	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Cache selects the cache backend.
type Cache struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	Prefix        string   `toml:"prefix"`
	SheetTTL      Duration `toml:"sheet_ttl"`
}

// Server configures the HTTP API.
type Server struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// Duration is a time.Duration written as a string such as "2s" or "1500ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	lo := layout.DefaultOptions()
	return Config{
		Layout: Layout{
			Initial:          string(layout.Table),
			TableColumns:     lo.TableColumns,
			TableRows:        lo.TableRows,
			TableSpacingX:    lo.TableSpacingX,
			TableSpacingY:    lo.TableSpacingY,
			SphereRadius:     lo.SphereRadius,
			HelixRadius:      lo.HelixRadius,
			HelixStep:        lo.HelixStep,
			HelixAngleStep:   lo.HelixAngleStep,
			HelixTop:         lo.HelixTop,
			GridColumns:      lo.GridColumns,
			GridRows:         lo.GridRows,
			GridDepth:        lo.GridDepth,
			GridCell:         lo.GridCell,
			TetraSpacing:     lo.TetraSpacing,
			TetraLayerHeight: lo.TetraLayerHeight,
			TetraTop:         lo.TetraTop,
			TetraFaceCenter:  lo.TetraFaceCenter,
		},
		Transition: Transition{
			Duration: Duration{selector.DefaultDuration},
			Jitter:   true,
			FPS:      60,
		},
		Source: Source{
			Kind:            records.SourcePlaceholder,
			Count:           records.DefaultPlaceholderCount,
			MongoDatabase:   "cardspace",
			MongoCollection: "records",
		},
		Cache: Cache{
			Backend:  CacheFile,
			SheetTTL: Duration{time.Hour},
		},
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  Duration{10 * time.Second},
			WriteTimeout: Duration{30 * time.Second},
		},
	}
}

// Path returns the default config file location,
// $XDG_CONFIG_HOME/cardspace/config.toml or ~/.config/cardspace/config.toml.
func Path() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, "cardspace", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "cardspace", "config.toml"), nil
}

// Load reads path over the defaults and validates the result. An empty
// path means [Path]. A missing file is not an error unless the path was
// given explicitly.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	return Parse(data)
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, ok := layout.ParseKind(c.Layout.Initial); !ok {
		return invalid("layout.initial: unknown layout %q", c.Layout.Initial)
	}
	for name, v := range map[string]int{
		"layout.table_columns": c.Layout.TableColumns,
		"layout.table_rows":    c.Layout.TableRows,
		"layout.grid_columns":  c.Layout.GridColumns,
		"layout.grid_rows":     c.Layout.GridRows,
		"layout.grid_depth":    c.Layout.GridDepth,
	} {
		if v <= 0 {
			return invalid("%s must be positive, got %d", name, v)
		}
	}
	if c.Layout.SphereRadius < 0 || c.Layout.HelixRadius < 0 {
		return invalid("layout radii cannot be negative")
	}

	if c.Transition.Duration.Duration <= 0 {
		return invalid("transition.duration must be positive, got %s", c.Transition.Duration)
	}
	if c.Transition.FPS <= 0 || c.Transition.FPS > 240 {
		return invalid("transition.fps must be in 1..240, got %d", c.Transition.FPS)
	}

	switch c.Source.Kind {
	case records.SourcePlaceholder:
		if err := errors.ValidateRecordCount(c.Source.Count); err != nil {
			return invalid("source.count: %s", errors.UserMessage(err))
		}
	case records.SourceSheet:
		if err := errors.ValidateURL(c.Source.URL); err != nil {
			return invalid("source.url: %s", errors.UserMessage(err))
		}
	case records.SourceMongo:
		if c.Source.MongoURI == "" || c.Source.MongoCollection == "" {
			return invalid("source.mongo_uri and source.mongo_collection are required for mongo")
		}
	default:
		return invalid("source.kind: unknown source %q", c.Source.Kind)
	}

	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return invalid("cache.redis_addr is required for the redis backend")
		}
	default:
		return invalid("cache.backend: unknown backend %q", c.Cache.Backend)
	}

	if c.Server.Addr == "" {
		return invalid("server.addr cannot be empty")
	}
	return nil
}

// LayoutOptions converts the layout section for the layout engine.
func (c Config) LayoutOptions() *layout.Options {
	opts := layout.DefaultOptions()
	l := c.Layout
	opts.TableColumns, opts.TableRows = l.TableColumns, l.TableRows
	opts.TableSpacingX, opts.TableSpacingY = l.TableSpacingX, l.TableSpacingY
	opts.SphereRadius = l.SphereRadius
	opts.HelixRadius, opts.HelixStep = l.HelixRadius, l.HelixStep
	opts.HelixAngleStep, opts.HelixTop = l.HelixAngleStep, l.HelixTop
	opts.GridColumns, opts.GridRows, opts.GridDepth = l.GridColumns, l.GridRows, l.GridDepth
	opts.GridCell = l.GridCell
	opts.TetraSpacing, opts.TetraLayerHeight, opts.TetraTop = l.TetraSpacing, l.TetraLayerHeight, l.TetraTop
	opts.TetraFaceCenter = l.TetraFaceCenter
	return &opts
}

// FrameInterval is the time between animation frames.
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Transition.FPS)
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidConfig, format, args...)
}
