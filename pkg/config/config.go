// Package config loads heatgrid settings.
//
// Settings are resolved in increasing priority:
//
//  1. Built-in defaults ([Default])
//  2. A TOML file (--config, $HEATGRID_CONFIG, or ~/.config/heatgrid/config.toml)
//  3. HEATGRID_* environment variables, including those set in a .env file
//  4. Command-line flags, applied by the CLI after Load returns
//
// Example file:
//
//	year = 2025
//	dates = "~/habits/running.json"
//
//	[layout]
//	square_size = 18.0
//	week_start = "monday"
//
//	[palette.complete]
//	hex = "#2f855a"
//	alpha = 1.0
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/heatgrid/pkg/calendar"
	"github.com/matzehuels/heatgrid/pkg/errors"
	"github.com/matzehuels/heatgrid/pkg/grid"
	"github.com/matzehuels/heatgrid/pkg/heatmap"
	"github.com/matzehuels/heatgrid/pkg/ripple"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config holds all heatgrid settings.
type Config struct {
	Year    int             `toml:"year"`
	Dates   string          `toml:"dates"`
	Layout  LayoutConfig    `toml:"layout"`
	Ripple  RippleConfig    `toml:"ripple"`
	Palette heatmap.Palette `toml:"palette"`
	Cache   CacheConfig     `toml:"cache"`
	Server  ServerConfig    `toml:"server"`
	Log     LogConfig       `toml:"log"`
}

// LayoutConfig holds the grid geometry.
type LayoutConfig struct {
	SquareSize float64 `toml:"square_size"`
	Padding    float64 `toml:"padding"`
	MonthGap   float64 `toml:"month_gap"`
	WeekStart  string  `toml:"week_start"`
}

// RippleConfig holds the ripple timing in milliseconds.
type RippleConfig struct {
	DurationMs     int     `toml:"duration_ms"`
	MaxDistance    float64 `toml:"max_distance"`
	HighlightMs    int     `toml:"highlight_ms"`
	RestoreMs      int     `toml:"restore_ms"`
	Scale          float64 `toml:"scale"`
	HighlightColor string  `toml:"highlight_color"`
}

// CacheConfig selects the artifact cache.
type CacheConfig struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
	Prefix   string `toml:"prefix"`
}

// ServerConfig holds serve settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in settings. Year 0 means the current year.
func Default() Config {
	rc := ripple.DefaultConfig()
	return Config{
		Layout: LayoutConfig{
			SquareSize: grid.DefaultSquareSize,
			Padding:    grid.DefaultPadding,
			MonthGap:   grid.DefaultMonthGap,
			WeekStart:  "sunday",
		},
		Ripple: RippleConfig{
			DurationMs:     int(rc.Duration / time.Millisecond),
			MaxDistance:    rc.MaxDistance,
			HighlightMs:    int(rc.Highlight / time.Millisecond),
			RestoreMs:      int(rc.Restore / time.Millisecond),
			Scale:          rc.Scale,
			HighlightColor: rc.HighlightColor,
		},
		Palette: heatmap.DefaultPalette(),
		Cache:   CacheConfig{Backend: CacheFile, Prefix: "heatgrid:"},
		Server:  ServerConfig{Addr: "127.0.0.1:8080"},
		Log:     LogConfig{Level: "info"},
	}
}

// Load resolves the configuration. An explicit path must exist; the implicit
// locations are optional. A .env file in the working directory is loaded
// first without overriding variables that are already set.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = os.Getenv("HEATGRID_CONFIG")
		explicit = path != ""
	}
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		if err := cfg.decodeFile(path, explicit); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultPath returns ~/.config/heatgrid/config.toml (or the platform
// equivalent), or "" when no config directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "heatgrid", "config.toml")
}

func (c *Config) decodeFile(path string, required bool) error {
	path = ExpandHome(path)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if c.Year != 0 {
		if err := errors.ValidateYear(c.Year); err != nil {
			return err
		}
	}
	if err := errors.ValidateDimensions(c.Layout.SquareSize, c.Layout.Padding, c.Layout.MonthGap); err != nil {
		return err
	}
	if _, err := calendar.ParseWeekday(c.Layout.WeekStart); err != nil {
		return err
	}
	if err := c.RippleConfig().Validate(); err != nil {
		return err
	}
	if err := c.Palette.Validate(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache backend redis requires redis_url")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "log level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}
	return nil
}

// ResolveYear returns the configured year, or the year of now when unset.
func (c Config) ResolveYear(now time.Time) int {
	if c.Year != 0 {
		return c.Year
	}
	return now.Year()
}

// WeekStart returns the parsed week start. Validate has already checked it.
func (c Config) WeekStart() time.Weekday {
	wd, _ := calendar.ParseWeekday(c.Layout.WeekStart)
	return wd
}

// RippleConfig converts the ripple section.
func (c Config) RippleConfig() ripple.Config {
	return ripple.Config{
		Duration:       time.Duration(c.Ripple.DurationMs) * time.Millisecond,
		MaxDistance:    c.Ripple.MaxDistance,
		Highlight:      time.Duration(c.Ripple.HighlightMs) * time.Millisecond,
		Restore:        time.Duration(c.Ripple.RestoreMs) * time.Millisecond,
		Scale:          c.Ripple.Scale,
		HighlightColor: c.Ripple.HighlightColor,
	}
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
