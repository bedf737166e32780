package config

import (
	"os"
	"strconv"

	"github.com/matzehuels/heatgrid/pkg/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "HEATGRID_"

// applyEnv overlays HEATGRID_* variables.
func (c *Config) applyEnv() error {
	strs := []struct {
		name string
		dst  *string
	}{
		{"DATES", &c.Dates},
		{"WEEK_START", &c.Layout.WeekStart},
		{"CACHE", &c.Cache.Backend},
		{"CACHE_DIR", &c.Cache.Dir},
		{"REDIS_URL", &c.Cache.RedisURL},
		{"CACHE_PREFIX", &c.Cache.Prefix},
		{"ADDR", &c.Server.Addr},
		{"LOG_LEVEL", &c.Log.Level},
	}
	for _, s := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + s.name); ok {
			*s.dst = v
		}
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"SQUARE_SIZE", &c.Layout.SquareSize},
		{"PADDING", &c.Layout.Padding},
		{"MONTH_GAP", &c.Layout.MonthGap},
	}
	for _, f := range floats {
		v, ok := os.LookupEnv(EnvPrefix + f.name)
		if !ok {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s%s", EnvPrefix, f.name)
		}
		*f.dst = n
	}

	if v, ok := os.LookupEnv(EnvPrefix + "YEAR"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%sYEAR", EnvPrefix)
		}
		c.Year = n
	}
	return nil
}
