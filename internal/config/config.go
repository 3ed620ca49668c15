// Package config loads the server configuration from the environment.
package config

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ironsheep/image-transform-mcp/internal/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Environment variables read by FromEnv.
const (
	EnvLogLevel       = "IMAGE_MCP_LOG_LEVEL"
	EnvMemoryFloorMB  = "IMAGE_MCP_MEMORY_FLOOR_MB"
	EnvQuality        = "IMAGE_MCP_QUALITY"
	EnvResampler      = "IMAGE_MCP_RESAMPLER"
	EnvFilter         = "IMAGE_MCP_FILTER"
	EnvJPEGBackground = "IMAGE_MCP_JPEG_BACKGROUND"
)

// Config is the server configuration. All fields have working defaults.
type Config struct {
	// LogLevel is "debug" or "info".
	LogLevel string

	// MemoryFloorMB is the working-memory budget, in MiB, guaranteed before
	// resampling.
	MemoryFloorMB int64

	// Quality is the JPEG quality used when a request does not set one (1-100).
	Quality int

	// Resampler selects the resize backend: "imaging" or "bild".
	Resampler string

	// Filter selects the resampling kernel, e.g. "lanczos".
	Filter string

	// JPEGBackground is a hex colour ("#RRGGBB") composited under transparent
	// pixels before JPEG encoding. Empty disables flattening.
	JPEGBackground string
}

// Default returns the configuration used when no environment is set.
func Default() Config {
	return Config{
		LogLevel:      "info",
		MemoryFloorMB: imaging.DefaultMemoryFloor >> 20,
		Quality:       imaging.DefaultQuality,
		Resampler:     string(imaging.BackendImaging),
		Filter:        string(imaging.FilterLanczos),
	}
}

// FromEnv returns Default overridden by any IMAGE_MCP_* variables that are
// set, validated.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	c := Default()

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup(EnvMemoryFloorMB); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c, errors.Wrapf(err, "config: %s", EnvMemoryFloorMB)
		}
		c.MemoryFloorMB = n
	}
	if v, ok := lookup(EnvQuality); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, errors.Wrapf(err, "config: %s", EnvQuality)
		}
		c.Quality = n
	}
	if v, ok := lookup(EnvResampler); ok && v != "" {
		c.Resampler = strings.ToLower(v)
	}
	if v, ok := lookup(EnvFilter); ok && v != "" {
		c.Filter = strings.ToLower(v)
	}
	if v, ok := lookup(EnvJPEGBackground); ok {
		c.JPEGBackground = v
	}

	return c, Validate(c)
}

// Validate returns an error if the configuration is inconsistent.
func Validate(c Config) error {
	switch c.LogLevel {
	case "debug", "info":
	default:
		return fmt.Errorf("config: LogLevel must be debug or info, got %q", c.LogLevel)
	}
	if c.MemoryFloorMB <= 0 {
		return errors.New("config: MemoryFloorMB must be positive")
	}
	if c.Quality < 1 || c.Quality > 100 {
		return errors.New("config: Quality must be between 1 and 100")
	}
	if _, err := imaging.NewResampler(imaging.Backend(c.Resampler), imaging.Filter(c.Filter)); err != nil {
		return errors.Wrap(err, "config")
	}
	if _, err := c.background(); err != nil {
		return err
	}
	return nil
}

// Debug reports whether debug logging is enabled.
func (c Config) Debug() bool { return c.LogLevel == "debug" }

// ImagingOptions converts the configuration into engine options. logger
// receives the engine's debug output and may be nil.
func (c Config) ImagingOptions(logger *log.Logger) (imaging.Options, error) {
	resampler, err := imaging.NewResampler(imaging.Backend(c.Resampler), imaging.Filter(c.Filter))
	if err != nil {
		return imaging.Options{}, errors.Wrap(err, "config")
	}
	bg, err := c.background()
	if err != nil {
		return imaging.Options{}, err
	}
	return imaging.Options{
		MemoryFloor:    c.MemoryFloorMB << 20,
		Resampler:      resampler,
		Quality:        c.Quality,
		JPEGBackground: bg,
		Logger:         logger,
	}, nil
}

func (c Config) background() (color.Color, error) {
	if c.JPEGBackground == "" {
		return nil, nil
	}
	hex := c.JPEGBackground
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	bg, err := colorful.Hex(hex)
	if err != nil {
		return nil, errors.Wrapf(err, "config: JPEGBackground %q", c.JPEGBackground)
	}
	return bg, nil
}
