// Package config holds the viewer's runtime settings.
//
// Settings come from the environment (PHANY_* variables). Persistent storage
// of settings is a declared contract, Store, with no on-disk format yet; the
// Unimplemented store reports that explicitly instead of dropping writes.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ironsheep/phany/internal/logging"
)

// Environment variables read by FromEnv.
const (
	EnvLogLevel      = "PHANY_LOG_LEVEL"
	EnvDecodeTimeout = "PHANY_DECODE_TIMEOUT"
	EnvPipeline      = "PHANY_PIPELINE"
	EnvPipelineFast  = "PHANY_PIPELINE_FAST"
	EnvFrameSize     = "PHANY_FRAME_SIZE"
)

// ErrNotImplemented is returned by stores that cannot persist settings.
var ErrNotImplemented = errors.New("config persistence not implemented")

// Config is the set of runtime settings.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level"`

	// DecodeTimeout bounds a single image decode. Zero means no timeout.
	DecodeTimeout time.Duration `json:"decode_timeout"`

	// Pipeline names registered operations applied, in order, to every
	// decoded image before it is shown. Empty by default.
	Pipeline []string `json:"pipeline,omitempty"`

	// PipelineFast selects the fast variant of each pipeline operation.
	PipelineFast bool `json:"pipeline_fast"`

	// FrameWidth and FrameHeight are the default render size.
	FrameWidth  int `json:"frame_width"`
	FrameHeight int `json:"frame_height"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		LogLevel:    "info",
		FrameWidth:  1024,
		FrameHeight: 768,
	}
}

// FromEnv returns Default overridden by any PHANY_* variables that are set.
func FromEnv() (*Config, error) {
	return fromLookup(os.LookupEnv)
}

// Load reads the stored settings and overrides them from the environment.
func Load(ctx context.Context, store Store) (*Config, error) {
	cfg, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return applyEnv(cfg, os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (*Config, error) {
	return applyEnv(Default(), lookup)
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) (*Config, error) {
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvDecodeTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvDecodeTimeout, err)
		}
		cfg.DecodeTimeout = d
	}
	if v, ok := lookup(EnvPipeline); ok {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Pipeline = append(cfg.Pipeline, name)
			}
		}
	}
	if v, ok := lookup(EnvPipelineFast); ok && v != "" {
		fast, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvPipelineFast, err)
		}
		cfg.PipelineFast = fast
	}
	if v, ok := lookup(EnvFrameSize); ok && v != "" {
		w, h, err := parseSize(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvFrameSize, err)
		}
		cfg.FrameWidth, cfg.FrameHeight = w, h
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.DecodeTimeout < 0 {
		return fmt.Errorf("decode timeout must not be negative: %s", c.DecodeTimeout)
	}
	if c.FrameWidth <= 0 || c.FrameHeight <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", c.FrameWidth, c.FrameHeight)
	}
	return nil
}

// parseSize parses "WIDTHxHEIGHT".
func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q is not WIDTHxHEIGHT", s)
	}
	w, err := strconv.Atoi(strings.TrimSpace(ws))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width: %w", err)
	}
	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height: %w", err)
	}
	return w, h, nil
}

// Store persists settings across sessions.
type Store interface {
	Load(ctx context.Context) (*Config, error)
	Save(ctx context.Context, cfg *Config) error
}

// Unimplemented is the Store used until a persistence format is defined.
// Load returns the defaults and Save always fails with ErrNotImplemented.
type Unimplemented struct{}

func (Unimplemented) Load(ctx context.Context) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Default(), nil
}

func (Unimplemented) Save(context.Context, *Config) error {
	return ErrNotImplemented
}
