// Package config holds the lot-watcher configuration.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Config is the top-level configuration.
type Config struct {
	LogLevel string        `toml:"log_level"`
	Display  DisplayConfig `toml:"display"`
	Refresh  RefreshConfig `toml:"refresh"`
}

// DisplayConfig controls how derived values are rendered.
type DisplayConfig struct {
	// BidPrefix precedes the current bid when a highest bid exists.
	BidPrefix string `toml:"bid_prefix"`
	// MissingBidPrefix precedes the opening bid when nobody has bid yet.
	MissingBidPrefix string `toml:"missing_bid_prefix"`
	// Format is the output format: text, json or cbor.
	Format string `toml:"format"`
}

// RefreshConfig controls the refetch loop.
type RefreshConfig struct {
	Interval Duration `toml:"interval"`
}

// Duration wraps time.Duration so TOML can hold strings like "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

var validFormats = map[string]bool{"text": true, "json": true, "cbor": true}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		LogLevel: "info",
		Display: DisplayConfig{
			BidPrefix:        "Current Bid: ",
			MissingBidPrefix: "Starting Bid: ",
			Format:           "text",
		},
		Refresh: RefreshConfig{
			Interval: Duration{30 * time.Second},
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []string

	if _, ok := logLevels[strings.ToLower(c.LogLevel)]; !ok {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}
	if !validFormats[strings.ToLower(c.Display.Format)] {
		errs = append(errs, fmt.Sprintf("unknown display.format %q (valid: text, json, cbor)", c.Display.Format))
	}
	if c.Refresh.Interval.Duration <= 0 {
		errs = append(errs, "refresh.interval must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// SlogLevel returns the configured log level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	if level, ok := logLevels[strings.ToLower(c.LogLevel)]; ok {
		return level
	}
	return slog.LevelInfo
}
