package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load starts from Defaults, decodes the TOML file at path on top (skipped
// when path is empty), then applies OPENLOT_* environment overrides,
// including any set in a .env file. A malformed environment value is an
// error; the result is otherwise not validated.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	setStr(&cfg.LogLevel, "OPENLOT_LOG_LEVEL")

	setStr(&cfg.Display.BidPrefix, "OPENLOT_BID_PREFIX")
	setStr(&cfg.Display.MissingBidPrefix, "OPENLOT_MISSING_BID_PREFIX")
	setStr(&cfg.Display.Format, "OPENLOT_FORMAT")

	return setDuration(&cfg.Refresh.Interval, "OPENLOT_REFRESH_INTERVAL")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	dst.Duration = d
	return nil
}
