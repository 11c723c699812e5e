package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment variable overrides.
const EnvPrefix = "SCHOLIA_"

// nestedKeys are the top-level keys whose children may be set from the
// environment, e.g. SCHOLIA_SERVER_PORT -> server.port.
var nestedKeys = []string{"site", "server", "reader", "log"}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SCHOLIA_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps SCHOLIA_READER_FADE_MS to reader.fade_ms and
// SCHOLIA_CONTENT_DIR to content_dir.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, parent := range nestedKeys {
		if strings.HasPrefix(key, parent+"_") {
			return parent + "." + strings.TrimPrefix(key, parent+"_")
		}
	}
	return key
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validFormats = map[string]bool{
	FormatJSON:    true,
	FormatConsole: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("content_dir is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.Reader.LookAheadPx < 0 {
		return fmt.Errorf("reader.look_ahead_px must be non-negative")
	}
	if c.Reader.LastSectionViewports <= 0 {
		return fmt.Errorf("reader.last_section_viewports must be positive")
	}
	if c.Reader.FadeMS <= 0 {
		return fmt.Errorf("reader.fade_ms must be positive")
	}
	if c.Reader.TruncateAt <= 0 {
		return fmt.Errorf("reader.truncate_at must be positive")
	}
	if c.Log.Level != "" && !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log.level %q: must be one of debug, info, warn, error", c.Log.Level)
	}
	if c.Log.Format != "" && !validFormats[c.Log.Format] {
		return fmt.Errorf("invalid log.format %q: must be json or console", c.Log.Format)
	}
	return nil
}

// Fade is the marginalia fade-out duration.
func (r ReaderConfig) Fade() time.Duration {
	return time.Duration(r.FadeMS) * time.Millisecond
}
