package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/KudcraftsHQ/slidekit/pkg/errors"
	"github.com/KudcraftsHQ/slidekit/pkg/fonts"
)

// =============================================================================
// Config - TOML Configuration File
// =============================================================================

// Config holds user configuration loaded from ~/.config/slidekit/config.toml.
// Every field is optional; zero values fall back to built-in defaults.
type Config struct {
	// CacheDir overrides the XDG cache directory.
	CacheDir string `toml:"cache_dir"`

	// FetchTimeoutSeconds bounds font and image downloads.
	FetchTimeoutSeconds int `toml:"fetch_timeout_seconds"`

	// JPEGQuality is the default quality for JPEG output (0..1).
	JPEGQuality float64 `toml:"jpeg_quality"`

	// ExportConcurrency bounds parallel slide renders during export.
	// Zero means the number of CPUs.
	ExportConcurrency int `toml:"export_concurrency"`

	// Redis, when Addr is set, replaces the file-based render cache.
	Redis RedisConfig `toml:"redis"`

	// Fonts registers extra font families on top of the built-in
	// registry. A family with a built-in name replaces it.
	Fonts []FontFamilyConfig `toml:"fonts"`
}

// RedisConfig configures the optional Redis render cache.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// FontFamilyConfig declares one extra font family.
type FontFamilyConfig struct {
	Name     string              `toml:"name"`
	Serif    bool                `toml:"serif"`
	Variants []FontVariantConfig `toml:"variants"`
}

// FontVariantConfig declares one downloadable face of a family.
type FontVariantConfig struct {
	Weight int    `toml:"weight"`
	Italic bool   `toml:"italic"`
	URL    string `toml:"url"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		FetchTimeoutSeconds: 30,
		JPEGQuality:         0.9,
	}
}

// FetchTimeout returns the configured fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	if c.FetchTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// Families converts the configured font entries into registry families.
// Entries without variants or without a name are skipped.
func (c *Config) Families() []fonts.Family {
	var out []fonts.Family
	for _, fc := range c.Fonts {
		if fc.Name == "" || len(fc.Variants) == 0 {
			continue
		}
		fam := fonts.Family{
			Name:     fc.Name,
			Serif:    fc.Serif,
			Variants: make(map[fonts.Variant]string, len(fc.Variants)),
		}
		for _, v := range fc.Variants {
			if v.URL == "" {
				continue
			}
			fam.Variants[fonts.Variant{Weight: v.Weight, Italic: v.Italic}] = v.URL
		}
		if len(fam.Variants) > 0 {
			out = append(out, fam)
		}
	}
	return out
}

// LoadConfig reads a TOML config file. With an empty path the default
// location is used and a missing file yields the defaults; an explicit
// path must exist.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		var err error
		if path, err = defaultConfigPath(); err != nil {
			return DefaultConfig(), nil
		}
	}

	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "load config %s", path)
	}
	if cfg.JPEGQuality < 0 || cfg.JPEGQuality > 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "jpeg_quality %g out of range [0,1]", cfg.JPEGQuality)
	}
	return cfg, nil
}

// defaultConfigPath returns ~/.config/slidekit/config.toml, honoring
// XDG_CONFIG_HOME.
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
