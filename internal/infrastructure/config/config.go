// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ersonp/chrono-core/internal/domain/entities"
)

const (
	// DefaultConfigDir is the directory name for chrono configuration.
	DefaultConfigDir = ".chrono"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultCacheFile is the default result cache database name.
	DefaultCacheFile = "cache.db"
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	Source      SourceConfig          `yaml:"source,omitempty"`
	Cache       CacheConfig           `yaml:"cache,omitempty"`
	Game        GameConfig            `yaml:"game,omitempty"`
	BufferRules []entities.BufferRule `yaml:"buffer_rules,omitempty"`
}

// SourceConfig holds configuration for the external fact source.
type SourceConfig struct {
	// Provider selects the adapter: "wikipedia" or "openai".
	Provider string `yaml:"provider,omitempty"`
	// Endpoint is the MediaWiki API endpoint for the wikipedia provider.
	Endpoint string `yaml:"endpoint,omitempty"`
	// Model is the model name for the openai provider.
	Model string `yaml:"model,omitempty"`
	// APIKey is the API key for the openai provider.
	APIKey string `yaml:"api_key,omitempty"`
}

// CacheConfig holds configuration for the result cache.
type CacheConfig struct {
	// Path is the file path to the cache database. Empty means the default
	// location under the config directory.
	Path string `yaml:"path,omitempty"`
	// Capacity is the maximum number of cached queries.
	Capacity int `yaml:"capacity,omitempty"`
}

// GameConfig holds gameplay tuning.
type GameConfig struct {
	// MaxCandidates is how many facts a classification surfaces for
	// disambiguation.
	MaxCandidates int `yaml:"max_candidates,omitempty"`
	// SearchLimit is how many ranked hits are requested per lookup.
	SearchLimit int `yaml:"search_limit,omitempty"`
	// SeedCentury is the era the opening event is drawn from.
	SeedCentury int `yaml:"seed_century,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Provider: "wikipedia",
			Endpoint: "https://en.wikipedia.org/w/api.php",
			Model:    "gpt-4o-mini",
		},
		Cache: CacheConfig{
			Capacity: 200,
		},
		Game: GameConfig{
			MaxCandidates: 3,
			SearchLimit:   8,
			SeedCentury:   12,
		},
		BufferRules: entities.DefaultBufferRules(),
	}
}

// Load loads configuration from the .chrono directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'chrono init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := ValidateBufferRules(cfg.BufferRules); err != nil {
		return nil, fmt.Errorf("validating buffer rules: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && c.Source.APIKey == "" {
		c.Source.APIKey = key
	}
}

// ValidateBufferRules checks that the rule set is ordered, non-overlapping,
// and covers the full plausible year span.
func ValidateBufferRules(rules []entities.BufferRule) error {
	if len(rules) == 0 {
		return fmt.Errorf("at least one buffer rule is required")
	}
	if rules[0].FromYear != entities.MinYear {
		return fmt.Errorf("rules must start at year %d, got %d", entities.MinYear, rules[0].FromYear)
	}
	for i, rule := range rules {
		if rule.ToYear < rule.FromYear {
			return fmt.Errorf("rule %d has to_year %d before from_year %d", i, rule.ToYear, rule.FromYear)
		}
		if rule.ToleranceYears < 0 {
			return fmt.Errorf("rule %d has negative tolerance", i)
		}
		if i > 0 && rule.FromYear != rules[i-1].ToYear+1 {
			return fmt.Errorf("rule %d leaves a gap or overlap after year %d", i, rules[i-1].ToYear)
		}
	}
	if last := rules[len(rules)-1]; last.ToYear != entities.MaxYear {
		return fmt.Errorf("rules must end at year %d, got %d", entities.MaxYear, last.ToYear)
	}
	return nil
}

// ConfigDir returns the path to the .chrono config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// CachePath returns the result cache database path, honoring an override
// from the config.
func (c *Config) CachePath(basePath string) string {
	if c.Cache.Path != "" {
		return c.Cache.Path
	}
	return filepath.Join(basePath, DefaultConfigDir, DefaultCacheFile)
}

// Exists checks if a chrono config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
