// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"slices"

	"github.com/BurntSushi/toml"
)

// Default auto-match thresholds. A top candidate scoring at or above the
// threshold is selected without review.
const (
	DefaultTVThreshold    = 0.80
	DefaultMovieThreshold = 0.85
)

// Config is the root configuration structure.
type Config struct {
	Log       LogConfig       `toml:"log"`
	Database  DatabaseConfig  `toml:"database"`
	Libraries LibrariesConfig `toml:"libraries"`
	Matching  MatchingConfig  `toml:"matching"`
	TMDB      TMDBConfig      `toml:"tmdb"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type LibrariesConfig struct {
	TV     LibraryConfig `toml:"tv"`
	Movies LibraryConfig `toml:"movies"`
}

// LibraryConfig describes one media library: the roots that may be scanned
// and the naming templates the organizer targets.
type LibraryConfig struct {
	Roots        []string `toml:"roots"`
	FolderNaming string   `toml:"folder_naming"`
	FileNaming   string   `toml:"file_naming"`
}

type MatchingConfig struct {
	TVThreshold    float64 `toml:"tv_threshold"`
	MovieThreshold float64 `toml:"movie_threshold"`
}

type TMDBConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./data/shelfarr.db"
	}
	if c.Matching.TVThreshold == 0 {
		c.Matching.TVThreshold = DefaultTVThreshold
	}
	if c.Matching.MovieThreshold == 0 {
		c.Matching.MovieThreshold = DefaultMovieThreshold
	}
}

// Library returns the library configuration for the given media kind
// ("tv" or "movie").
func (c *Config) Library(kind string) LibraryConfig {
	if kind == "tv" {
		return c.Libraries.TV
	}
	return c.Libraries.Movies
}

// ValidateRoots checks that every requested root is one of the configured
// library roots for the media kind.
func (c *Config) ValidateRoots(kind string, roots []string) error {
	if len(roots) == 0 {
		return fmt.Errorf("at least one library root is required")
	}
	configured := c.Library(kind).Roots
	for _, r := range roots {
		if !slices.Contains(configured, r) {
			return fmt.Errorf("path %q is not a configured %s library root", r, kind)
		}
	}
	return nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1] // Strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match // Leave unchanged if not found
	})
}
