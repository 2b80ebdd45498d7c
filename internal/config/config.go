package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	LogLevel  string          `yaml:"log_level"`
	PageSize  int             `yaml:"page_size"`
	Owner     string          `yaml:"owner"`
	UserAgent string          `yaml:"user_agent"`
	Endpoints EndpointsConfig `yaml:"endpoints"`
	GitHub    GitHubConfig    `yaml:"github"`
	Videos    VideosConfig    `yaml:"videos"`
	Repos     []string        `yaml:"repos"`
	Feeds     []FeedItem      `yaml:"feeds"`
	Recent    RecentConfig    `yaml:"recent"`
}

// EndpointsConfig holds the remote locations of every content kind.
type EndpointsConfig struct {
	Books     EndpointConfig `yaml:"books"`
	Courses   EndpointConfig `yaml:"courses"`
	Packages  EndpointConfig `yaml:"packages"`
	GitHub    EndpointConfig `yaml:"github"`
	Playlists EndpointConfig `yaml:"playlists"`
	VideosAPI EndpointConfig `yaml:"videos_api"`
}

// EndpointConfig is one URL and its request timeout.
type EndpointConfig struct {
	URL     string `yaml:"url"`
	Timeout string `yaml:"timeout"`
}

// ParseTimeout returns the timeout as time.Duration, or def when it is unset
// or malformed.
func (e EndpointConfig) ParseTimeout(def time.Duration) time.Duration {
	d, err := time.ParseDuration(e.Timeout)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// GitHubConfig for the repository fetcher.
type GitHubConfig struct {
	Token string `yaml:"token"`
}

// VideosConfig for the conference video statistics API.
type VideosConfig struct {
	APIKey string `yaml:"api_key"`
}

// FeedItem is a single RSS/Atom feed entry.
type FeedItem struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// RecentConfig configures the recent activity listing.
type RecentConfig struct {
	PerFeed int    `yaml:"per_feed"`
	Timeout string `yaml:"timeout"`
}

// ParseTimeout returns the per-feed timeout as time.Duration.
func (r RecentConfig) ParseTimeout() time.Duration {
	d, err := time.ParseDuration(r.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		LogLevel:  "error",
		PageSize:  10,
		Owner:     "ardalis",
		UserAgent: "ardalis-cli",
		Endpoints: EndpointsConfig{
			Books:     EndpointConfig{URL: "https://ardalis.com/books.json", Timeout: "10s"},
			Courses:   EndpointConfig{URL: "https://ardalis.com/courses.json", Timeout: "10s"},
			Packages:  EndpointConfig{URL: "https://azuresearch-usnc.nuget.org/query", Timeout: "10s"},
			GitHub:    EndpointConfig{URL: "https://api.github.com", Timeout: "10s"},
			Playlists: EndpointConfig{URL: "https://ardalis.com/playlists.json", Timeout: "30s"},
			VideosAPI: EndpointConfig{URL: "https://api.ardalis.com", Timeout: "30s"},
		},
		Repos: []string{
			"CleanArchitecture",
			"Specification",
			"GuardClauses",
			"Result",
			"SmartEnum",
		},
		Feeds: []FeedItem{
			{Name: "Blog", URL: "https://ardalis.com/rss.xml"},
			{Name: "GitHub", URL: "https://github.com/ardalis.atom"},
		},
		Recent: RecentConfig{PerFeed: 5, Timeout: "10s"},
	}
}

// DefaultPath returns the configuration file used when none is given:
// ./config.yaml if present, then $XDG_CONFIG_HOME/ardalis/config.yaml (or
// ~/.config/ardalis/config.yaml). It returns "" when neither exists.
func DefaultPath() string {
	candidates := []string{"config.yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "ardalis", "config.yaml"))
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// Load reads configuration from a YAML file and applies env var overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	var errs []error
	if c.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("page_size must be at least 1, got %d", c.PageSize))
	}
	if c.Recent.PerFeed <= 0 {
		errs = append(errs, fmt.Errorf("recent.per_feed must be at least 1, got %d", c.Recent.PerFeed))
	}
	endpoints := []struct {
		name string
		ep   EndpointConfig
	}{
		{"books", c.Endpoints.Books},
		{"courses", c.Endpoints.Courses},
		{"packages", c.Endpoints.Packages},
		{"github", c.Endpoints.GitHub},
		{"playlists", c.Endpoints.Playlists},
		{"videos_api", c.Endpoints.VideosAPI},
	}
	for _, e := range endpoints {
		if e.ep.URL == "" {
			errs = append(errs, fmt.Errorf("endpoints.%s.url is empty", e.name))
		}
	}
	return errors.Join(errs...)
}

// applyEnvOverrides overrides config values with environment variables.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("ARDALIS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("ARDALIS_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse ARDALIS_PAGE_SIZE %q: %w", v, err)
		}
		cfg.PageSize = n
	}
	if v := os.Getenv("ARDALIS_API_KEY"); v != "" {
		cfg.Videos.APIKey = v
	}
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		cfg.GitHub.Token = v
	}
	return nil
}
