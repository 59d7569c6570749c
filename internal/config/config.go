package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"
)

// Defaults for the Hakuba Valley deployment.
const (
	DefaultSourceURL = "https://www.hakubavalley.com/en/ski_resort_info_en/"
	DefaultUserAgent = "hakuba-dashboard/1.0 (github.com/powderline/hakuba-dashboard)"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	Port      string
	SourceURL string
	UserAgent string
	LogLevel  string

	// FetchTTL bounds how long a scraped snapshot is reused. Zero means
	// cache forever, matching the original page's fetch-once behavior.
	FetchTTL time.Duration

	// RefreshInterval enables a background re-scrape loop. Zero disables it.
	RefreshInterval time.Duration

	// The two physically-connected resorts the combine toggle merges.
	MergePrimary   string
	MergeSecondary string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	fetchTTL, err := envDuration("FETCH_TTL", 0)
	if err != nil {
		return nil, err
	}
	refreshInterval, err := envDuration("REFRESH_INTERVAL", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:            envOrDefault("PORT", "8080"),
		SourceURL:       envOrDefault("SOURCE_URL", DefaultSourceURL),
		UserAgent:       envOrDefault("USER_AGENT", DefaultUserAgent),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		FetchTTL:        fetchTTL,
		RefreshInterval: refreshInterval,
		MergePrimary:    envOrDefault("MERGE_PRIMARY", "Hakuba 47"),
		MergeSecondary:  envOrDefault("MERGE_SECONDARY", "Goryu"),
	}

	u, err := url.Parse(cfg.SourceURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid SOURCE_URL %q", cfg.SourceURL)
	}
	if cfg.MergePrimary == "" || cfg.MergeSecondary == "" {
		return nil, errors.New("MERGE_PRIMARY and MERGE_SECONDARY must not be empty")
	}
	if cfg.MergePrimary == cfg.MergeSecondary {
		return nil, errors.New("MERGE_PRIMARY and MERGE_SECONDARY must name different resorts")
	}

	return cfg, nil
}

// MergedName is the display name for the combined record.
func (c *Config) MergedName() string {
	return c.MergePrimary + " + " + c.MergeSecondary
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return d, nil
}
