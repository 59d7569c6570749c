package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DefaultSourceURL, cfg.SourceURL)
	assert.Equal(t, time.Duration(0), cfg.FetchTTL)
	assert.Equal(t, time.Duration(0), cfg.RefreshInterval)
	assert.Equal(t, "Hakuba 47", cfg.MergePrimary)
	assert.Equal(t, "Goryu", cfg.MergeSecondary)
	assert.Equal(t, "Hakuba 47 + Goryu", cfg.MergedName())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SOURCE_URL", "https://example.com/resorts")
	t.Setenv("FETCH_TTL", "30m")
	t.Setenv("REFRESH_INTERVAL", "1h")
	t.Setenv("MERGE_PRIMARY", "Tsugaike")
	t.Setenv("MERGE_SECONDARY", "Norikura")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://example.com/resorts", cfg.SourceURL)
	assert.Equal(t, 30*time.Minute, cfg.FetchTTL)
	assert.Equal(t, time.Hour, cfg.RefreshInterval)
	assert.Equal(t, "Tsugaike + Norikura", cfg.MergedName())
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"malformed ttl", "FETCH_TTL", "soon"},
		{"negative ttl", "FETCH_TTL", "-5m"},
		{"malformed refresh", "REFRESH_INTERVAL", "hourly"},
		{"relative source url", "SOURCE_URL", "/ski_resort_info_en/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsSameMergePair(t *testing.T) {
	t.Setenv("MERGE_PRIMARY", "Goryu")
	t.Setenv("MERGE_SECONDARY", "Goryu")

	_, err := Load()
	assert.Error(t, err)
}
