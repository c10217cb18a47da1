package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 1280, cfg.Browser.ViewportWidth)
	assert.Equal(t, 720, cfg.Browser.ViewportHeight)
	assert.Equal(t, 180*time.Second, cfg.Browser.IdleTimeout())
	assert.Equal(t, "balanced", cfg.Marking.Mode)
	assert.Equal(t, 80, cfg.Marking.MaxMarks)
	assert.False(t, cfg.Security.AllowPrivateNetwork)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
security:
  allow_private_network: true
  blocked_domains:
    - "*.ads.example.com"
browser:
  viewport_width: 1920
  viewport_height: 1080
  idle_timeout_seconds: 60
marking:
  mode: all
  max_marks: 120
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Security.AllowPrivateNetwork)
	assert.Equal(t, []string{"*.ads.example.com"}, cfg.Security.BlockedDomains)
	assert.Equal(t, 1920, cfg.Browser.ViewportWidth)
	assert.Equal(t, 60*time.Second, cfg.Browser.IdleTimeout())
	assert.Equal(t, "all", cfg.Marking.Mode)
	assert.Equal(t, 120, cfg.Marking.MaxMarks)

	// Untouched fields keep their defaults.
	assert.Equal(t, 30*time.Second, cfg.Browser.NavigationTimeout())
	assert.Equal(t, 500*time.Millisecond, cfg.Browser.PostActionWait())
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := writeConfig(t, "browser: [not a map")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero viewport", func(c *Config) { c.Browser.ViewportWidth = 0 }},
		{"negative idle timeout", func(c *Config) { c.Browser.IdleTimeoutSeconds = -1 }},
		{"unknown marking mode", func(c *Config) { c.Marking.Mode = "verbose" }},
		{"zero max marks", func(c *Config) { c.Marking.MaxMarks = 0 }},
		{"iou threshold above one", func(c *Config) { c.Marking.IoUThreshold = 1.5 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	assert.NoError(t, Default().Validate())
}
