// Package config loads the YAML configuration file controlling browser,
// security, marking and model settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/entrhq/gaze/pkg/browser/mark"
)

// Config is the root configuration document.
type Config struct {
	Security SecurityConfig `yaml:"security"`
	Browser  BrowserConfig  `yaml:"browser"`
	Marking  MarkingConfig  `yaml:"marking"`
	LLM      LLMConfig      `yaml:"llm"`
}

// SecurityConfig controls URL validation.
type SecurityConfig struct {
	// AllowPrivateNetwork disables the private and reserved address
	// rejection. Only enable for trusted internal deployments.
	AllowPrivateNetwork bool `yaml:"allow_private_network"`

	// AllowedDomains, when non-empty, restricts navigation to matching
	// hosts. Glob patterns like *.example.com are supported.
	AllowedDomains []string `yaml:"allowed_domains"`

	// BlockedDomains rejects matching hosts regardless of other settings.
	BlockedDomains []string `yaml:"blocked_domains"`
}

// BrowserConfig controls the headless browser session.
type BrowserConfig struct {
	ViewportWidth  int `yaml:"viewport_width"`
	ViewportHeight int `yaml:"viewport_height"`

	IdleTimeoutSeconds       int `yaml:"idle_timeout_seconds"`
	NavigationTimeoutSeconds int `yaml:"navigation_timeout_seconds"`
	PostActionWaitMs         int `yaml:"post_action_wait_ms"`
	UserScreenshotWaitMs     int `yaml:"user_screenshot_wait_ms"`
}

// MarkingConfig controls element marking density.
type MarkingConfig struct {
	// Mode is minimal, balanced or all.
	Mode string `yaml:"mode"`

	MaxMarks      int     `yaml:"max_marks"`
	MinArea       float64 `yaml:"min_area"`
	IoUThreshold  float64 `yaml:"iou_threshold"`
	ContainMargin float64 `yaml:"contain_margin"`
}

// LLMConfig configures the model used by page analysis.
type LLMConfig struct {
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

// DefaultPath returns the standard config location, ~/.gaze/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".gaze", "config.yaml"), nil
}

// Default returns a Config with every field at its default value.
func Default() *Config {
	return &Config{
		Browser: BrowserConfig{
			ViewportWidth:            1280,
			ViewportHeight:           720,
			IdleTimeoutSeconds:       180,
			NavigationTimeoutSeconds: 30,
			PostActionWaitMs:         500,
			UserScreenshotWaitMs:     500,
		},
		Marking: MarkingConfig{
			Mode:          string(mark.ModeBalanced),
			MaxMarks:      mark.DefaultMaxMarks,
			MinArea:       mark.DefaultMinArea,
			IoUThreshold:  mark.DefaultIoUThreshold,
			ContainMargin: mark.DefaultContainMargin,
		},
		LLM: LLMConfig{
			Model:     "gpt-4o",
			MaxTokens: 4096,
		},
	}
}

// Load reads the YAML file at path, applying defaults for absent fields.
// A missing file is not an error; the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config from %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config in %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values that would break the session rather than merely
// being unusual.
func (c *Config) Validate() error {
	if c.Browser.ViewportWidth <= 0 || c.Browser.ViewportHeight <= 0 {
		return fmt.Errorf("viewport dimensions must be positive, got %dx%d",
			c.Browser.ViewportWidth, c.Browser.ViewportHeight)
	}
	if c.Browser.IdleTimeoutSeconds <= 0 {
		return fmt.Errorf("idle_timeout_seconds must be positive, got %d", c.Browser.IdleTimeoutSeconds)
	}
	if !mark.ValidMode(mark.Mode(c.Marking.Mode)) {
		return fmt.Errorf("unknown marking mode %q (want minimal, balanced or all)", c.Marking.Mode)
	}
	if c.Marking.MaxMarks <= 0 {
		return fmt.Errorf("max_marks must be positive, got %d", c.Marking.MaxMarks)
	}
	if c.Marking.IoUThreshold <= 0 || c.Marking.IoUThreshold > 1 {
		return fmt.Errorf("iou_threshold must be in (0, 1], got %v", c.Marking.IoUThreshold)
	}
	return nil
}

// IdleTimeout returns the session idle timeout as a duration.
func (c *BrowserConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutSeconds) * time.Second
}

// NavigationTimeout returns the navigation timeout as a duration.
func (c *BrowserConfig) NavigationTimeout() time.Duration {
	return time.Duration(c.NavigationTimeoutSeconds) * time.Second
}

// PostActionWait returns the post-interaction settle delay as a duration.
func (c *BrowserConfig) PostActionWait() time.Duration {
	return time.Duration(c.PostActionWaitMs) * time.Millisecond
}

// UserScreenshotWait returns the pre-capture delay for user-facing
// screenshots as a duration.
func (c *BrowserConfig) UserScreenshotWait() time.Duration {
	return time.Duration(c.UserScreenshotWaitMs) * time.Millisecond
}
