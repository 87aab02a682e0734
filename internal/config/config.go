package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env"
	"gopkg.in/yaml.v3"
)

const (
	defaultListen          = "127.0.0.1:8080"
	defaultTimezone        = "America/Los_Angeles"
	defaultWeekStart       = "sunday"
	defaultSiteURL         = "http://127.0.0.1:8080"
	defaultModel           = "gemini-3-flash-preview"
	defaultIntentionCron   = "0 5 * * *"
	defaultSnapshotCron    = "0 */6 * * *"
	defaultSnapshotOutput  = "./cache/preview.png"
	defaultIntentionPrompt = "Write a one-sentence, powerful spiritual intention for a Catholic Young Adult in Ventura County, California. Focus on coastal beauty or community growth."
)

// IntentionConfig controls the daily intention text service.
type IntentionConfig struct {
	// APIKey for the generative text API. Usually supplied through the
	// API_KEY / GEMINI_API_KEY environment variables instead of the file.
	APIKey string `yaml:"api_key,omitempty" json:"-"`
	Model  string `yaml:"model" json:"model"`
	Prompt string `yaml:"prompt" json:"prompt"`
	// RefreshCron pre-warms the day's intention. Empty disables the job.
	RefreshCron string `yaml:"refresh" json:"refresh"`
}

// SnapshotConfig controls periodic headless-browser captures of the page.
type SnapshotConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Cron    string `yaml:"cron" json:"cron"`
	Output  string `yaml:"output" json:"output"`
}

// BasicAuthConfig holds HTTP Basic Auth credentials for the site.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen" json:"listen"`

	// SiteURL is the public base URL, used for links embedded in calendar
	// exports.
	SiteURL string `yaml:"site_url" json:"site_url"`

	Production bool   `yaml:"production" json:"production"`
	LogLevel   string `yaml:"log_level" json:"log_level"`

	// Timezone is the IANA zone events are displayed and bucketed in.
	Timezone string `yaml:"timezone" json:"timezone"`

	// WeekStart is the first column of the month grid:
	//   - "sunday" (default)
	//   - "monday"
	WeekStart string `yaml:"week_start" json:"week_start"`

	Intention IntentionConfig `yaml:"intention" json:"intention"`
	Snapshot  SnapshotConfig  `yaml:"snapshot" json:"snapshot"`

	// BasicAuth, if non-nil, enables HTTP Basic Authentication on all endpoints
	// except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

// envOverlay lists the environment variables that override file values.
type envOverlay struct {
	Listen       string `env:"LAMB_LISTEN"`
	SiteURL      string `env:"LAMB_SITE_URL"`
	Production   bool   `env:"LAMB_PRODUCTION"`
	LogLevel     string `env:"LAMB_LOG_LEVEL"`
	APIKey       string `env:"API_KEY"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:    defaultListen,
		SiteURL:   defaultSiteURL,
		LogLevel:  "info",
		Timezone:  defaultTimezone,
		WeekStart: defaultWeekStart,
		Intention: IntentionConfig{
			Model:       defaultModel,
			Prompt:      defaultIntentionPrompt,
			RefreshCron: defaultIntentionCron,
		},
		Snapshot: SnapshotConfig{
			Enabled: false,
			Cron:    defaultSnapshotCron,
			Output:  defaultSnapshotOutput,
		},
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = defaultListen
	}
	if c.SiteURL == "" {
		c.SiteURL = "http://" + c.Listen
	}
	c.SiteURL = strings.TrimRight(c.SiteURL, "/")
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Timezone == "" {
		c.Timezone = defaultTimezone
	}
	switch strings.ToLower(c.WeekStart) {
	case "monday":
		c.WeekStart = "monday"
	default:
		// Unknown value; fall back to sunday to avoid surprising layouts.
		c.WeekStart = defaultWeekStart
	}
	if c.Intention.Model == "" {
		c.Intention.Model = defaultModel
	}
	if c.Intention.Prompt == "" {
		c.Intention.Prompt = defaultIntentionPrompt
	}
	if c.Snapshot.Cron == "" {
		c.Snapshot.Cron = defaultSnapshotCron
	}
	if c.Snapshot.Output == "" {
		c.Snapshot.Output = defaultSnapshotOutput
	}
}

// ApplyEnv overlays environment variables onto c. Unset variables leave the
// file values untouched.
func (c *Config) ApplyEnv() error {
	var ov envOverlay
	if err := env.Parse(&ov); err != nil {
		return err
	}
	if ov.Listen != "" {
		c.Listen = ov.Listen
	}
	if ov.SiteURL != "" {
		c.SiteURL = strings.TrimRight(ov.SiteURL, "/")
	}
	if ov.Production {
		c.Production = true
	}
	if ov.LogLevel != "" {
		c.LogLevel = ov.LogLevel
	}
	switch {
	case ov.GeminiAPIKey != "":
		c.Intention.APIKey = ov.GeminiAPIKey
	case ov.APIKey != "":
		c.Intention.APIKey = ov.APIKey
	}
	return nil
}

// Location resolves Timezone, falling back to time.Local.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// FirstWeekday maps WeekStart onto a time.Weekday.
func (c *Config) FirstWeekday() time.Weekday {
	if c.WeekStart == "monday" {
		return time.Monday
	}
	return time.Sunday
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist a default config is written with 0600 perms.
//   - Otherwise the YAML is read and normalized.
//   - In both cases environment overrides are applied last.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	cfg, err := load(path)
	if cfg == nil {
		return nil, err
	}
	if envErr := cfg.ApplyEnv(); envErr != nil {
		return nil, envErr
	}
	return cfg, err
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return cfg, nil
}

// Save writes the given configuration to the specified path atomically
// (temp file + rename) with 0600 permissions. The API key is never written.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	out := *cfg
	out.Intention.APIKey = ""
	data, err := yaml.Marshal(&out)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".spiritedlamb-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
