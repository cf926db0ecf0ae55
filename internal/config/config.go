// Package config loads and validates the run configuration from an optional
// TOML file with environment fallbacks. A Config is immutable once loaded;
// CLI flag overrides are applied before Validate.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"meetjoin/internal/locator"
)

// DefaultPath is the config file consulted when no --config flag is given.
const DefaultPath = "meetjoin.toml"

// Auth holds the sign-in credentials.
type Auth struct {
	Email    string `toml:"email"`
	Password string `toml:"password"`
}

// Meeting holds the meeting target and join behavior.
type Meeting struct {
	Link                string `toml:"link"`
	Headless            bool   `toml:"headless"`
	StageTimeoutSeconds int    `toml:"stage_timeout_seconds"`
	// VerifyJoin promotes an unconfirmed join from a warning to a failure.
	// Indicator markup is the least stable part of the UI, so this is off by
	// default.
	VerifyJoin bool `toml:"verify_join"`
	// VerifyMute enables the advisory post-join check that both devices
	// report a muted state.
	VerifyMute bool `toml:"verify_mute"`
}

// Recording holds audio capture settings.
type Recording struct {
	DurationSeconds int    `toml:"duration_seconds"`
	SampleRate      int    `toml:"sample_rate"`
	OutputDir       string `toml:"output_dir"`
}

// Transcription holds speech-to-text settings.
type Transcription struct {
	Enabled bool   `toml:"enabled"`
	Model   string `toml:"model"`
}

// Diagnostics holds failure-artifact settings.
type Diagnostics struct {
	Dir string `toml:"dir"`
}

// Logging holds logger construction settings.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the complete run configuration.
type Config struct {
	Auth          Auth          `toml:"auth"`
	Meeting       Meeting       `toml:"meeting"`
	Recording     Recording     `toml:"recording"`
	Transcription Transcription `toml:"transcription"`
	Diagnostics   Diagnostics   `toml:"diagnostics"`
	Logging       Logging       `toml:"logging"`
	// Selectors overrides named fallback sets wholesale; see internal/locator.
	Selectors map[string][]locator.Candidate `toml:"selectors"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Meeting: Meeting{
			StageTimeoutSeconds: 20,
		},
		Recording: Recording{
			DurationSeconds: 60,
			SampleRate:      44100,
			OutputDir:       "tmp",
		},
		Transcription: Transcription{
			Enabled: true,
			Model:   "large-v3",
		},
		Diagnostics: Diagnostics{
			Dir: "diagnostics",
		},
		Logging: Logging{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load reads the configuration file at path, or DefaultPath when path is
// empty and the file exists, then applies environment fallbacks. Validation
// is separate so callers can layer flag overrides first.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// No config file is fine; the environment can carry everything.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv fills unset fields from the environment. Variable names match the
// original deployment surface of this tool.
func (c *Config) applyEnv() {
	if c.Auth.Email == "" {
		c.Auth.Email = os.Getenv("EMAIL_ID")
	}
	if c.Auth.Password == "" {
		c.Auth.Password = os.Getenv("EMAIL_PASSWORD")
	}
	if c.Meeting.Link == "" {
		c.Meeting.Link = os.Getenv("MEET_LINK")
	}
	if v := os.Getenv("HEADLESS"); v != "" {
		if headless, err := strconv.ParseBool(v); err == nil {
			c.Meeting.Headless = headless
		}
	}
	if v := os.Getenv("RECORDING_DURATION"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			c.Recording.DurationSeconds = seconds
		}
	}
	if v := os.Getenv("SAMPLE_RATE"); v != "" {
		if rate, err := strconv.Atoi(v); err == nil && rate > 0 {
			c.Recording.SampleRate = rate
		}
	}
}

// Validate reports every missing or out-of-range field.
func (c *Config) Validate() error {
	var problems []error
	if strings.TrimSpace(c.Auth.Email) == "" {
		problems = append(problems, errors.New("auth.email is required"))
	}
	if strings.TrimSpace(c.Auth.Password) == "" {
		problems = append(problems, errors.New("auth.password is required"))
	}
	if strings.TrimSpace(c.Meeting.Link) == "" {
		problems = append(problems, errors.New("meeting.link is required"))
	}
	if c.Meeting.StageTimeoutSeconds <= 0 {
		problems = append(problems, errors.New("meeting.stage_timeout_seconds must be positive"))
	}
	if c.Recording.DurationSeconds <= 0 {
		problems = append(problems, errors.New("recording.duration_seconds must be positive"))
	}
	if c.Recording.SampleRate <= 0 {
		problems = append(problems, errors.New("recording.sample_rate must be positive"))
	}
	return errors.Join(problems...)
}

// StageTimeout returns the configured stage timeout budget.
func (c *Config) StageTimeout() time.Duration {
	return time.Duration(c.Meeting.StageTimeoutSeconds) * time.Second
}

// RecordingDuration returns the configured capture length.
func (c *Config) RecordingDuration() time.Duration {
	return time.Duration(c.Recording.DurationSeconds) * time.Second
}
