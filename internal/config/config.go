// Package config loads the configuration of the demo host.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors
var (
	ErrInvalidPhases       = errors.New("invalid phases")
	ErrInvalidTickInterval = errors.New("invalid tick interval")
	ErrInvalidMaxTicks     = errors.New("invalid max ticks")
	ErrInvalidLogLevel     = errors.New("invalid log level")
	ErrInvalidCountdown    = errors.New("invalid countdown")
)

const defaultConfigYAML = `# stepflow demo configuration
phases: [First, PreUpdate, Update, PostUpdate, Last]
tick_interval: 100ms
# 0 means run until every reactor is done.
max_ticks: 0
log_level: info
countdown: 30
edits: 3
`

// Config describes the demo host.
type Config struct {
	Phases       []string      `yaml:"phases"`
	TickInterval time.Duration `yaml:"tick_interval"`
	MaxTicks     int           `yaml:"max_ticks"`
	LogLevel     string        `yaml:"log_level"`
	Countdown    int           `yaml:"countdown"`
	Edits        int           `yaml:"edits"`
}

// Default returns the default configuration.
func Default() *Config {
	c, err := Parse([]byte(defaultConfigYAML))
	if err != nil {
		panic(fmt.Sprintf("config: default configuration: %v", err))
	}
	return c
}

// Load reads the configuration at path on top of the defaults.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	c, err := parseOnto(Default(), data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML document.
// Fields missing from the document are left at their zero values.
func Parse(data []byte) (*Config, error) {
	return parseOnto(new(Config), data)
}

func parseOnto(c *Config, data []byte) (*Config, error) {
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks c for values the demo cannot run with.
func (c *Config) Validate() error {
	if len(c.Phases) == 0 {
		return fmt.Errorf("%w: at least one phase is required", ErrInvalidPhases)
	}
	seen := make(map[string]bool, len(c.Phases))
	for _, p := range c.Phases {
		switch {
		case strings.TrimSpace(p) == "":
			return fmt.Errorf("%w: empty phase name", ErrInvalidPhases)
		case p == "Startup":
			return fmt.Errorf("%w: Startup is implicit", ErrInvalidPhases)
		case seen[p]:
			return fmt.Errorf("%w: duplicate phase %q", ErrInvalidPhases, p)
		}
		seen[p] = true
	}
	if !seen["Update"] {
		return fmt.Errorf("%w: Update is required", ErrInvalidPhases)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidTickInterval, c.TickInterval)
	}
	if c.MaxTicks < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxTicks, c.MaxTicks)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Countdown <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCountdown, c.Countdown)
	}
	if c.Edits < 0 {
		c.Edits = 0
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() slog.Level {
	l, _ := parseLevel(c.LogLevel)
	return l
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, s)
	}
	return l, nil
}
