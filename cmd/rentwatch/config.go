package main

import (
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fwojciec/rentwatch"
	rwhttp "github.com/fwojciec/rentwatch/http"
	"github.com/fwojciec/rentwatch/watch"
	"gopkg.in/yaml.v3"
)

// DefaultInterval is the time between watch cycles.
const DefaultInterval = 10 * time.Minute

// DefaultRate is the per-host request rate in requests per second.
const DefaultRate = 0.5

// Config is the watch configuration file.
type Config struct {
	Interval    time.Duration      `yaml:"interval"`
	Concurrency int                `yaml:"concurrency"`
	Rate        float64            `yaml:"rate"`
	Timeout     time.Duration      `yaml:"timeout"`
	UserAgent   string             `yaml:"user_agent"`
	DB          string             `yaml:"db"`
	Output      string             `yaml:"output"`
	Targets     []rentwatch.Target `yaml:"targets"`
}

// DefaultConfig returns a Config with every optional value set.
func DefaultConfig() *Config {
	return &Config{
		Interval:    DefaultInterval,
		Concurrency: watch.DefaultConcurrency,
		Rate:        DefaultRate,
		Timeout:     rwhttp.DefaultFetchTimeout,
		UserAgent:   rwhttp.DefaultUserAgent,
	}
}

// ParseConfig reads YAML from r over the defaults. Unknown keys are rejected.
func ParseConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, rentwatch.Errorf(rentwatch.EINVALID, "invalid config: %v", err)
	}
	return cfg, nil
}

// ReadConfigFile parses the config file at path.
func ReadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, rentwatch.Errorf(rentwatch.EINVALID, "cannot read config: %v", err)
	}
	defer f.Close()
	return ParseConfig(f)
}

// Validate returns an error if the configuration cannot be watched.
// Targets with an unsupported source fail with EUNKNOWNSOURCE.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return rentwatch.Errorf(rentwatch.EINVALID, "no targets configured")
	}
	for _, t := range c.Targets {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	if c.Interval <= 0 {
		return rentwatch.Errorf(rentwatch.EINVALID, "interval must be positive")
	}
	if c.Concurrency <= 0 {
		return rentwatch.Errorf(rentwatch.EINVALID, "concurrency must be positive")
	}
	if c.Rate <= 0 {
		return rentwatch.Errorf(rentwatch.EINVALID, "rate must be positive")
	}
	if c.Timeout <= 0 {
		return rentwatch.Errorf(rentwatch.EINVALID, "timeout must be positive")
	}
	return nil
}

func (c *Config) needsBrowser() bool {
	for _, t := range c.Targets {
		if t.Browser {
			return true
		}
	}
	return false
}

// ParseTarget parses a SOURCE=URL target flag.
func ParseTarget(s string) (rentwatch.Target, error) {
	source, url, ok := strings.Cut(s, "=")
	if !ok || source == "" || url == "" {
		return rentwatch.Target{}, rentwatch.Errorf(rentwatch.EINVALID, "target must be SOURCE=URL: %q", s)
	}
	return rentwatch.Target{Source: rentwatch.Source(source), URL: url}, nil
}

// config builds the effective configuration: defaults, then the file,
// then flags.
func (c *WatchCmd) config() (*Config, error) {
	cfg := DefaultConfig()
	if c.Config != "" {
		var err error
		if cfg, err = ReadConfigFile(c.Config); err != nil {
			return nil, err
		}
	}

	for _, s := range c.Target {
		t, err := ParseTarget(s)
		if err != nil {
			return nil, err
		}
		cfg.Targets = append(cfg.Targets, t)
	}
	if c.Interval != 0 {
		cfg.Interval = c.Interval
	}
	if c.Concurrency != 0 {
		cfg.Concurrency = c.Concurrency
	}
	if c.Rate != 0 {
		cfg.Rate = c.Rate
	}
	if c.Output != "" {
		cfg.Output = c.Output
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
