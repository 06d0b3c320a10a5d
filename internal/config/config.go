package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	DefaultScanInterval = 5 // minutes
	DefaultListen       = ":8080"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	City  string `yaml:"city"`
	Group string `yaml:"group"`
	// ScanInterval is the refresh cadence in minutes.
	ScanInterval int `yaml:"scan_interval"`

	// Optional: override the schedule endpoint (useful against a local fixture server).
	APIURL string `yaml:"api_url"`
	// Optional: cache raw responses for this long. Development only.
	CacheTTL time.Duration `yaml:"cache_ttl"`
	Listen   string        `yaml:"listen"`
}

// Load reads path (if non-empty), applies environment overrides and defaults,
// then validates.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	var c Config
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	c.ApplyEnv()
	c.ApplyDefaults()
	return &c, nil
}

// ApplyEnv overlays YASNO_CITY, YASNO_GROUP, YASNO_SCAN_INTERVAL and API_PORT.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("YASNO_CITY"); v != "" {
		c.City = v
	}
	if v := os.Getenv("YASNO_GROUP"); v != "" {
		c.Group = v
	}
	if v := os.Getenv("YASNO_SCAN_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ScanInterval = n
		}
	}
	if v := os.Getenv("API_PORT"); v != "" {
		c.Listen = ":" + v
	}
}

func (c *Config) ApplyDefaults() {
	if c.ScanInterval == 0 {
		c.ScanInterval = DefaultScanInterval
	}
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	c.City = strings.TrimSpace(c.City)
	c.Group = strings.TrimSpace(c.Group)
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.City == "" {
		return errors.New("city is required")
	}
	if c.Group == "" {
		return errors.New("group is required")
	}
	if c.ScanInterval <= 0 {
		return fmt.Errorf("scan_interval must be > 0, got %d", c.ScanInterval)
	}
	if c.CacheTTL < 0 {
		return errors.New("cache_ttl must be >= 0")
	}
	return nil
}

// RefreshPeriod is ScanInterval as a duration.
func (c *Config) RefreshPeriod() time.Duration {
	return time.Duration(c.ScanInterval) * time.Minute
}

// UniqueID identifies this city/group pair; only one instance per pair
// should run.
func (c *Config) UniqueID() string {
	return fmt.Sprintf("yasno_outages_%s_%s", c.City, c.Group)
}

// Name is the human-readable entity name.
func (c *Config) Name() string {
	return fmt.Sprintf("Yasno Outages %s Group %s", cases.Title(language.Und).String(c.City), c.Group)
}
