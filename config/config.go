package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rustyeddy/cryptotax/market"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvInputFile = "FILE"
	EnvTimeFrom  = "TIME_FROM"
	EnvTimeTo    = "TIME_TO"
	EnvTimezone  = "TZ_NAME"
	EnvLogLevel  = "LOG_LEVEL"
)

// Config represents a complete report run.
type Config struct {
	InputFile string        `json:"input_file" yaml:"input_file"`
	TimeFrom  string        `json:"time_from,omitempty" yaml:"time_from,omitempty"`
	TimeTo    string        `json:"time_to,omitempty" yaml:"time_to,omitempty"`
	Timezone  string        `json:"timezone,omitempty" yaml:"timezone,omitempty"`
	LogLevel  string        `json:"log_level" yaml:"log_level"`
	Journal   JournalConfig `json:"journal" yaml:"journal"`
}

// JournalConfig contains export parameters
type JournalConfig struct {
	Type         string `json:"type" yaml:"type"` // "csv" or "sqlite"
	SalesFile    string `json:"sales_file,omitempty" yaml:"sales_file,omitempty"`
	HoldingsFile string `json:"holdings_file,omitempty" yaml:"holdings_file,omitempty"`
	DBPath       string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (YAML for .yaml/.yml, JSON otherwise)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// LoadEnv reads .env files (missing files are fine) and then applies the
// environment overrides.
func (c *Config) LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	c.ApplyEnv(os.LookupEnv)
	return nil
}

// ApplyEnv overrides fields from the environment lookup function.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	for key, dst := range map[string]*string{
		EnvInputFile: &c.InputFile,
		EnvTimeFrom:  &c.TimeFrom,
		EnvTimeTo:    &c.TimeTo,
		EnvTimezone:  &c.Timezone,
		EnvLogLevel:  &c.LogLevel,
	} {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	return market.LoadLocation(c.Timezone)
}

// Bounds parses TimeFrom and TimeTo. Unset bounds come back nil.
func (c *Config) Bounds() (from, to *time.Time, err error) {
	parse := func(name, s string) (*time.Time, error) {
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		t, err := market.ParseTime(s)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", name, s, err)
		}
		return &t, nil
	}
	if from, err = parse("time_from", c.TimeFrom); err != nil {
		return nil, nil, err
	}
	if to, err = parse("time_to", c.TimeTo); err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && !from.Before(*to) {
		return nil, nil, fmt.Errorf("%w: time_from must be before time_to", market.ErrInvalidWindow)
	}
	return from, to, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.InputFile == "" {
		return fmt.Errorf("input_file is required")
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level must be one of debug|info|warn|error")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, _, err := c.Bounds(); err != nil {
		return err
	}
	if c.Journal.Type != "csv" && c.Journal.Type != "sqlite" {
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	if c.Journal.Type == "csv" && (c.Journal.SalesFile == "" || c.Journal.HoldingsFile == "") {
		return fmt.Errorf("journal sales_file and holdings_file required for CSV type")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal db_path required for SQLite type")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		InputFile: "input.txt",
		Timezone:  "UTC",
		LogLevel:  "info",
		Journal: JournalConfig{
			Type:         "csv",
			SalesFile:    "./sales.csv",
			HoldingsFile: "./holdings.csv",
			DBPath:       "./cryptotax.sqlite",
		},
	}
}
