// Package config provides persistent configuration for the salat CLI.
//
// Configuration is stored as JSON at ~/.config/salat/config.json
// (XDG-compliant). The merge priority is: CLI flags > config file > defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/smokyabdulrahman/salat/internal/method"
	"github.com/smokyabdulrahman/salat/internal/prayer"
)

const (
	configDirName  = "salat"
	configFileName = "config.json"
)

// ValidKeys lists all config keys that can be set via `config set`.
var ValidKeys = []string{
	"latitude", "longitude", "elevation",
	"method", "school", "high_lat_rule", "shafaq",
	"timezone", "time_format",
	"prayers",
}

// Config holds all user-configurable settings.
// Zero values mean "not set" (use defaults).
type Config struct {
	Latitude   float64 `json:"latitude,omitempty"`
	Longitude  float64 `json:"longitude,omitempty"`
	Elevation  float64 `json:"elevation,omitempty"`
	Method     string  `json:"method,omitempty"`        // method name, e.g. "MWL"
	School     string  `json:"school,omitempty"`        // "Standard" or "Hanafi"
	HighLat    string  `json:"high_lat_rule,omitempty"` // high-latitude rule name
	Shafaq     string  `json:"shafaq,omitempty"`        // "General", "Ahmer", "Abyad"
	Timezone   string  `json:"timezone,omitempty"`      // IANA name for display
	TimeFormat string  `json:"time_format,omitempty"`   // "12h" or "24h"
	Prayers    string  `json:"prayers,omitempty"`       // comma-separated list
}

// Defaults returns a Config with all default values applied.
func Defaults() Config {
	return Config{
		Method:     method.MWL.String(),
		School:     method.Standard.String(),
		HighLat:    method.NightMiddle.String(),
		Shafaq:     method.ShafaqGeneral.String(),
		TimeFormat: "24h",
	}
}

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the config file from disk.
// If the file does not exist, it returns an empty Config (not an error).
// If the file exists but is invalid JSON, it returns an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	return LoadFrom(path)
}

// LoadFrom reads the config from a specific file path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Config{}
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return c.SaveTo(path)
}

// SaveTo writes the config to a specific file path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Reset deletes the config file.
func Reset() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return ResetAt(path)
}

// ResetAt deletes the config file at a specific path.
func ResetAt(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

// Set sets a config key to the given value.
// It validates the key name and parses the value into the correct type.
func (c *Config) Set(key, value string) error {
	switch key {
	case "latitude":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid latitude %q: must be a number", value)
		}
		if v < -90 || v > 90 {
			return fmt.Errorf("invalid latitude %q: must be between -90 and 90", value)
		}
		c.Latitude = v
	case "longitude":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid longitude %q: must be a number", value)
		}
		if v < -180 || v > 180 {
			return fmt.Errorf("invalid longitude %q: must be between -180 and 180", value)
		}
		c.Longitude = v
	case "elevation":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid elevation %q: must be a number of meters", value)
		}
		if v < -500 || v > 10000 {
			return fmt.Errorf("invalid elevation %q: must be between -500 and 10000", value)
		}
		c.Elevation = v
	case "method":
		id, err := method.Parse(value)
		if err != nil {
			return fmt.Errorf("invalid method %q: valid names: %s", value, methodNameList())
		}
		c.Method = id.String()
	case "school":
		s, err := method.ParseAsrSchool(value)
		if err != nil {
			return fmt.Errorf("invalid school %q: must be \"Standard\" or \"Hanafi\"", value)
		}
		c.School = s.String()
	case "high_lat_rule":
		r, err := method.ParseHighLatitudeRule(value)
		if err != nil {
			return fmt.Errorf("invalid high_lat_rule %q: must be NightMiddle, AngleBased, OneSeventh, or None", value)
		}
		c.HighLat = r.String()
	case "shafaq":
		s, err := method.ParseShafaq(value)
		if err != nil {
			return fmt.Errorf("invalid shafaq %q: must be General, Ahmer, or Abyad", value)
		}
		c.Shafaq = s.String()
	case "timezone":
		if _, err := time.LoadLocation(value); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", value, err)
		}
		c.Timezone = value
	case "time_format":
		if value != "12h" && value != "24h" {
			return fmt.Errorf("invalid time_format %q: must be \"12h\" or \"24h\"", value)
		}
		c.TimeFormat = value
	case "prayers":
		// Validate each prayer name.
		names := strings.Split(value, ",")
		for _, n := range names {
			n = strings.TrimSpace(n)
			if !prayer.IsValidName(n) {
				return fmt.Errorf("invalid prayer name %q in prayers list", n)
			}
		}
		c.Prayers = value
	default:
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}

	return nil
}

// Get returns the string value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "latitude":
		if c.Latitude == 0 {
			return "", nil
		}
		return strconv.FormatFloat(c.Latitude, 'f', -1, 64), nil
	case "longitude":
		if c.Longitude == 0 {
			return "", nil
		}
		return strconv.FormatFloat(c.Longitude, 'f', -1, 64), nil
	case "elevation":
		if c.Elevation == 0 {
			return "", nil
		}
		return strconv.FormatFloat(c.Elevation, 'f', -1, 64), nil
	case "method":
		return c.Method, nil
	case "school":
		return c.School, nil
	case "high_lat_rule":
		return c.HighLat, nil
	case "shafaq":
		return c.Shafaq, nil
	case "timezone":
		return c.Timezone, nil
	case "time_format":
		return c.TimeFormat, nil
	case "prayers":
		return c.Prayers, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// MethodOrDefault parses the configured method name, falling back to the
// given default when unset.
func (c *Config) MethodOrDefault(def method.ID) method.ID {
	if c.Method == "" {
		return def
	}
	id, err := method.Parse(c.Method)
	if err != nil {
		return def
	}
	return id
}

// SchoolOrDefault parses the configured school, falling back to the default.
func (c *Config) SchoolOrDefault(def method.AsrSchool) method.AsrSchool {
	if c.School == "" {
		return def
	}
	s, err := method.ParseAsrSchool(c.School)
	if err != nil {
		return def
	}
	return s
}

// HighLatOrDefault parses the configured rule, falling back to the default.
func (c *Config) HighLatOrDefault(def method.HighLatitudeRule) method.HighLatitudeRule {
	if c.HighLat == "" {
		return def
	}
	r, err := method.ParseHighLatitudeRule(c.HighLat)
	if err != nil {
		return def
	}
	return r
}

// ShafaqOrDefault parses the configured shafaq, falling back to the default.
func (c *Config) ShafaqOrDefault(def method.Shafaq) method.Shafaq {
	if c.Shafaq == "" {
		return def
	}
	s, err := method.ParseShafaq(c.Shafaq)
	if err != nil {
		return def
	}
	return s
}

func methodNameList() string {
	ids := method.IDs()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.String()
	}
	return strings.Join(names, ", ")
}
