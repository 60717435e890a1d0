// Package server exposes the prayer-time engine over HTTP: daily timings,
// Sunnah times, and the method registry, with a JSON envelope and structured
// request logging.
package server

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the server settings, read from the environment (a local .env
// file is loaded first when present).
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// LogLevel: debug, info, warn, error.
	LogLevel string
	// LogFormat: "json" or "console".
	LogFormat string

	// Default observer used when a request omits coordinates. Unset (0,0)
	// means coordinates are required per request.
	DefaultLatitude  float64
	DefaultLongitude float64
	DefaultElevation float64
	// DefaultMethod is the method name used when a request omits one.
	DefaultMethod string
}

// LoadConfig reads the server configuration from the environment. A .env
// file in the working directory is loaded first, best-effort.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:          ":8080",
		LogLevel:      "info",
		LogFormat:     "console",
		DefaultMethod: "MWL",
	}

	if v := os.Getenv("SALAT_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("SALAT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SALAT_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("SALAT_DEFAULT_METHOD"); v != "" {
		cfg.DefaultMethod = v
	}

	var err error
	if cfg.DefaultLatitude, err = envFloat("SALAT_DEFAULT_LATITUDE"); err != nil {
		return nil, err
	}
	if cfg.DefaultLongitude, err = envFloat("SALAT_DEFAULT_LONGITUDE"); err != nil {
		return nil, err
	}
	if cfg.DefaultElevation, err = envFloat("SALAT_DEFAULT_ELEVATION"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// envFloat parses an optional float environment variable; unset yields 0.
func envFloat(name string) (float64, error) {
	v := os.Getenv(name)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", name, v, err)
	}
	return f, nil
}
