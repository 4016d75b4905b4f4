// Package config loads the settings shared by the bookingform binaries from
// the environment and optional .env files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds binary settings. Flags override these values.
type Config struct {
	Env             string
	HTTPAddr        string
	SchemaPath      string
	PlacesURL       string
	Output          string
	SearchLatency   time.Duration
	SearchTimeout   time.Duration
	RateLimit       float64
	RateBurst       int
	ShutdownTimeout time.Duration
	ThemeVariant    string
	// TemplateDir holds summary templates that shadow the bundled ones.
	TemplateDir string
}

// Load reads the environment, falling back to values from files (".env"
// when none are given and it exists). Process environment wins over files.
func Load(files ...string) (*Config, error) {
	fileEnv, err := readFiles(files)
	if err != nil {
		return nil, err
	}
	get := func(key, fallback string) string {
		return getEnv(fileEnv, key, fallback)
	}

	cfg := &Config{
		Env:          get("BOOKINGFORM_ENV", "development"),
		HTTPAddr:     get("BOOKINGFORM_HTTP_ADDR", ":8080"),
		SchemaPath:   get("BOOKINGFORM_SCHEMA", ""),
		PlacesURL:    get("BOOKINGFORM_PLACES_URL", ""),
		Output:       get("BOOKINGFORM_OUTPUT", "pretty"),
		ThemeVariant: get("BOOKINGFORM_THEME_VARIANT", ""),
		TemplateDir:  get("BOOKINGFORM_TEMPLATE_DIR", ""),
	}

	var errs []error
	cfg.SearchLatency = parseDuration(get("BOOKINGFORM_SEARCH_LATENCY", "600ms"), "BOOKINGFORM_SEARCH_LATENCY", &errs)
	cfg.SearchTimeout = parseDuration(get("BOOKINGFORM_SEARCH_TIMEOUT", "5s"), "BOOKINGFORM_SEARCH_TIMEOUT", &errs)
	cfg.ShutdownTimeout = parseDuration(get("BOOKINGFORM_SHUTDOWN_TIMEOUT", "10s"), "BOOKINGFORM_SHUTDOWN_TIMEOUT", &errs)

	if rate, err := strconv.ParseFloat(get("BOOKINGFORM_RATE_LIMIT", "10"), 64); err != nil || rate < 0 {
		errs = append(errs, fmt.Errorf("BOOKINGFORM_RATE_LIMIT: must be a non-negative number"))
	} else {
		cfg.RateLimit = rate
	}
	if burst, err := strconv.Atoi(get("BOOKINGFORM_RATE_BURST", "20")); err != nil || burst < 0 {
		errs = append(errs, fmt.Errorf("BOOKINGFORM_RATE_BURST: must be a non-negative integer"))
	} else {
		cfg.RateBurst = burst
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// IsDevelopment reports whether the development env is active.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

func readFiles(files []string) (map[string]string, error) {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err != nil {
			return nil, nil
		}
		files = []string{".env"}
	}
	env, err := godotenv.Read(files...)
	if err != nil {
		return nil, fmt.Errorf("config: read env files: %w", err)
	}
	return env, nil
}

func getEnv(fileEnv map[string]string, key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	if val, ok := fileEnv[key]; ok {
		return val
	}
	return fallback
}

func parseDuration(value, key string, errs *[]error) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return 0
	}
	return d
}
