// Package config loads LocalPaint settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	AppID       string
	StorageKey  string
	ExportName  string
	JPEGQuality int
	RevertDelay time.Duration
	Width       int
	Height      int
	LogLevel    string
	LogFormat   string
}

func Default() *Config {
	return &Config{
		AppID:       "io.localpaint.app",
		StorageKey:  "savedCanvas",
		ExportName:  "paint-file.jpeg",
		JPEGQuality: 100,
		RevertDelay: 2 * time.Second,
		Width:       1024,
		Height:      768,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// Load reads a .env file when one exists, then the PAINT_* variables.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, keeping defaults for unset keys.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := Default()

	if v := getenv("PAINT_APP_ID"); v != "" {
		cfg.AppID = v
	}
	if v := getenv("PAINT_STORAGE_KEY"); v != "" {
		cfg.StorageKey = v
	}
	if v := getenv("PAINT_EXPORT_NAME"); v != "" {
		cfg.ExportName = v
	}
	if v := getenv("PAINT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := getenv("PAINT_LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}

	var err error
	if cfg.JPEGQuality, err = intVar(getenv, "PAINT_JPEG_QUALITY", cfg.JPEGQuality); err != nil {
		return nil, err
	}
	if cfg.Width, err = intVar(getenv, "PAINT_WIDTH", cfg.Width); err != nil {
		return nil, err
	}
	if cfg.Height, err = intVar(getenv, "PAINT_HEIGHT", cfg.Height); err != nil {
		return nil, err
	}
	if v := getenv("PAINT_REVERT_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("config: PAINT_REVERT_DELAY: %w", err)
		}
		cfg.RevertDelay = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("config: jpeg quality %d out of range 1..100", c.JPEGQuality)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d must be positive", c.Width, c.Height)
	}
	if c.RevertDelay < 0 {
		return fmt.Errorf("config: revert delay %s is negative", c.RevertDelay)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}
	return nil
}

// SetupLogging applies the level and formatter to the standard logrus logger.
func (c *Config) SetupLogging() {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if c.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

func intVar(getenv func(string) string, key string, def int) (int, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}
