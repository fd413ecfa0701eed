// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the session token and user profile
// go to the OS keychain. Environment variables (optionally seeded from a .env
// file) override the file values for the current process.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"farmacia/cli/internal/keychain"
	"farmacia/cli/internal/model"
	"farmacia/cli/internal/xdg"
)

// Environment variables read by the CLI.
const (
	EnvMode            = "FARMACIA_ENV"
	EnvPlatform        = "FARMACIA_PLATFORM"
	EnvPushToken       = "FARMACIA_PUSH_TOKEN"
	EnvKeyringPassword = "FARMACIA_KEYRING_PASSWORD"
	EnvKeyringBackend  = "FARMACIA_KEYRING_BACKEND"
	EnvVerbose         = "FARMACIA_VERBOSE"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	LogLevel       string `json:"log_level"`
	KeyringBackend string `json:"keyring_backend"`
	Platform       string `json:"platform,omitempty"`
	// Mode overrides the compiled-in backend mode (development|production).
	Mode string `json:"mode,omitempty"`
}

// Keys accepted by Set, in display order.
var Keys = []string{"log_level", "keyring_backend", "platform", "mode"}

// ErrUnknownKey is returned by Set for a key outside Keys.
var ErrUnknownKey = errors.New("unknown config key")

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	return Config{
		LogLevel:       "warn",
		KeyringBackend: keychain.BackendAuto,
	}
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; missing file returns defaults. Empty fields in the
// file fall back to their defaults.
func Load() (Config, error) {
	c := Defaults()
	p, err := path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, err
	}
	var fromFile Config
	if err := json.Unmarshal(data, &fromFile); err != nil {
		return c, err
	}
	if fromFile.LogLevel != "" {
		c.LogLevel = fromFile.LogLevel
	}
	if fromFile.KeyringBackend != "" {
		c.KeyringBackend = fromFile.KeyringBackend
	}
	c.Platform = fromFile.Platform
	c.Mode = fromFile.Mode
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

// Get returns the value stored under key.
func (c Config) Get(key string) (string, error) {
	switch key {
	case "log_level":
		return c.LogLevel, nil
	case "keyring_backend":
		return c.KeyringBackend, nil
	case "platform":
		return c.Platform, nil
	case "mode":
		return c.Mode, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownKey, key)
}

// Set returns a copy of c with key set to value. An empty value resets the
// key to its default.
func (c Config) Set(key, value string) (Config, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	def := Defaults()
	switch key {
	case "log_level":
		switch value {
		case "":
			value = def.LogLevel
		case "debug", "info", "warn", "error":
		default:
			return c, fmt.Errorf("invalid log_level %q (debug|info|warn|error)", value)
		}
		c.LogLevel = value
	case "keyring_backend":
		switch value {
		case "":
			value = def.KeyringBackend
		case keychain.BackendAuto, keychain.BackendFile:
		default:
			return c, fmt.Errorf("invalid keyring_backend %q (%s|%s)", value, keychain.BackendAuto, keychain.BackendFile)
		}
		c.KeyringBackend = value
	case "platform":
		if value != "" {
			p, err := model.ParsePlatform(value)
			if err != nil {
				return c, err
			}
			value = strings.ToLower(string(p))
		}
		c.Platform = value
	case "mode":
		switch value {
		case "", "development", "production":
		case "dev":
			value = "development"
		default:
			return c, fmt.Errorf("invalid mode %q (development|production)", value)
		}
		c.Mode = value
	default:
		return c, fmt.Errorf("%w %q", ErrUnknownKey, key)
	}
	return c, nil
}

// LoadDotEnv loads variables from the given .env files (default ".env") into
// the process environment without overriding variables that are already set.
// Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// ApplyEnv overlays FARMACIA_* environment overrides onto c.
func (c Config) ApplyEnv() Config {
	if v := strings.TrimSpace(os.Getenv(EnvPlatform)); v != "" {
		c.Platform = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvKeyringBackend)); v != "" {
		c.KeyringBackend = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvMode)); v != "" {
		c.Mode = v
	}
	if Verbose() {
		c.LogLevel = "debug"
	}
	return c
}

// Verbose reports whether FARMACIA_VERBOSE requests debug output.
func Verbose() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvVerbose))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
