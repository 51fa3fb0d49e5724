// This file contains environment variable utilities for configuration override.

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// isFlagSetAny reports whether any of the named flags was given on the
// command line.
func isFlagSetAny(fs *pflag.FlagSet, names ...string) bool {
	for _, name := range names {
		if fs.Changed(name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the L3P_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Numeric overrides
	{"TRAY_INTERVAL", []string{"tray-interval"}, func(c *AppConfig, v string) {
		if d, ok := parseSecondsEnv(v); ok {
			c.TrayInterval = d
		}
	}},
	{"PROFILE_INTERVAL", []string{"profile-interval"}, func(c *AppConfig, v string) {
		if d, ok := parseSecondsEnv(v); ok {
			c.ProfileInterval = d
		}
	}},
	{"HISTORY", []string{"history"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.History = parsed
		}
	}},
	{"ICON_SIZE", []string{"icon-size"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.IconSize = parsed
		}
	}},

	// String overrides
	{"DISK", []string{"disk"}, func(c *AppConfig, v string) {
		c.DiskPath = v
	}},
	{"TRAY_BACKEND", nil, func(c *AppConfig, v string) {
		c.TrayBackend = strings.ToLower(strings.TrimSpace(v))
	}},

	// Boolean overrides
	{"VERBOSE", []string{"verbose", "v"}, func(c *AppConfig, v string) {
		c.Verbose = parseBoolEnv(v, c.Verbose)
	}},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) {
		c.NoColor = parseBoolEnv(v, c.NoColor)
	}},
	{"TRAY_ONLY", []string{"tray-only"}, func(c *AppConfig, v string) {
		c.TrayOnly = parseBoolEnv(v, c.TrayOnly)
	}},
	{"PROFILE_ONLY", []string{"profile-only"}, func(c *AppConfig, v string) {
		c.ProfileOnly = parseBoolEnv(v, c.ProfileOnly)
	}},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// parseSecondsEnv accepts either plain seconds ("2.5") or a Go duration
// ("2500ms").
func parseSecondsEnv(val string) (time.Duration, bool) {
	if s, err := strconv.ParseFloat(val, 64); err == nil {
		return secondsToDuration(s), true
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d, true
	}
	return 0, false
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
func applyEnvOverrides(config *AppConfig, fs *pflag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
