// Package config parses and validates the l3p command line and its
// L3P_-prefixed environment overrides. The resulting AppConfig is read once
// at startup and never mutated afterwards.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/spf13/pflag"

	apperrors "github.com/agbru/l3p/internal/errors"
)

// EnvPrefix is prepended to every environment override key.
const EnvPrefix = "L3P_"

// Defaults and accepted ranges.
const (
	DefaultTrayInterval    = 2 * time.Second
	DefaultProfileInterval = 1 * time.Second
	DefaultHistory         = 120
	DefaultIconSize        = 64

	MinInterval = 100 * time.Millisecond
	MaxInterval = 60 * time.Second
	MinHistory  = 10
	MaxHistory  = 3600
	MinIconSize = 8
	MaxIconSize = 256
)

// Tray backend names accepted by L3P_TRAY_BACKEND.
const (
	BackendAuto     = "auto"
	BackendSystray  = "systray"
	BackendHeadless = "headless"
)

// AppConfig is the immutable startup configuration.
type AppConfig struct {
	// TrayOnly runs the tray icon without the profile view.
	TrayOnly bool
	// ProfileOnly runs the profile view without the tray icon.
	ProfileOnly bool
	// ShowVersion prints the version line and exits.
	ShowVersion bool
	// TrayInterval is the tray refresh cadence.
	TrayInterval time.Duration
	// ProfileInterval is the initial profile view refresh cadence.
	ProfileInterval time.Duration
	// History is the number of points kept per chart.
	History int
	// IconSize is the edge length of the tray glyph in pixels.
	IconSize int
	// DiskPath overrides the monitored volume; empty means the system volume.
	DiskPath string
	// TrayBackend selects the tray implementation.
	TrayBackend string
	Verbose     bool
	NoColor     bool
}

// TrayEnabled reports whether the tray presenter runs.
func (c AppConfig) TrayEnabled() bool { return !c.ProfileOnly }

// ProfileEnabled reports whether the profile view can be shown.
func (c AppConfig) ProfileEnabled() bool { return !c.TrayOnly }

// SampleInterval is the cadence of the sampling loop: the fastest active
// presenter cadence.
func (c AppConfig) SampleInterval() time.Duration {
	switch {
	case c.TrayOnly:
		return c.TrayInterval
	case c.ProfileOnly:
		return c.ProfileInterval
	default:
		return min(c.TrayInterval, c.ProfileInterval)
	}
}

// Mode names the run mode for logs.
func (c AppConfig) Mode() string {
	switch {
	case c.TrayOnly:
		return "tray-only"
	case c.ProfileOnly:
		return "profile-only"
	default:
		return "tray+profile"
	}
}

// Default returns the configuration used when no flag or override is given.
func Default() AppConfig {
	return AppConfig{
		TrayInterval:    DefaultTrayInterval,
		ProfileInterval: DefaultProfileInterval,
		History:         DefaultHistory,
		IconSize:        DefaultIconSize,
		TrayBackend:     BackendAuto,
	}
}

// ParseConfig parses args (without the program name) into an AppConfig.
// Parse failures print usage to errWriter and return a ConfigError;
// --help returns pflag.ErrHelp unwrapped.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := Default()
	var trayInterval, profileInterval float64

	fs := pflag.NewFlagSet(programName, pflag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() { printUsage(errWriter, programName, fs) }

	fs.BoolVar(&cfg.TrayOnly, "tray-only", false, "Run only the tray icon, without profile view support.")
	fs.BoolVar(&cfg.ProfileOnly, "profile-only", false, "Run only the profile view, without a tray icon.")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information and exit.")
	fs.Float64Var(&trayInterval, "tray-interval", DefaultTrayInterval.Seconds(), "Tray refresh interval in seconds.")
	fs.Float64Var(&profileInterval, "profile-interval", DefaultProfileInterval.Seconds(), "Profile view refresh interval in seconds.")
	fs.IntVar(&cfg.History, "history", DefaultHistory, "Number of points kept per chart.")
	fs.IntVar(&cfg.IconSize, "icon-size", DefaultIconSize, "Tray icon size in pixels.")
	fs.StringVar(&cfg.DiskPath, "disk", "", "Mount point to monitor (default: the system volume).")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable debug logging.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return cfg, err
		}
		fs.Usage()
		return cfg, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return cfg, apperrors.NewConfigError("unexpected argument: %s", fs.Arg(0))
	}

	cfg.TrayInterval = secondsToDuration(trayInterval)
	cfg.ProfileInterval = secondsToDuration(profileInterval)

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks mutual exclusion and value ranges.
func (c AppConfig) Validate() error {
	if c.TrayOnly && c.ProfileOnly {
		return apperrors.NewConfigError("--tray-only and --profile-only are mutually exclusive")
	}
	for _, iv := range []struct {
		name string
		d    time.Duration
	}{
		{"tray-interval", c.TrayInterval},
		{"profile-interval", c.ProfileInterval},
	} {
		if iv.d < MinInterval || iv.d > MaxInterval {
			return apperrors.ValidationError{
				Field:   iv.name,
				Message: fmt.Sprintf("must be between %.1f and %.0f seconds, got %.3g", MinInterval.Seconds(), MaxInterval.Seconds(), iv.d.Seconds()),
			}
		}
	}
	if c.History < MinHistory || c.History > MaxHistory {
		return apperrors.ValidationError{Field: "history", Message: fmt.Sprintf("must be between %d and %d, got %d", MinHistory, MaxHistory, c.History)}
	}
	if c.IconSize < MinIconSize || c.IconSize > MaxIconSize {
		return apperrors.ValidationError{Field: "icon-size", Message: fmt.Sprintf("must be between %d and %d, got %d", MinIconSize, MaxIconSize, c.IconSize)}
	}
	switch c.TrayBackend {
	case BackendAuto, BackendSystray, BackendHeadless:
	default:
		return apperrors.ValidationError{Field: "tray-backend", Message: fmt.Sprintf("unknown backend %q (want auto, systray or headless)", c.TrayBackend)}
	}
	return nil
}

func secondsToDuration(s float64) time.Duration {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}

func printUsage(w io.Writer, programName string, fs *pflag.FlagSet) {
	var b strings.Builder
	fmt.Fprintf(&b, "L3P - Low-Profile Performance Profile: a lightweight system monitor.\n\n")
	fmt.Fprintf(&b, "Usage: %s [--tray-only | --profile-only] [flags]\n\nFlags:\n", programName)
	b.WriteString(fs.FlagUsages())
	fmt.Fprintf(&b, "\nEnvironment overrides use the %s prefix, e.g. %sTRAY_INTERVAL=5.\n", EnvPrefix, EnvPrefix)
	_, _ = io.WriteString(w, b.String())
}
