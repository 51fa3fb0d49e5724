package config

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	apperrors "github.com/agbru/l3p/internal/errors"
)

func TestParseConfig_Defaults(t *testing.T) {
	var errBuf bytes.Buffer
	cfg, err := ParseConfig("l3p", nil, &errBuf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("ParseConfig() = %+v, want %+v", cfg, Default())
	}
	if cfg.Mode() != "tray+profile" || !cfg.TrayEnabled() || !cfg.ProfileEnabled() {
		t.Errorf("default mode should run both presenters, got %s", cfg.Mode())
	}
	if cfg.SampleInterval() != time.Second {
		t.Errorf("SampleInterval() = %v, want the faster 1s cadence", cfg.SampleInterval())
	}
}

func TestParseConfig_Flags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, c AppConfig)
	}{
		{"tray-only", []string{"--tray-only"}, func(t *testing.T, c AppConfig) {
			if !c.TrayOnly || c.ProfileEnabled() || c.SampleInterval() != DefaultTrayInterval {
				t.Errorf("unexpected config %+v", c)
			}
		}},
		{"profile-only", []string{"--profile-only"}, func(t *testing.T, c AppConfig) {
			if !c.ProfileOnly || c.TrayEnabled() || c.SampleInterval() != DefaultProfileInterval {
				t.Errorf("unexpected config %+v", c)
			}
		}},
		{"fractional intervals", []string{"--tray-interval", "0.5", "--profile-interval=2.25"}, func(t *testing.T, c AppConfig) {
			if c.TrayInterval != 500*time.Millisecond || c.ProfileInterval != 2250*time.Millisecond {
				t.Errorf("intervals = %v / %v", c.TrayInterval, c.ProfileInterval)
			}
		}},
		{"short verbose", []string{"-v"}, func(t *testing.T, c AppConfig) {
			if !c.Verbose {
				t.Error("expected verbose")
			}
		}},
		{"misc", []string{"--history", "300", "--icon-size", "32", "--disk", "/data", "--no-color", "--version"}, func(t *testing.T, c AppConfig) {
			if c.History != 300 || c.IconSize != 32 || c.DiskPath != "/data" || !c.NoColor || !c.ShowVersion {
				t.Errorf("unexpected config %+v", c)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig("l3p", tt.args, &bytes.Buffer{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestParseConfig_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantUsage bool
	}{
		{"both modes", []string{"--tray-only", "--profile-only"}, false},
		{"unknown flag", []string{"--frobnicate"}, true},
		{"positional argument", []string{"extra"}, true},
		{"interval too small", []string{"--tray-interval", "0.05"}, false},
		{"interval too large", []string{"--profile-interval", "61"}, false},
		{"history too small", []string{"--history", "5"}, false},
		{"icon too large", []string{"--icon-size", "512"}, false},
		{"bad number", []string{"--history", "lots"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errBuf bytes.Buffer
			_, err := ParseConfig("l3p", tt.args, &errBuf)
			if err == nil {
				t.Fatal("expected an error")
			}
			if code := apperrors.ExitCodeFor(err); code != apperrors.ExitErrorConfig {
				t.Errorf("exit code = %d, want %d (err: %v)", code, apperrors.ExitErrorConfig, err)
			}
			if got := strings.Contains(errBuf.String(), "Usage:"); got != tt.wantUsage {
				t.Errorf("usage printed = %v, want %v; stderr:\n%s", got, tt.wantUsage, errBuf.String())
			}
		})
	}
}

func TestParseConfig_Help(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := ParseConfig("l3p", []string{"--help"}, &errBuf)
	if !errors.Is(err, pflag.ErrHelp) {
		t.Fatalf("expected pflag.ErrHelp, got %v", err)
	}
	if !strings.Contains(errBuf.String(), "--tray-only") {
		t.Error("help output should list the flags")
	}
}

func TestEnvOverrides(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		args  []string
		check func(t *testing.T, c AppConfig)
	}{
		{
			name: "env applies when flag absent",
			env:  map[string]string{"L3P_TRAY_INTERVAL": "5", "L3P_HISTORY": "60", "L3P_VERBOSE": "yes"},
			check: func(t *testing.T, c AppConfig) {
				if c.TrayInterval != 5*time.Second || c.History != 60 || !c.Verbose {
					t.Errorf("unexpected config %+v", c)
				}
			},
		},
		{
			name: "flag beats env",
			env:  map[string]string{"L3P_TRAY_INTERVAL": "5"},
			args: []string{"--tray-interval", "3"},
			check: func(t *testing.T, c AppConfig) {
				if c.TrayInterval != 3*time.Second {
					t.Errorf("TrayInterval = %v, want flag value 3s", c.TrayInterval)
				}
			},
		},
		{
			name: "duration syntax",
			env:  map[string]string{"L3P_PROFILE_INTERVAL": "250ms"},
			check: func(t *testing.T, c AppConfig) {
				if c.ProfileInterval != 250*time.Millisecond {
					t.Errorf("ProfileInterval = %v", c.ProfileInterval)
				}
			},
		},
		{
			name: "unparseable value keeps default",
			env:  map[string]string{"L3P_ICON_SIZE": "huge"},
			check: func(t *testing.T, c AppConfig) {
				if c.IconSize != DefaultIconSize {
					t.Errorf("IconSize = %d", c.IconSize)
				}
			},
		},
		{
			name: "backend is normalized",
			env:  map[string]string{"L3P_TRAY_BACKEND": " Headless "},
			check: func(t *testing.T, c AppConfig) {
				if c.TrayBackend != BackendHeadless {
					t.Errorf("TrayBackend = %q", c.TrayBackend)
				}
			},
		},
		{
			name: "mode from env",
			env:  map[string]string{"L3P_PROFILE_ONLY": "1"},
			check: func(t *testing.T, c AppConfig) {
				if !c.ProfileOnly {
					t.Error("expected profile-only from env")
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := ParseConfig("l3p", tt.args, &bytes.Buffer{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestEnvOverrides_ConflictingModes(t *testing.T) {
	t.Setenv("L3P_TRAY_ONLY", "true")
	_, err := ParseConfig("l3p", []string{"--profile-only"}, &bytes.Buffer{})
	var cfgErr apperrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestEnvOverrides_UnknownBackend(t *testing.T) {
	t.Setenv("L3P_TRAY_BACKEND", "gtk")
	_, err := ParseConfig("l3p", nil, &bytes.Buffer{})
	var valErr apperrors.ValidationError
	if !errors.As(err, &valErr) || valErr.Field != "tray-backend" {
		t.Fatalf("expected tray-backend ValidationError, got %v", err)
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	tests := []struct {
		val  string
		def  bool
		want bool
	}{
		{"TRUE", false, true},
		{"1", false, true},
		{"no", true, false},
		{"0", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.val, tt.def); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.val, tt.def, got, tt.want)
		}
	}
}
