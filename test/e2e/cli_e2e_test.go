package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E verifies the built binary's startup contract: version output,
// help, and rejection of bad invocations before any presenter starts.
func TestCLI_E2E(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}

	tmpDir := t.TempDir()
	binName := "l3p"
	if runtime.GOOS == "windows" {
		binName = "l3p.exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs in test/e2e; build from the module root.
	rootDir := "../.."

	cmd := exec.Command("go", "build",
		"-ldflags", "-X github.com/agbru/l3p/internal/app.Version=1.2.3 -X github.com/agbru/l3p/internal/app.BuildDate=2026-01-02",
		"-o", binPath, "./cmd/l3p")
	cmd.Dir = rootDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build l3p: %v", err)
	}

	tests := []struct {
		name     string
		args     []string
		env      []string
		wantOut  string // substring match (case-insensitive)
		wantCode int
	}{
		{
			name:     "Version Flag",
			args:     []string{"--version"},
			wantOut:  "L3P v1.2.3 (built 2026-01-02)",
			wantCode: 0,
		},
		{
			name:     "Help",
			args:     []string{"--help"},
			wantOut:  "usage",
			wantCode: 0,
		},
		{
			name:     "Both Modes Rejected",
			args:     []string{"--tray-only", "--profile-only"},
			wantOut:  "mutually exclusive",
			wantCode: 4,
		},
		{
			name:     "Both Modes From Environment",
			env:      []string{"L3P_TRAY_ONLY=1", "L3P_PROFILE_ONLY=1"},
			wantOut:  "mutually exclusive",
			wantCode: 4,
		},
		{
			name:     "Unknown Flag",
			args:     []string{"--bogus"},
			wantOut:  "usage",
			wantCode: 4,
		},
		{
			name:     "Out Of Range Interval",
			args:     []string{"--tray-interval", "0"},
			wantOut:  "tray-interval",
			wantCode: 4,
		},
		{
			name:     "Unknown Tray Backend",
			args:     []string{"--tray-only"},
			env:      []string{"L3P_TRAY_BACKEND=carrier-pigeon"},
			wantOut:  "backend",
			wantCode: 4,
		},
		{
			name:     "Profile Only Without Terminal",
			args:     []string{"--profile-only"},
			wantOut:  "profile unavailable",
			wantCode: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			cmd.Env = append(cmd.Env, tt.env...)
			output, err := cmd.CombinedOutput()

			outStr := string(output)

			if tt.wantCode == 0 {
				if err != nil {
					t.Errorf("Command failed unexpectedly: %v\nOutput: %s", err, outStr)
				}
			} else {
				if err == nil {
					t.Errorf("Expected non-zero exit code, but command succeeded.\nOutput: %s", outStr)
				} else if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() != tt.wantCode {
					t.Errorf("exit code %d, want %d\nOutput: %s", exitErr.ExitCode(), tt.wantCode, outStr)
				}
			}

			if tt.wantOut != "" {
				if !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
					t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
				}
			}
		})
	}

	t.Run("Color Follows No Color Flag", func(t *testing.T) {
		var env []string
		for _, kv := range os.Environ() {
			if !strings.HasPrefix(kv, "NO_COLOR=") && !strings.HasPrefix(kv, "L3P_NO_COLOR=") {
				env = append(env, kv)
			}
		}
		for _, tc := range []struct {
			args      []string
			wantColor bool
		}{
			{[]string{"--version"}, true},
			{[]string{"--no-color", "--version"}, false},
		} {
			cmd := exec.Command(binPath, tc.args...)
			cmd.Env = env
			out, err := cmd.Output()
			if err != nil {
				t.Fatalf("%v: %v", tc.args, err)
			}
			if got := strings.Contains(string(out), "\033["); got != tc.wantColor {
				t.Errorf("%v: colored = %v, want %v (output %q)", tc.args, got, tc.wantColor, out)
			}
		}
	})
}
