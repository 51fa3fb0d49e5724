package app

import (
	"fmt"
	"io"

	"github.com/Masterminds/semver/v3"

	"github.com/agbru/l3p/internal/ui"
)

// Version and BuildDate are set at link time:
//
//	go build -ldflags "-X github.com/agbru/l3p/internal/app.Version=1.2.0 -X github.com/agbru/l3p/internal/app.BuildDate=2026-01-02"
var (
	Version   = "0.0.0-dev"
	BuildDate = "unknown"
)

// DisplayVersion returns Version, prefixed with "dev-" unless it is a
// release semver without metadata or an already marked "-dev" build.
func DisplayVersion() string {
	v, err := semver.StrictNewVersion(Version)
	if err != nil || v.Metadata() != "" {
		return "dev-" + Version
	}
	switch v.Prerelease() {
	case "", "dev":
		return v.String()
	}
	return "dev-" + Version
}

// HasVersionFlag reports whether --version appears in args before a "--"
// terminator.
func HasVersionFlag(args []string) bool {
	return hasFlag(args, "version")
}

// HasNoColorFlag reports whether --no-color appears in args before a "--"
// terminator. main checks it before flags are parsed so early diagnostics
// are painted consistently.
func HasNoColorFlag(args []string) bool {
	return hasFlag(args, "no-color")
}

func hasFlag(args []string, name string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "--"+name || a == "-"+name {
			return true
		}
	}
	return false
}

// PrintVersion writes "L3P v<version> (built <date>)", the name and version
// in the theme's primary color.
func PrintVersion(w io.Writer) {
	t := ui.GetCurrentTheme()
	fmt.Fprintf(w, "%s (built %s)\n", t.Paint(t.Primary, "L3P v"+DisplayVersion()), BuildDate)
}

// PrintError writes a one-line diagnostic with the "l3p:" prefix in the
// theme's error color.
func PrintError(w io.Writer, err error) {
	t := ui.GetCurrentTheme()
	fmt.Fprintf(w, "%s %v\n", t.Paint(t.Error, "l3p:"), err)
}
