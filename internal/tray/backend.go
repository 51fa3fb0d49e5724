//go:generate mockgen -source=backend.go -destination=mocks/mock_backend.go -package=mocks

package tray

import (
	"errors"
	"image"
	"runtime"

	"github.com/agbru/l3p/internal/glyph"
)

// ErrBackendStopped is returned by a Backend once Stop has been called.
var ErrBackendStopped = errors.New("tray backend stopped")

// MenuItem is one entry of the tray context menu.
type MenuItem struct {
	// ID identifies the item in logs and tests.
	ID string
	// Title is the visible label.
	Title string
	// Tooltip is shown on hover where the platform supports it.
	Tooltip string
	// OnClick runs on the backend's event goroutine; it must not block.
	OnClick func()
	// SeparatorBefore inserts a separator above the item.
	SeparatorBefore bool
}

// Backend is the platform tray capability set. It is chosen once at
// startup. SetIcon, SetTooltip and RegisterMenu may be called before Run;
// the backend applies them once the tray is ready.
type Backend interface {
	// Name identifies the implementation.
	Name() string
	// SetIcon replaces the icon with an encoded image (see EncodeIcon).
	SetIcon(icon []byte) error
	// SetTooltip replaces the hover text.
	SetTooltip(text string) error
	// RegisterMenu installs the context menu.
	RegisterMenu(items []MenuItem) error
	// Run blocks, driving the platform event loop, until Stop is called.
	// onReady is invoked once the tray can accept updates.
	Run(onReady func()) error
	// Stop releases the tray icon and makes Run return. It is idempotent.
	Stop()
}

// EncodeIcon encodes img in the format the platform tray expects: ICO on
// Windows, PNG elsewhere.
func EncodeIcon(img image.Image) ([]byte, error) {
	if runtime.GOOS == "windows" {
		return glyph.EncodeICO(img)
	}
	return glyph.EncodePNG(img)
}
