package tray

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"fyne.io/systray"

	"github.com/agbru/l3p/internal/logging"
)

// SystrayBackend shows a native notification-area icon through
// fyne.io/systray. Run must be called from the main goroutine.
type SystrayBackend struct {
	logger logging.Logger

	mu      sync.Mutex
	ready   bool
	stopped bool
	icon    []byte
	tooltip string
	items   []MenuItem

	stopOnce sync.Once
	done     chan struct{}
}

// NewSystrayBackend creates a backend; nothing is shown until Run.
func NewSystrayBackend(logger logging.Logger) *SystrayBackend {
	return &SystrayBackend{logger: logger, done: make(chan struct{})}
}

// Name implements Backend.
func (b *SystrayBackend) Name() string { return "systray" }

// SetIcon implements Backend.
func (b *SystrayBackend) SetIcon(icon []byte) error {
	if len(icon) == 0 {
		return errors.New("empty icon")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return ErrBackendStopped
	}
	b.icon = icon
	if b.ready {
		systray.SetIcon(icon)
	}
	return nil
}

// SetTooltip implements Backend.
func (b *SystrayBackend) SetTooltip(text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return ErrBackendStopped
	}
	b.tooltip = text
	if b.ready {
		systray.SetTooltip(text)
	}
	return nil
}

// RegisterMenu implements Backend. Items registered after Run are appended.
func (b *SystrayBackend) RegisterMenu(items []MenuItem) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return ErrBackendStopped
	}
	b.items = append(b.items, items...)
	if b.ready {
		for _, item := range items {
			b.addItem(item)
		}
	}
	return nil
}

// Run implements Backend.
func (b *SystrayBackend) Run(onReady func()) error {
	systray.Run(func() { b.onReady(onReady) }, func() { b.Stop() })
	return nil
}

func (b *SystrayBackend) onReady(hook func()) {
	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		systray.Quit()
		return
	}
	b.ready = true
	systray.SetTitle("L3P")
	if len(b.icon) > 0 {
		systray.SetIcon(b.icon)
	}
	systray.SetTooltip(b.tooltip)
	for _, item := range b.items {
		b.addItem(item)
	}
	b.mu.Unlock()

	b.logger.Debug("tray ready", logging.String("backend", b.Name()))
	if hook != nil {
		hook()
	}
}

// addItem must be called with b.mu held and the tray ready.
func (b *SystrayBackend) addItem(item MenuItem) {
	if item.SeparatorBefore {
		systray.AddSeparator()
	}
	mi := systray.AddMenuItem(item.Title, item.Tooltip)
	go func() {
		for {
			select {
			case <-b.done:
				return
			case <-mi.ClickedCh:
				b.logger.Debug("menu item clicked", logging.String("item", item.ID))
				if item.OnClick != nil {
					item.OnClick()
				}
			}
		}
	}()
}

// Stop implements Backend.
func (b *SystrayBackend) Stop() {
	b.stopOnce.Do(func() {
		b.mu.Lock()
		b.stopped = true
		ready := b.ready
		b.mu.Unlock()
		close(b.done)
		if ready {
			systray.Quit()
		}
	})
}

// probeSystray reports why a native tray cannot be shown, or nil. On
// Linux and the BSDs the StatusNotifierItem protocol needs a session bus.
func probeSystray() error {
	switch runtime.GOOS {
	case "windows", "darwin":
		return nil
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		if os.Getenv("DBUS_SESSION_BUS_ADDRESS") != "" {
			return nil
		}
		if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
			if _, err := os.Stat(filepath.Join(dir, "bus")); err == nil {
				return nil
			}
		}
		return errors.New("no D-Bus session bus (DBUS_SESSION_BUS_ADDRESS unset)")
	default:
		return fmt.Errorf("no tray support on %s", runtime.GOOS)
	}
}
