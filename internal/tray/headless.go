package tray

import (
	"sync"

	"github.com/agbru/l3p/internal/logging"
)

// HeadlessBackend has no visible icon. Updates are recorded and logged at
// debug level. It is used when L3P_TRAY_BACKEND=headless and in tests.
type HeadlessBackend struct {
	logger logging.Logger

	mu      sync.Mutex
	icon    []byte
	tooltip string
	items   []MenuItem
	updates int

	stopOnce sync.Once
	done     chan struct{}
	stopped  bool
}

// NewHeadlessBackend creates a headless backend.
func NewHeadlessBackend(logger logging.Logger) *HeadlessBackend {
	return &HeadlessBackend{logger: logger, done: make(chan struct{})}
}

// Name implements Backend.
func (h *HeadlessBackend) Name() string { return "headless" }

// SetIcon implements Backend.
func (h *HeadlessBackend) SetIcon(icon []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return ErrBackendStopped
	}
	h.icon = icon
	h.updates++
	return nil
}

// SetTooltip implements Backend.
func (h *HeadlessBackend) SetTooltip(text string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return ErrBackendStopped
	}
	h.tooltip = text
	h.logger.Debug("tray tooltip", logging.String("tooltip", text))
	return nil
}

// RegisterMenu implements Backend.
func (h *HeadlessBackend) RegisterMenu(items []MenuItem) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return ErrBackendStopped
	}
	h.items = append(h.items, items...)
	return nil
}

// Run implements Backend. It blocks until Stop.
func (h *HeadlessBackend) Run(onReady func()) error {
	if onReady != nil {
		onReady()
	}
	<-h.done
	return nil
}

// Stop implements Backend.
func (h *HeadlessBackend) Stop() {
	h.stopOnce.Do(func() {
		h.mu.Lock()
		h.stopped = true
		h.mu.Unlock()
		close(h.done)
	})
}

// Click invokes the menu item with the given ID, as a user would. It
// reports whether the item exists.
func (h *HeadlessBackend) Click(id string) bool {
	h.mu.Lock()
	var onClick func()
	found := false
	for _, item := range h.items {
		if item.ID == id {
			onClick, found = item.OnClick, true
			break
		}
	}
	h.mu.Unlock()
	if onClick != nil {
		onClick()
	}
	return found
}

// Tooltip returns the last tooltip set.
func (h *HeadlessBackend) Tooltip() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tooltip
}

// Icon returns the last icon set and the number of icon updates.
func (h *HeadlessBackend) Icon() ([]byte, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.icon, h.updates
}
