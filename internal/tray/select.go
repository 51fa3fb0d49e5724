package tray

import (
	"fmt"

	"github.com/agbru/l3p/internal/config"
	apperrors "github.com/agbru/l3p/internal/errors"
	"github.com/agbru/l3p/internal/logging"
)

// probe is replaced in tests.
var probe = probeSystray

// Select returns the backend named by L3P_TRAY_BACKEND (already read into
// the config). "auto" means the native tray. A native tray that cannot be
// shown yields a UIError.
func Select(name string, logger logging.Logger) (Backend, error) {
	switch name {
	case config.BackendHeadless:
		return NewHeadlessBackend(logger), nil
	case config.BackendAuto, config.BackendSystray, "":
		if err := probe(); err != nil {
			return nil, apperrors.NewUIError("tray", err)
		}
		return NewSystrayBackend(logger), nil
	default:
		return nil, apperrors.NewUIError("tray", fmt.Errorf("unknown backend %q", name))
	}
}
