package linkpair

import (
	"errors"
	"fmt"

	"grimm.is/vethpair/internal/network"
)

// ErrInvalidConfig reports a Config rejected before anything was created.
var ErrInvalidConfig = errors.New("invalid link pair config")

// Channel sentinels, re-exported for callers matching with errors.Is.
var (
	ErrNotFound       = network.ErrNotFound
	ErrExists         = network.ErrExists
	ErrPermission     = network.ErrPermission
	ErrUnsupported    = network.ErrUnsupported
	ErrAbandoned      = network.ErrAbandoned
	ErrNoHardwareAddr = network.ErrNoHardwareAddr
)

// SetupError is returned by Provision when a step after validation fails.
type SetupError struct {
	Config Config
	// State is the lifecycle step that failed.
	State State
	// Endpoint names the interface the failing step addressed, if any.
	Endpoint string
	Err      error

	// Created is set when the kernel accepted the pair before the failure,
	// or may have: an abandoned create request sets it too.
	Created bool
	// RolledBack is set when a compensating delete removed the pair again.
	RolledBack bool
	// RollbackErr holds the failure of the compensating delete, if any.
	RollbackErr error
}

// Leaked reports whether the pair may still occupy the host.
func (e *SetupError) Leaked() bool {
	return e.Created && !e.RolledBack
}

func (e *SetupError) Error() string {
	msg := fmt.Sprintf("link pair %s: %s failed", e.Config, e.State)
	if e.Endpoint != "" {
		msg += " for " + e.Endpoint
	}
	msg += fmt.Sprintf(": %v", e.Err)
	switch {
	case e.RolledBack:
		msg += " (pair removed again)"
	case e.Created && e.RollbackErr != nil:
		msg += fmt.Sprintf(" (rollback failed: %v; remove manually: ip link del %s)", e.RollbackErr, e.Config.EndpointA())
	case e.Created:
		msg += fmt.Sprintf(" (pair left on host; remove manually: ip link del %s)", e.Config.EndpointA())
	}
	return msg
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// TeardownError is returned by Close when the pair could not be deleted.
// Under With it is fatal.
type TeardownError struct {
	ID    string
	Name  string
	Index uint32
	Err   error
}

func (e *TeardownError) Error() string {
	return fmt.Sprintf("link pair %s: failed to delete %s (index %d): %v", e.ID, e.Name, e.Index, e.Err)
}

func (e *TeardownError) Unwrap() error {
	return e.Err
}
