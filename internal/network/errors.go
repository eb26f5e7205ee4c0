package network

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports that no live interface matches the name or index.
	ErrNotFound = errors.New("link not found")
	// ErrExists reports that an interface name is already in use.
	ErrExists = errors.New("link already exists")
	// ErrPermission reports that the kernel rejected the request for lack of privilege.
	ErrPermission = errors.New("operation not permitted")
	// ErrChannelClosed is returned by requests issued after Close.
	ErrChannelClosed = errors.New("netlink channel closed")
	// ErrUnsupported is returned on platforms without rtnetlink.
	ErrUnsupported = errors.New("netlink not supported on this platform")
	// ErrAbandoned reports a request that reached the kernel but timed out
	// or was cancelled before the reply. Its outcome is unknown.
	ErrAbandoned = errors.New("request abandoned, outcome unknown")
	// ErrNoHardwareAddr reports an interface without a usable 6-byte MAC.
	ErrNoHardwareAddr = errors.New("no hardware address for interface")
)

// ChannelError is the error returned by every Channel operation.
type ChannelError struct {
	Op     string // one of the Op* constants
	Target string // interface name(s) or "index N"
	Kind   error  // matching package sentinel, if any
	Err    error  // underlying error from netlink or the context
}

func (e *ChannelError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("netlink %s %s: %v", e.Op, e.Target, e.Kind)
	}
	if e.Kind == nil || e.Kind == e.Err {
		return fmt.Sprintf("netlink %s %s: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("netlink %s %s: %v: %v", e.Op, e.Target, e.Kind, e.Err)
}

// Unwrap exposes both the sentinel and the underlying error to errors.Is/As.
func (e *ChannelError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil && e.Err != e.Kind {
		errs = append(errs, e.Err)
	}
	return errs
}

func newChannelError(op, target string, err error) *ChannelError {
	var ce *ChannelError
	if errors.As(err, &ce) {
		return ce
	}
	return &ChannelError{
		Op:     op,
		Target: target,
		Kind:   classify(err),
		Err:    err,
	}
}

func indexTarget(index uint32) string {
	return fmt.Sprintf("index %d", index)
}
