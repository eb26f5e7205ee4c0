//go:build linux

package testutil

import (
	"errors"
	"net"
	"runtime"
	"testing"

	"github.com/vishvananda/netlink"
	"github.com/vishvananda/netns"
)

// NewNamespace creates an anonymous network namespace for the duration of
// the test, leaving the calling thread in its original namespace. The
// namespace disappears once the returned handle is closed at cleanup.
func NewNamespace(t *testing.T) netns.NsHandle {
	t.Helper()

	// netns.New switches the current thread; keep it pinned until restored.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	orig, err := netns.Get()
	if err != nil {
		t.Fatalf("failed to get original netns: %v", err)
	}
	defer orig.Close()

	ns, err := netns.New()
	if err != nil {
		t.Skipf("Skipping test: cannot create network namespace: %v", err)
	}

	if err := netns.Set(orig); err != nil {
		ns.Close()
		t.Fatalf("failed to switch back to original netns: %v", err)
	}

	t.Cleanup(func() {
		ns.Close()
	})
	return ns
}

// InNamespace runs fn on a thread that has entered ns, restoring the
// original namespace afterwards. Sockets opened inside fn stay bound to ns.
func InNamespace(t *testing.T, ns netns.NsHandle, fn func()) {
	t.Helper()

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	orig, err := netns.Get()
	if err != nil {
		t.Fatalf("failed to get original netns: %v", err)
	}
	defer orig.Close()

	if err := netns.Set(ns); err != nil {
		t.Fatalf("failed to enter netns %s: %v", ns, err)
	}
	defer func() {
		if err := netns.Set(orig); err != nil {
			t.Fatalf("failed to restore netns: %v", err)
		}
	}()

	fn()
}

// LinkExists reports whether an interface called name is present in ns.
func LinkExists(t *testing.T, ns netns.NsHandle, name string) bool {
	t.Helper()

	h, err := netlink.NewHandleAt(ns)
	if err != nil {
		t.Fatalf("failed to open netlink handle in %s: %v", ns, err)
	}
	defer h.Close()

	_, err = h.LinkByName(name)
	if err == nil {
		return true
	}
	var notFound netlink.LinkNotFoundError
	if errors.As(err, &notFound) {
		return false
	}
	t.Fatalf("LinkByName(%q) failed: %v", name, err)
	return false
}

// LinkIsUp reports whether the interface called name in ns has IFF_UP set.
func LinkIsUp(t *testing.T, ns netns.NsHandle, name string) bool {
	t.Helper()

	h, err := netlink.NewHandleAt(ns)
	if err != nil {
		t.Fatalf("failed to open netlink handle in %s: %v", ns, err)
	}
	defer h.Close()

	link, err := h.LinkByName(name)
	if err != nil {
		t.Fatalf("LinkByName(%q) failed: %v", name, err)
	}
	return link.Attrs().Flags&net.FlagUp != 0
}
