//go:build linux
// +build linux

package network

import (
	"errors"
	"fmt"

	"github.com/vishvananda/netlink"
	"github.com/vishvananda/netns"
	"golang.org/x/sys/unix"
)

// RealNetlinker is a concrete implementation of Netlinker backed by a
// dedicated netlink handle.
type RealNetlinker struct {
	h *netlink.Handle
}

// NewRealNetlinker opens a netlink handle in the caller's network namespace.
func NewRealNetlinker() (*RealNetlinker, error) {
	h, err := netlink.NewHandle(unix.NETLINK_ROUTE)
	if err != nil {
		return nil, fmt.Errorf("failed to open netlink handle: %w", err)
	}
	return &RealNetlinker{h: h}, nil
}

// NewRealNetlinkerAt opens a netlink handle inside the given network namespace.
// The caller keeps ownership of ns.
func NewRealNetlinkerAt(ns netns.NsHandle) (*RealNetlinker, error) {
	h, err := netlink.NewHandleAt(ns, unix.NETLINK_ROUTE)
	if err != nil {
		return nil, fmt.Errorf("failed to open netlink handle in %s: %w", ns, err)
	}
	return &RealNetlinker{h: h}, nil
}

// LinkAdd adds a link.
func (r *RealNetlinker) LinkAdd(link netlink.Link) error {
	return r.h.LinkAdd(link)
}

// LinkByName retrieves a link by name.
func (r *RealNetlinker) LinkByName(name string) (netlink.Link, error) {
	return r.h.LinkByName(name)
}

// LinkSetUp sets the link up.
func (r *RealNetlinker) LinkSetUp(link netlink.Link) error {
	return r.h.LinkSetUp(link)
}

// LinkDel deletes a link.
func (r *RealNetlinker) LinkDel(link netlink.Link) error {
	return r.h.LinkDel(link)
}

// Close closes the netlink handle.
func (r *RealNetlinker) Close() {
	r.h.Close()
}

// classify maps a raw netlink error onto the package sentinels.
func classify(err error) error {
	var notFound netlink.LinkNotFoundError
	switch {
	case errors.As(err, &notFound):
		return ErrNotFound
	case errors.Is(err, unix.ENODEV), errors.Is(err, unix.ENOENT):
		return ErrNotFound
	case errors.Is(err, unix.EEXIST), errors.Is(err, unix.ENOTUNIQ):
		return ErrExists
	case errors.Is(err, unix.EPERM), errors.Is(err, unix.EACCES):
		return ErrPermission
	}
	return nil
}
