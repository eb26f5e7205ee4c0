//go:build !linux
// +build !linux

package network

import (
	"fmt"
	"runtime"

	"github.com/vishvananda/netlink"
	"github.com/vishvananda/netns"
)

// RealNetlinker is a stub implementation of Netlinker.
type RealNetlinker struct{}

// NewRealNetlinker always fails: veth pairs are a Linux facility.
func NewRealNetlinker() (*RealNetlinker, error) {
	return nil, fmt.Errorf("netlink on %s: %w", runtime.GOOS, ErrUnsupported)
}

// NewRealNetlinkerAt always fails: veth pairs are a Linux facility.
func NewRealNetlinkerAt(ns netns.NsHandle) (*RealNetlinker, error) {
	return nil, fmt.Errorf("netlink on %s: %w", runtime.GOOS, ErrUnsupported)
}

func (r *RealNetlinker) LinkAdd(link netlink.Link) error {
	return ErrUnsupported
}

func (r *RealNetlinker) LinkByName(name string) (netlink.Link, error) {
	return nil, ErrUnsupported
}

func (r *RealNetlinker) LinkSetUp(link netlink.Link) error {
	return ErrUnsupported
}

func (r *RealNetlinker) LinkDel(link netlink.Link) error {
	return ErrUnsupported
}

func (r *RealNetlinker) Close() {}

func classify(err error) error {
	return nil
}
