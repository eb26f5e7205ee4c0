package network

import (
	"context"
	"net"

	"github.com/vishvananda/netlink"
)

// Netlinker is an interface that abstracts netlink interactions.
// This allows for mocking netlink calls during unit testing.
type Netlinker interface {
	LinkAdd(link netlink.Link) error
	LinkByName(name string) (netlink.Link, error)
	LinkSetUp(link netlink.Link) error
	LinkDel(link netlink.Link) error

	// Close releases the underlying netlink sockets.
	Close()
}

// AddrLookup resolves an interface's hardware address by name.
type AddrLookup interface {
	HardwareAddr(ctx context.Context, name string) (net.HardwareAddr, error)
}

// Operation names used in errors, logs and metric labels.
const (
	OpCreate       = "link_add"
	OpResolveIndex = "link_get"
	OpSetUp        = "link_set_up"
	OpDelete       = "link_del"
	OpHardwareAddr = "link_hwaddr"
)

// linkAt returns a minimal link that netlink addresses by index only.
func linkAt(index uint32) netlink.Link {
	return &netlink.Device{LinkAttrs: netlink.LinkAttrs{Index: int(index)}}
}

// newVeth builds the veth link request for the pair a/b.
func newVeth(a, b string) *netlink.Veth {
	attrs := netlink.NewLinkAttrs()
	attrs.Name = a
	return &netlink.Veth{
		LinkAttrs: attrs,
		PeerName:  b,
	}
}
