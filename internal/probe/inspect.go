package probe

import "errors"

// VethDriver is the driver name ethtool reports for veth interfaces.
const VethDriver = "veth"

// ErrNotPeers is returned by VerifyPeers when the kernel does not report
// the two interfaces as each other's peer.
var ErrNotPeers = errors.New("interfaces are not veth peers")

// LinkReport is what ethtool reports about one interface.
type LinkReport struct {
	Driver string
	// PeerIndex is the peer's interface index, or 0 for non-veth links.
	PeerIndex uint32
}

// IndexedEndpoint is an Endpoint that also knows its interface index.
type IndexedEndpoint interface {
	Endpoint
	Index() uint32
}
