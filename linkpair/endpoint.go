package linkpair

import (
	"fmt"
	"net"
)

// Endpoint describes one provisioned end of a link pair.
type Endpoint struct {
	name  string
	index uint32
	mac   [6]byte
}

// Name returns the interface name.
func (e Endpoint) Name() string { return e.name }

// Index returns the kernel interface index.
func (e Endpoint) Index() uint32 { return e.index }

// HardwareAddr returns a copy of the interface's 6-byte MAC address.
func (e Endpoint) HardwareAddr() net.HardwareAddr {
	mac := make(net.HardwareAddr, len(e.mac))
	copy(mac, e.mac[:])
	return mac
}

func (e Endpoint) String() string {
	return fmt.Sprintf("%s (index %d, %s)", e.name, e.index, e.HardwareAddr())
}
