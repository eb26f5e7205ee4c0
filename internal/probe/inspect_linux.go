//go:build linux

package probe

import (
	"fmt"

	"github.com/safchain/ethtool"
)

// Inspect queries ethtool for the driver of the interface called name and,
// for veth links, its peer's index.
func Inspect(name string) (*LinkReport, error) {
	h, err := ethtool.NewEthtool()
	if err != nil {
		return nil, fmt.Errorf("failed to open ethtool handle: %w", err)
	}
	defer h.Close()

	info, err := h.DriverInfo(name)
	if err != nil {
		return nil, fmt.Errorf("ethtool DriverInfo failed for %s: %w", name, err)
	}
	report := &LinkReport{Driver: info.Driver}
	if info.Driver != VethDriver {
		return report, nil
	}

	stats, err := h.Stats(name)
	if err != nil {
		return nil, fmt.Errorf("ethtool Stats failed for %s: %w", name, err)
	}
	report.PeerIndex = uint32(stats["peer_ifindex"])
	return report, nil
}

// VerifyPeers checks that a and b are veth interfaces paired with each other.
func VerifyPeers(a, b IndexedEndpoint) error {
	for _, pair := range [][2]IndexedEndpoint{{a, b}, {b, a}} {
		report, err := Inspect(pair[0].Name())
		if err != nil {
			return err
		}
		if report.Driver != VethDriver {
			return fmt.Errorf("%w: %s uses driver %q", ErrNotPeers, pair[0].Name(), report.Driver)
		}
		if report.PeerIndex != pair[1].Index() {
			return fmt.Errorf("%w: peer of %s is index %d, want %d",
				ErrNotPeers, pair[0].Name(), report.PeerIndex, pair[1].Index())
		}
	}
	return nil
}
