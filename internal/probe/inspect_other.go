//go:build !linux

package probe

import (
	"fmt"
	"runtime"
)

var errUnsupported = fmt.Errorf("ethtool on %s: not supported", runtime.GOOS)

// Inspect is not supported off Linux.
func Inspect(name string) (*LinkReport, error) {
	return nil, errUnsupported
}

// VerifyPeers is not supported off Linux.
func VerifyPeers(a, b IndexedEndpoint) error {
	return errUnsupported
}
