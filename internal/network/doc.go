// Package network implements the rtnetlink channel used to provision veth
// link pairs.
//
// # Overview
//
// A [Channel] owns one rtnetlink connection and a dedicated worker goroutine
// that performs every kernel round trip. Callers block on a per-request reply,
// so the exported operations are synchronous while all I/O stays on the
// worker's OS thread.
//
// # Operations
//
//   - [Channel.CreatePair]: create a veth pair from two names
//   - [Channel.ResolveIndex]: resolve an interface name to its index
//   - [Channel.SetUp]: mark an interface administratively up
//   - [Channel.Delete]: delete an interface (and its veth peer)
//   - [Channel.HardwareAddr]: look up an interface's MAC address
//
// Failures are reported as [*ChannelError] values that match the package
// sentinels ([ErrNotFound], [ErrExists], [ErrPermission], ...) with
// errors.Is. Nothing is retried.
//
// # Dependencies
//
// Uses github.com/vishvananda/netlink for all netlink operations and
// github.com/vishvananda/netns to open handles inside another namespace.
//
// # Example
//
//	nl, err := network.NewRealNetlinker()
//	if err != nil {
//	    return err
//	}
//	ch := network.Open(nl)
//	defer ch.Close()
//
//	if err := ch.CreatePair(ctx, "veth0", "veth1"); err != nil {
//	    return err
//	}
package network
