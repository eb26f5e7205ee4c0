package network

import (
	"context"
	"net"

	"github.com/stretchr/testify/mock"
	"github.com/vishvananda/netlink"
)

// MockNetlinker is a mock implementation of the Netlinker interface.
type MockNetlinker struct {
	mock.Mock
}

func (m *MockNetlinker) LinkAdd(link netlink.Link) error {
	args := m.Called(link)
	return args.Error(0)
}

func (m *MockNetlinker) LinkByName(name string) (netlink.Link, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(netlink.Link), args.Error(1)
}

func (m *MockNetlinker) LinkSetUp(link netlink.Link) error {
	args := m.Called(link)
	return args.Error(0)
}

func (m *MockNetlinker) LinkDel(link netlink.Link) error {
	args := m.Called(link)
	return args.Error(0)
}

func (m *MockNetlinker) Close() {
	m.Called()
}

// MockAddrLookup is a mock implementation of the AddrLookup interface.
type MockAddrLookup struct {
	mock.Mock
}

func (m *MockAddrLookup) HardwareAddr(ctx context.Context, name string) (net.HardwareAddr, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(net.HardwareAddr), args.Error(1)
}

// LinkIndex matches a netlink.Link argument by its index.
func LinkIndex(index int) interface{} {
	return mock.MatchedBy(func(l netlink.Link) bool {
		return l != nil && l.Attrs().Index == index
	})
}

// VethNamed matches a netlink.Link argument that is a veth pair a/b.
func VethNamed(a, b string) interface{} {
	return mock.MatchedBy(func(l netlink.Link) bool {
		v, ok := l.(*netlink.Veth)
		return ok && v.Name == a && v.PeerName == b
	})
}
