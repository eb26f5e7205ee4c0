//go:build linux

package cmd

import (
	"bytes"
	"context"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"

	"grimm.is/vethpair/internal/network"
	"grimm.is/vethpair/linkpair"
)

func device(name string, index int, mac net.HardwareAddr) *netlink.Device {
	return &netlink.Device{LinkAttrs: netlink.LinkAttrs{Name: name, Index: index, HardwareAddr: mac}}
}

func mockPair(nl *network.MockNetlinker, a, b string) {
	nl.On("LinkAdd", network.VethNamed(a, b)).Return(nil).Once()
	nl.On("LinkByName", a).Return(device(a, 20, net.HardwareAddr{2, 0, 0, 0, 0, 1}), nil)
	nl.On("LinkByName", b).Return(device(b, 21, net.HardwareAddr{2, 0, 0, 0, 0, 2}), nil)
	nl.On("LinkSetUp", mock.Anything).Return(nil).Twice()
	nl.On("Close").Return().Once()
}

func TestRunUp_OneShot(t *testing.T) {
	out := captureOutput(t)
	nl := new(network.MockNetlinker)
	mockPair(nl, "up-a", "up-b")
	nl.On("LinkDel", network.LinkIndex(20)).Return(nil).Once()

	err := runUp(context.Background(), UpOptions{EndpointA: "up-a", EndpointB: "up-b"},
		linkpair.WithNetlinker(nl))
	require.NoError(t, err)

	assert.Contains(t, out.String(), "ready")
	assert.Contains(t, out.String(), "up-a (index 20, 02:00:00:00:00:01)")
	assert.Contains(t, out.String(), "up-b (index 21, 02:00:00:00:00:02)")
	nl.AssertExpectations(t)
}

// cancelOnWrite cancels a context once the hold message is printed.
type cancelOnWrite struct {
	bytes.Buffer
	cancel context.CancelFunc
}

func (w *cancelOnWrite) Write(p []byte) (int, error) {
	if strings.Contains(string(p), "Holding") {
		w.cancel()
	}
	return w.Buffer.Write(p)
}

func TestRunUp_HoldUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	orig := stdout
	stdout = &cancelOnWrite{cancel: cancel}
	t.Cleanup(func() { stdout = orig })

	nl := new(network.MockNetlinker)
	mockPair(nl, "veth0", "veth1")
	nl.On("LinkDel", network.LinkIndex(20)).Return(nil).Once()

	err := runUp(ctx, UpOptions{Hold: true}, linkpair.WithNetlinker(nl))
	require.NoError(t, err)
	nl.AssertExpectations(t)
}

func TestRunUp_TeardownFailureExits(t *testing.T) {
	captureOutput(t)
	var code int
	orig := exit
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit = orig })

	nl := new(network.MockNetlinker)
	mockPair(nl, "veth0", "veth1")
	nl.On("LinkDel", network.LinkIndex(20)).Return(unix.EPERM).Once()

	err := runUp(context.Background(), UpOptions{}, linkpair.WithNetlinker(nl))
	assert.NoError(t, err)
	assert.Equal(t, 1, code)
}

func TestRunUp_ProvisionFailure(t *testing.T) {
	captureOutput(t)
	nl := new(network.MockNetlinker)
	nl.On("LinkAdd", mock.Anything).Return(unix.EEXIST).Once()
	nl.On("Close").Return().Once()

	err := runUp(context.Background(), UpOptions{}, linkpair.WithNetlinker(nl))
	assert.ErrorIs(t, err, linkpair.ErrExists)
}

func TestRunUp_InvalidNames(t *testing.T) {
	err := runUp(context.Background(), UpOptions{EndpointA: "same", EndpointB: "same"})
	assert.ErrorIs(t, err, linkpair.ErrInvalidConfig)
}
