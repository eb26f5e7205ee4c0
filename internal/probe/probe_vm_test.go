//go:build linux

package probe

import (
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/vethpair/internal/logging"
	"grimm.is/vethpair/internal/network"
	"grimm.is/vethpair/internal/testutil"
	"grimm.is/vethpair/linkpair"
)

func TestProbe_Integration(t *testing.T) {
	testutil.RequireVM(t)
	ns := testutil.NewNamespace(t)

	nl, err := network.NewRealNetlinkerAt(ns)
	require.NoError(t, err)

	quiet := logging.New(logging.Config{Output: io.Discard})
	p, err := linkpair.Provision(context.Background(), linkpair.NewConfig("pr-a", "pr-b"),
		linkpair.WithNetlinker(nl), linkpair.WithLogger(quiet))
	require.NoError(t, err)
	defer p.Close()

	testutil.InNamespace(t, ns, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		assert.NoError(t, Probe(ctx, p.A(), p.B()))
		assert.NoError(t, Probe(ctx, p.B(), p.A()))
	})
}

func TestVerifyPeers_Integration(t *testing.T) {
	testutil.RequireVM(t)
	ns := testutil.NewNamespace(t)

	nl, err := network.NewRealNetlinkerAt(ns)
	require.NoError(t, err)

	quiet := logging.New(logging.Config{Output: io.Discard})
	p, err := linkpair.Provision(context.Background(), linkpair.NewConfig("vp-a", "vp-b"),
		linkpair.WithNetlinker(nl), linkpair.WithLogger(quiet))
	require.NoError(t, err)
	defer p.Close()

	testutil.InNamespace(t, ns, func() {
		report, err := Inspect("vp-a")
		require.NoError(t, err)
		assert.Equal(t, VethDriver, report.Driver)
		assert.Equal(t, p.B().Index(), report.PeerIndex)

		assert.NoError(t, VerifyPeers(p.A(), p.B()))

		// Swapped indices do not describe a pair.
		swapped := indexed{fakeEndpoint{name: "vp-a"}, p.A().Index()}
		assert.ErrorIs(t, VerifyPeers(swapped, swapped), ErrNotPeers)
	})
}

type indexed struct {
	fakeEndpoint
	index uint32
}

func (i indexed) Index() uint32 { return i.index }

func TestProbe_NoSuchInterface_Integration(t *testing.T) {
	testutil.RequireVM(t)
	ns := testutil.NewNamespace(t)

	testutil.InNamespace(t, ns, func() {
		ep := fakeEndpoint{name: "missing0", mac: srcMAC}
		err := Probe(context.Background(), ep, ep)
		assert.Error(t, err)
	})
}

type fakeEndpoint struct {
	name string
	mac  net.HardwareAddr
}

func (f fakeEndpoint) Name() string                   { return f.name }
func (f fakeEndpoint) HardwareAddr() net.HardwareAddr { return f.mac }
