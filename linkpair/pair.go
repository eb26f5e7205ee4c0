package linkpair

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"grimm.is/vethpair/internal/logging"
	"grimm.is/vethpair/internal/network"
)

// Pair is a provisioned veth link pair. It owns the netlink channel used to
// create it and deletes the pair through that channel on Close.
type Pair struct {
	id        string
	cfg       Config
	a, b      Endpoint
	createdAt time.Time
	state     atomic.Int32

	ch   *network.Channel
	opts *options
	log  *logging.Logger

	closeOnce sync.Once
	closeErr  error
}

// Provision creates the pair described by cfg and brings both ends up.
// Steps run strictly in order: create, resolve indices, set up, resolve
// hardware addresses. On failure after creation the pair is deleted again
// unless WithoutRollback is given. A create request that timed out in
// flight counts as created, since the kernel may still have added the pair.
//
// Provision can outlast the request timeout: closing the channel on failure
// waits for an abandoned kernel call to return.
func Provision(ctx context.Context, cfg Config, opts ...Option) (*Pair, error) {
	o := newOptions(opts)

	if err := cfg.Validate(); err != nil {
		o.metrics.RecordProvision(err)
		return nil, err
	}

	p := &Pair{
		id:   uuid.NewString(),
		cfg:  cfg,
		a:    Endpoint{name: cfg.EndpointA()},
		b:    Endpoint{name: cfg.EndpointB()},
		opts: o,
	}
	p.log = o.log.WithFields(map[string]any{"pair": p.id})

	nl := o.netlinker
	if nl == nil {
		rnl, err := network.NewRealNetlinker()
		if err != nil {
			serr := &SetupError{Config: cfg, State: StateUninitialized, Err: err}
			o.metrics.RecordProvision(serr)
			return nil, serr
		}
		nl = rnl
	}

	p.ch = network.Open(nl,
		network.WithRequestTimeout(o.requestTimeout),
		network.WithLogger(logging.WithComponent("netlink").WithFields(map[string]any{"pair": p.id})),
		network.WithClock(o.clock),
	)

	lookup := o.lookup
	if lookup == nil {
		lookup = p.ch
	}

	if serr := p.setup(ctx, lookup); serr != nil {
		if serr.Created && o.rollback {
			p.rollback(ctx, serr)
		}
		p.ch.Close()
		o.metrics.RecordProvision(serr)
		p.log.Error("provisioning failed", "config", cfg.String(), "state", serr.State.String(), "error", serr.Err, "leaked", serr.Leaked())
		return nil, serr
	}

	p.createdAt = o.clock.Now()
	o.metrics.RecordProvision(nil)
	p.log.Audit("provision", cfg.String(), map[string]any{
		"index_a": p.a.index,
		"index_b": p.b.index,
		"mac_a":   p.a.HardwareAddr().String(),
		"mac_b":   p.b.HardwareAddr().String(),
	})
	return p, nil
}

func (p *Pair) setup(ctx context.Context, lookup network.AddrLookup) *SetupError {
	p.setState(StateCreating)
	if err := p.ch.CreatePair(ctx, p.a.name, p.b.name); err != nil {
		// An abandoned create may still complete in the kernel; rollback
		// resolves by name and treats a missing link as nothing to undo.
		return p.fail("", err, errors.Is(err, network.ErrAbandoned))
	}
	p.log.Debug("pair created", "a", p.a.name, "b", p.b.name)

	// Indices only become resolvable after the create has been acknowledged.
	p.setState(StateIndexResolving)
	for _, ep := range []*Endpoint{&p.a, &p.b} {
		idx, err := p.ch.ResolveIndex(ctx, ep.name)
		if err != nil {
			return p.fail(ep.name, err, true)
		}
		ep.index = idx
	}

	p.setState(StateActivating)
	for _, ep := range []*Endpoint{&p.a, &p.b} {
		if err := p.ch.SetUp(ctx, ep.index); err != nil {
			return p.fail(ep.name, err, true)
		}
	}

	p.setState(StateAddressResolving)
	for _, ep := range []*Endpoint{&p.a, &p.b} {
		mac, err := lookup.HardwareAddr(ctx, ep.name)
		if err == nil && len(mac) != len(ep.mac) {
			err = fmt.Errorf("%w: got %d bytes", ErrNoHardwareAddr, len(mac))
		}
		if err != nil {
			return p.fail(ep.name, err, true)
		}
		copy(ep.mac[:], mac)
	}

	p.setState(StateReady)
	return nil
}

func (p *Pair) fail(endpoint string, err error, created bool) *SetupError {
	return &SetupError{
		Config:   p.cfg,
		State:    p.State(),
		Endpoint: endpoint,
		Err:      err,
		Created:  created,
	}
}

// rollback deletes a pair whose provisioning failed part way. The caller's
// context may already be done, so it runs on its own bounded context.
func (p *Pair) rollback(ctx context.Context, serr *SetupError) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.opts.teardownTimeout)
	defer cancel()

	idx := p.a.index
	var err error
	if idx == 0 {
		idx, err = p.ch.ResolveIndex(ctx, p.a.name)
		if err != nil {
			idx, err = p.ch.ResolveIndex(ctx, p.b.name)
		}
	}
	if err == nil {
		err = p.ch.Delete(ctx, idx)
	}
	// Nothing left to remove.
	if errors.Is(err, network.ErrNotFound) {
		err = nil
	}

	p.opts.metrics.RecordRollback(err)
	if err != nil {
		serr.RollbackErr = err
		p.log.Warn("rollback failed", "config", p.cfg.String(), "error", err)
		return
	}
	serr.RolledBack = true
	p.log.Audit("rollback", p.cfg.String(), map[string]any{"state": serr.State.String()})
}

// Close deletes the pair. Only one delete request is ever issued per Pair;
// later calls return the first result. Deleting endpoint A removes B too.
// If the delete is abandoned at the teardown timeout, Close still waits for
// the kernel call to return before releasing the channel.
func (p *Pair) Close() error {
	p.closeOnce.Do(func() {
		p.setState(StateDeleting)

		ctx, cancel := context.WithTimeout(context.Background(), p.opts.teardownTimeout)
		defer cancel()

		err := p.ch.Delete(ctx, p.a.index)
		p.ch.Close()
		p.setState(StateDeleted)
		p.opts.metrics.RecordTeardown(err)

		if err != nil {
			p.closeErr = &TeardownError{ID: p.id, Name: p.a.name, Index: p.a.index, Err: err}
			p.log.Error("teardown failed", "config", p.cfg.String(), "error", err)
			return
		}
		p.log.Audit("delete", p.cfg.String(), map[string]any{
			"index":    p.a.index,
			"lifetime": p.opts.clock.Since(p.createdAt).String(),
		})
	})
	return p.closeErr
}

// With provisions a pair, passes it to fn and tears it down when fn
// returns or panics. fn's error is returned. A failed teardown is handed to
// the FatalHandler instead of being returned.
func With(ctx context.Context, cfg Config, fn func(*Pair) error, opts ...Option) error {
	p, err := Provision(ctx, cfg, opts...)
	if err != nil {
		return err
	}
	defer p.release()
	return fn(p)
}

func (p *Pair) release() {
	var te *TeardownError
	if err := p.Close(); errors.As(err, &te) {
		p.opts.fatal(te)
	}
}

// ID returns the pair's instance ID, used to correlate log lines.
func (p *Pair) ID() string { return p.id }

// Config returns the configuration the pair was provisioned from.
func (p *Pair) Config() Config { return p.cfg }

// A returns the first endpoint.
func (p *Pair) A() Endpoint { return p.a }

// B returns the second endpoint.
func (p *Pair) B() Endpoint { return p.b }

// Endpoints returns both endpoints in configuration order.
func (p *Pair) Endpoints() (Endpoint, Endpoint) { return p.a, p.b }

// CreatedAt returns when provisioning completed.
func (p *Pair) CreatedAt() time.Time { return p.createdAt }

// State returns the current lifecycle state.
func (p *Pair) State() State { return State(p.state.Load()) }

func (p *Pair) setState(s State) {
	p.state.Store(int32(s))
	p.log.Debug("state", "state", s.String())
}

func (p *Pair) String() string {
	return fmt.Sprintf("%s [%s] %s <-> %s", p.id, p.State(), p.a, p.b)
}
