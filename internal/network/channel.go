package network

import (
	"context"
	"fmt"
	"net"
	"runtime"
	"sync"
	"time"

	"grimm.is/vethpair/internal/clock"
	"grimm.is/vethpair/internal/logging"
	"grimm.is/vethpair/internal/metrics"
)

// DefaultRequestTimeout bounds a single kernel round trip.
const DefaultRequestTimeout = 5 * time.Second

// Channel serializes rtnetlink requests onto one worker goroutine that owns
// the Netlinker. All exported methods block until the worker replies, the
// context ends, or the channel is closed. The request timeout covers the
// kernel round trip; time spent queued behind another request counts only
// against the caller's context.
type Channel struct {
	nl       Netlinker
	requests chan request
	done     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once

	timeout time.Duration
	clock   clock.Clock
	log     *logging.Logger
	metrics *metrics.Registry
}

type request struct {
	op     string
	target string
	run    func(nl Netlinker) (result, error)
	reply  chan response
}

type result struct {
	index uint32
	mac   net.HardwareAddr
}

type response struct {
	res result
	err error
}

// Option configures a Channel.
type Option func(*Channel)

// WithRequestTimeout bounds every request. Zero disables the bound; the
// caller's context still applies.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Channel) {
		c.timeout = d
	}
}

// WithLogger sets the channel logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Channel) {
		if l != nil {
			c.log = l
		}
	}
}

// WithClock sets the clock used to time requests.
func WithClock(clk clock.Clock) Option {
	return func(c *Channel) {
		if clk != nil {
			c.clock = clk
		}
	}
}

// Open starts a Channel over nl. The Channel takes ownership of nl and
// closes it on Close.
func Open(nl Netlinker, opts ...Option) *Channel {
	c := &Channel{
		nl:       nl,
		requests: make(chan request),
		done:     make(chan struct{}),
		timeout:  DefaultRequestTimeout,
		clock:    clock.Default,
		log:      logging.WithComponent("netlink"),
		metrics:  metrics.Get(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.wg.Add(1)
	go c.serve()
	return c
}

// Close stops the worker and releases the netlink handle. Requests issued
// afterwards fail with ErrChannelClosed. Close is safe to call more than once.
//
// A netlink call cannot be interrupted, so Close blocks until a request
// already handed to the worker returns, including one whose caller gave up
// with ErrAbandoned.
func (c *Channel) Close() error {
	c.once.Do(func() {
		close(c.done)
		c.wg.Wait()
		c.nl.Close()
		c.log.Debug("channel closed")
	})
	return nil
}

func (c *Channel) serve() {
	defer c.wg.Done()

	// All kernel I/O for this channel happens on one OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	for {
		select {
		case <-c.done:
			return
		case req := <-c.requests:
			start := c.clock.Now()
			res, err := req.run(c.nl)
			elapsed := c.clock.Since(start)
			c.metrics.RecordNetlinkRequest(req.op, elapsed, err)
			c.log.Debug("request done", "op", req.op, "target", req.target, "duration", elapsed, "error", err)
			// reply is buffered; an abandoned request does not block the worker.
			req.reply <- response{res: res, err: err}
		}
	}
}

func (c *Channel) do(ctx context.Context, op, target string, run func(Netlinker) (result, error)) (result, error) {
	if err := ctx.Err(); err != nil {
		return result{}, &ChannelError{Op: op, Target: target, Err: err}
	}

	req := request{
		op:     op,
		target: target,
		run:    run,
		reply:  make(chan response, 1),
	}

	// Waiting for the worker is bounded by the caller only; the request
	// timeout starts once the worker holds the request.
	select {
	case <-c.done:
		return result{}, &ChannelError{Op: op, Target: target, Kind: ErrChannelClosed}
	case <-ctx.Done():
		return result{}, &ChannelError{Op: op, Target: target, Err: ctx.Err()}
	case c.requests <- req:
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	select {
	case resp := <-req.reply:
		if resp.err != nil {
			return result{}, newChannelError(op, target, resp.err)
		}
		return resp.res, nil
	case <-ctx.Done():
		// The kernel call keeps running on the worker and may still succeed.
		c.log.Warn("request abandoned", "op", op, "target", target, "error", ctx.Err())
		return result{}, &ChannelError{Op: op, Target: target, Kind: ErrAbandoned, Err: ctx.Err()}
	}
}

// CreatePair creates a veth pair named a and b in one request. Both ends
// start administratively down.
func (c *Channel) CreatePair(ctx context.Context, a, b string) error {
	_, err := c.do(ctx, OpCreate, a+"/"+b, func(nl Netlinker) (result, error) {
		return result{}, nl.LinkAdd(newVeth(a, b))
	})
	return err
}

// ResolveIndex returns the kernel index of the interface called name.
func (c *Channel) ResolveIndex(ctx context.Context, name string) (uint32, error) {
	res, err := c.do(ctx, OpResolveIndex, name, func(nl Netlinker) (result, error) {
		link, err := nl.LinkByName(name)
		if err != nil {
			return result{}, err
		}
		idx := link.Attrs().Index
		if idx <= 0 {
			return result{}, fmt.Errorf("kernel reported invalid index %d: %w", idx, ErrNotFound)
		}
		return result{index: uint32(idx)}, nil
	})
	return res.index, err
}

// SetUp marks the interface at index administratively up.
func (c *Channel) SetUp(ctx context.Context, index uint32) error {
	_, err := c.do(ctx, OpSetUp, indexTarget(index), func(nl Netlinker) (result, error) {
		return result{}, nl.LinkSetUp(linkAt(index))
	})
	return err
}

// Delete removes the interface at index. For a veth end this also removes
// its peer.
func (c *Channel) Delete(ctx context.Context, index uint32) error {
	_, err := c.do(ctx, OpDelete, indexTarget(index), func(nl Netlinker) (result, error) {
		return result{}, nl.LinkDel(linkAt(index))
	})
	return err
}

// HardwareAddr returns the 6-byte MAC of the interface called name.
// Channel satisfies AddrLookup through this method.
func (c *Channel) HardwareAddr(ctx context.Context, name string) (net.HardwareAddr, error) {
	res, err := c.do(ctx, OpHardwareAddr, name, func(nl Netlinker) (result, error) {
		link, err := nl.LinkByName(name)
		if err != nil {
			return result{}, err
		}
		mac := link.Attrs().HardwareAddr
		if len(mac) != 6 {
			return result{}, ErrNoHardwareAddr
		}
		out := make(net.HardwareAddr, len(mac))
		copy(out, mac)
		return result{mac: out}, nil
	})
	return res.mac, err
}
