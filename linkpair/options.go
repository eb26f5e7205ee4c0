package linkpair

import (
	"time"

	"grimm.is/vethpair/internal/clock"
	"grimm.is/vethpair/internal/logging"
	"grimm.is/vethpair/internal/metrics"
	"grimm.is/vethpair/internal/network"
)

// DefaultTeardownTimeout bounds the delete issued by Close and by rollback.
const DefaultTeardownTimeout = 10 * time.Second

// FatalHandler is invoked by With when teardown fails. It is expected not
// to return normally.
type FatalHandler func(err *TeardownError)

// Option configures Provision and With.
type Option func(*options)

type options struct {
	netlinker       network.Netlinker
	lookup          network.AddrLookup
	requestTimeout  time.Duration
	teardownTimeout time.Duration
	rollback        bool
	fatal           FatalHandler
	log             *logging.Logger
	clock           clock.Clock
	metrics         *metrics.Registry
}

func newOptions(opts []Option) *options {
	o := &options{
		requestTimeout:  network.DefaultRequestTimeout,
		teardownTimeout: DefaultTeardownTimeout,
		rollback:        true,
		clock:           clock.Default,
		metrics:         metrics.Get(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = logging.WithComponent("linkpair")
	}
	if o.fatal == nil {
		o.fatal = panicOnTeardown(o.log)
	}
	return o
}

// WithNetlinker provisions through nl instead of a fresh handle in the
// caller's namespace. The Pair takes ownership of nl.
func WithNetlinker(nl network.Netlinker) Option {
	return func(o *options) {
		o.netlinker = nl
	}
}

// WithAddrLookup resolves hardware addresses through l instead of the
// pair's own netlink channel.
func WithAddrLookup(l network.AddrLookup) Option {
	return func(o *options) {
		o.lookup = l
	}
}

// WithRequestTimeout bounds each kernel request. Zero leaves only the
// caller's context.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) {
		o.requestTimeout = d
	}
}

// WithTeardownTimeout bounds the delete request issued at end of life.
func WithTeardownTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.teardownTimeout = d
		}
	}
}

// WithoutRollback disables the compensating delete after a partial
// provisioning failure. A failed Provision may then leave the pair on the
// host; SetupError.Leaked reports it.
func WithoutRollback() Option {
	return func(o *options) {
		o.rollback = false
	}
}

// WithFatalHandler replaces the default teardown-failure policy of With,
// which logs and panics.
func WithFatalHandler(h FatalHandler) Option {
	return func(o *options) {
		o.fatal = h
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithClock sets the time source for creation timestamps and request timing.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

func panicOnTeardown(log *logging.Logger) FatalHandler {
	return func(err *TeardownError) {
		log.Error("teardown failed, link pair left on host", "pair", err.ID, "name", err.Name, "index", err.Index, "error", err.Err)
		panic(err)
	}
}
