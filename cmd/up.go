package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"grimm.is/vethpair/internal/config"
	"grimm.is/vethpair/internal/logging"
	"grimm.is/vethpair/internal/probe"
	"grimm.is/vethpair/linkpair"
)

// DefaultProbeTimeout bounds the forwarding check run by "up -probe".
const DefaultProbeTimeout = 5 * time.Second

// UpOptions are the flags of the up command.
type UpOptions struct {
	ConfigFile  string
	EndpointA   string
	EndpointB   string
	Probe       bool
	MetricsAddr string
	NoRollback  bool
	// Hold keeps the pair until ctx ends. Without it the pair is removed
	// as soon as it has been reported.
	Hold bool
}

// RunUp provisions a link pair, reports it and removes it again when ctx
// ends.
func RunUp(ctx context.Context, opts UpOptions) error {
	return runUp(ctx, opts)
}

// runUp takes extra linkpair options so tests can substitute the kernel.
func runUp(ctx context.Context, opts UpOptions, extra ...linkpair.Option) error {
	file := config.Default()
	if opts.ConfigFile != "" {
		loaded, err := config.LoadFile(opts.ConfigFile)
		if err != nil {
			return fmt.Errorf("configuration invalid: %w", err)
		}
		file = loaded
	}
	if opts.EndpointA != "" {
		file.EndpointA = opts.EndpointA
	}
	if opts.EndpointB != "" {
		file.EndpointB = opts.EndpointB
	}
	if err := file.Validate(); err != nil {
		return err
	}

	logging.Default().SetLevel(file.Level())
	log := logging.WithComponent("cli")

	lpOpts := append(file.Options(),
		linkpair.WithLogger(logging.WithComponent("linkpair")),
		linkpair.WithFatalHandler(exitOnTeardown(log)),
	)
	if opts.NoRollback {
		lpOpts = append(lpOpts, linkpair.WithoutRollback())
	}
	lpOpts = append(lpOpts, extra...)

	if opts.MetricsAddr != "" {
		srv := startMetricsServer(opts.MetricsAddr, log)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	return linkpair.With(ctx, file.LinkPairConfig(), func(p *linkpair.Pair) error {
		a, b := p.Endpoints()
		Printer.Fprintf(stdout, "Link pair %s ready\n", p.ID())
		Printer.Fprintf(stdout, "  A: %s\n", a.String())
		Printer.Fprintf(stdout, "  B: %s\n", b.String())

		if opts.Probe {
			if err := probe.VerifyPeers(a, b); err != nil {
				return fmt.Errorf("peer check failed: %w", err)
			}
			probeCtx, cancel := context.WithTimeout(ctx, DefaultProbeTimeout)
			err := probe.Probe(probeCtx, a, b)
			cancel()
			if err != nil {
				return fmt.Errorf("forwarding check failed: %w", err)
			}
			Printer.Fprintf(stdout, "Peer and forwarding checks passed: %s -> %s\n", a.Name(), b.Name())
		}

		if !opts.Hold {
			return nil
		}

		Printer.Fprintf(stdout, "Holding link pair; interrupt to remove it\n")
		<-ctx.Done()
		log.Info("shutting down", "reason", context.Cause(ctx))
		return nil
	}, lpOpts...)
}

func startMetricsServer(addr string, log *logging.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", "error", err)
		}
	}()
	return srv
}
