package config

import (
	"errors"
	"fmt"
	"time"

	"grimm.is/vethpair/internal/logging"
	"grimm.is/vethpair/linkpair"
)

// ErrInvalid reports a config file that decoded but failed validation.
var ErrInvalid = errors.New("invalid config")

// File is the decoded vethpair config file.
type File struct {
	EndpointA string `hcl:"endpoint_a"`
	EndpointB string `hcl:"endpoint_b"`

	// Durations in Go syntax ("500ms", "5s"). Empty keeps the library
	// default. A request_timeout of "0s" removes the per-request bound;
	// teardown_timeout must be positive.
	RequestTimeout  string `hcl:"request_timeout,optional"`
	TeardownTimeout string `hcl:"teardown_timeout,optional"`

	// Rollback defaults to true when omitted.
	Rollback *bool `hcl:"rollback,optional"`

	LogLevel string `hcl:"log_level,optional"`
}

// Default returns the config written by init-config.
func Default() *File {
	rollback := true
	return &File{
		EndpointA:       linkpair.DefaultEndpointA,
		EndpointB:       linkpair.DefaultEndpointB,
		RequestTimeout:  "5s",
		TeardownTimeout: "10s",
		Rollback:        &rollback,
		LogLevel:        "info",
	}
}

// LinkPairConfig returns the endpoint names as a linkpair.Config.
func (f *File) LinkPairConfig() linkpair.Config {
	return linkpair.NewConfig(f.EndpointA, f.EndpointB)
}

// Validate checks the endpoint names and parses the optional fields.
func (f *File) Validate() error {
	var errs []error

	if err := f.LinkPairConfig().Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := parseDuration("request_timeout", f.RequestTimeout); err != nil {
		errs = append(errs, err)
	}
	if d, err := parseDuration("teardown_timeout", f.TeardownTimeout); err != nil {
		errs = append(errs, err)
	} else if f.TeardownTimeout != "" && d == 0 {
		errs = append(errs, fmt.Errorf("teardown_timeout: must be positive, got %s", f.TeardownTimeout))
	}
	if _, err := logging.ParseLevel(f.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Options translates the optional settings into linkpair options.
// Validate must have succeeded first.
func (f *File) Options() []linkpair.Option {
	var opts []linkpair.Option

	if f.RequestTimeout != "" {
		d, _ := parseDuration("request_timeout", f.RequestTimeout)
		opts = append(opts, linkpair.WithRequestTimeout(d))
	}
	if d, _ := parseDuration("teardown_timeout", f.TeardownTimeout); d > 0 {
		opts = append(opts, linkpair.WithTeardownTimeout(d))
	}
	if f.Rollback != nil && !*f.Rollback {
		opts = append(opts, linkpair.WithoutRollback())
	}
	return opts
}

// Level returns the configured log level, or info when unset.
func (f *File) Level() logging.Level {
	level, _ := logging.ParseLevel(f.LogLevel)
	return level
}

func parseDuration(field, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: must not be negative, got %s", field, s)
	}
	return d, nil
}
