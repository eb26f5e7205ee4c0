package linkpair

import "fmt"

// Default endpoint names.
const (
	DefaultEndpointA = "veth0"
	DefaultEndpointB = "veth1"
)

// Config names the two ends of a link pair. It is an immutable value;
// construct it with NewConfig or DefaultConfig.
type Config struct {
	a string
	b string
}

// NewConfig returns a Config for endpoints a and b.
func NewConfig(a, b string) Config {
	return Config{a: a, b: b}
}

// DefaultConfig returns the veth0/veth1 configuration.
func DefaultConfig() Config {
	return NewConfig(DefaultEndpointA, DefaultEndpointB)
}

// EndpointA returns the name of the first endpoint.
func (c Config) EndpointA() string { return c.a }

// EndpointB returns the name of the second endpoint.
func (c Config) EndpointB() string { return c.b }

// Validate checks the constraints that can be decided locally: both names
// are non-empty and distinct. Length and character rules are left to the
// kernel, which rejects bad names at creation time.
func (c Config) Validate() error {
	if c.a == "" || c.b == "" {
		return fmt.Errorf("%w: endpoint names cannot be empty", ErrInvalidConfig)
	}
	if c.a == c.b {
		return fmt.Errorf("%w: endpoint names must differ (both %q)", ErrInvalidConfig, c.a)
	}
	return nil
}

func (c Config) String() string {
	return c.a + "/" + c.b
}
