package spectrum

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-prewhiten/dsp/core"
)

// DefaultOversampling is the grid oversampling used when none is given.
const DefaultOversampling = 6.0

// Method selects how the periodogram sums are evaluated.
type Method int

const (
	// MethodDirect evaluates the trigonometric sums exactly, O(N*M).
	MethodDirect Method = iota
	// MethodFast uses Press-Rybicki extirpolation and FFTs, O(N + M log M).
	MethodFast
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case MethodDirect:
		return "direct"
	case MethodFast:
		return "fast"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod converts a name produced by Method.String back to a Method.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "direct":
		return MethodDirect, nil
	case "fast":
		return MethodFast, nil
	default:
		return 0, fmt.Errorf("spectrum: unknown method %q", name)
	}
}

type config struct {
	ofac   float64
	method Method
	proc   core.ProcessorConfig
}

// Option configures Compute.
type Option func(*config)

// WithOversampling sets the grid oversampling factor relative to the
// natural resolution 1/span.
func WithOversampling(ofac float64) Option {
	return func(c *config) {
		c.ofac = ofac
	}
}

// WithMethod selects the evaluation method.
func WithMethod(m Method) Option {
	return func(c *config) {
		c.method = m
	}
}

// WithProcessorOptions configures the worker pool used by MethodDirect.
func WithProcessorOptions(opts ...core.ProcessorOption) Option {
	return func(c *config) {
		for _, opt := range opts {
			if opt != nil {
				opt(&c.proc)
			}
		}
	}
}

func applyOptions(opts []Option) config {
	cfg := config{
		ofac:   DefaultOversampling,
		method: MethodDirect,
		proc:   core.DefaultProcessorConfig(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
