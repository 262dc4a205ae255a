// Package core holds execution settings and small numeric helpers shared by
// the spectrum, fitting and Monte Carlo packages.
package core

import "runtime"

// ProcessorConfig controls how data-parallel loops are split.
type ProcessorConfig struct {
	// Workers is the maximum number of concurrent goroutines. 1 runs serially.
	Workers int
	// ChunkSize is the number of loop indices handled by one goroutine.
	ChunkSize int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig uses one worker per available CPU.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		Workers:   runtime.GOMAXPROCS(0),
		ChunkSize: 256,
	}
}

// WithWorkers sets the worker limit. Values <= 0 keep the default.
func WithWorkers(workers int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if workers > 0 {
			cfg.Workers = workers
		}
	}
}

// WithChunkSize sets how many indices a single goroutine processes.
func WithChunkSize(size int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if size > 0 {
			cfg.ChunkSize = size
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
