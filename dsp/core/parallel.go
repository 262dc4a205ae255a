package core

import "golang.org/x/sync/errgroup"

// ParallelFor calls fn over consecutive [lo, hi) chunks covering [0, n).
//
// Chunks are disjoint, so fn may write to index-addressed output without
// locking. The result does not depend on the worker count as long as fn
// only touches its own indices. The first error returned by fn is reported.
func ParallelFor(n int, cfg ProcessorConfig, fn func(lo, hi int) error) error {
	if n <= 0 {
		return nil
	}
	chunk := cfg.ChunkSize
	if chunk <= 0 {
		chunk = n
	}
	if cfg.Workers <= 1 || n <= chunk {
		return fn(0, n)
	}

	var g errgroup.Group
	g.SetLimit(cfg.Workers)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			return fn(lo, hi)
		})
	}
	return g.Wait()
}
