// Package parallel splits per-sample work of the reference engine across
// goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Workers int // Number of worker goroutines (<= 1 runs sequentially)
	MinRows int // Minimum rows per goroutine to avoid overhead
}

// DefaultConfig returns defaults based on CPU count.
func DefaultConfig() Config {
	return Config{
		Workers: runtime.NumCPU(),
		MinRows: 64,
	}
}

// blocks splits [0, n) into contiguous ranges of at least cfg.MinRows rows.
func blocks(n int, cfg Config) [][2]int {
	if n <= 0 {
		return nil
	}
	if cfg.Workers <= 1 || n < 2*cfg.MinRows {
		return [][2]int{{0, n}}
	}

	size := max((n+cfg.Workers-1)/cfg.Workers, cfg.MinRows)
	out := make([][2]int, 0, (n+size-1)/size)
	for lo := 0; lo < n; lo += size {
		out = append(out, [2]int{lo, min(lo+size, n)})
	}
	return out
}

// Rows calls f(lo, hi) over a partition of [0, n), concurrently when the
// work is large enough. f must only touch rows in its own range.
func Rows(n int, cfg Config, f func(lo, hi int)) {
	bs := blocks(n, cfg)
	if len(bs) == 1 {
		f(bs[0][0], bs[0][1])
		return
	}

	var wg sync.WaitGroup
	for _, b := range bs {
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			f(lo, hi)
		}(b[0], b[1])
	}
	wg.Wait()
}

// Sum returns Σ f(i) for i in [0, n).
//
// Partial sums are combined in block order, so the result depends only on
// n and cfg, not on goroutine scheduling.
func Sum(n int, cfg Config, f func(i int) float64) float64 {
	bs := blocks(n, cfg)
	partial := make([]float64, len(bs))

	var wg sync.WaitGroup
	for k, b := range bs {
		wg.Add(1)
		go func(k, lo, hi int) {
			defer wg.Done()
			var s float64
			for i := lo; i < hi; i++ {
				s += f(i)
			}
			partial[k] = s
		}(k, b[0], b[1])
	}
	wg.Wait()

	var total float64
	for _, s := range partial {
		total += s
	}
	return total
}
