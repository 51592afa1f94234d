package featurebuilder

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// ParallelMap implements spec.md §4.6: a shared atomic counter hands out
// monotonically increasing indices to W worker goroutines, each of which
// hydrates/transforms its claimed item and pushes the result into its own
// bounded output channel. The returned slice's order is not guaranteed;
// callers that need determinism must sort it themselves.
func ParallelMap[T any, R any](items []T, workers int, transform func(T) R) []R {
	if len(items) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var counter atomic.Uint64
	n := uint64(len(items))

	channels := make([]chan R, workers)
	for i := range channels {
		channels[i] = make(chan R, 200)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(ch chan R) {
			defer wg.Done()
			defer close(ch)
			for {
				idx := counter.Add(1) - 1
				if idx >= n {
					return
				}
				ch <- transform(items[idx])
			}
		}(channels[w])
	}

	results := make([]R, 0, len(items))
	for _, ch := range channels {
		for r := range ch {
			results = append(results, r)
		}
	}
	wg.Wait()

	return results
}
