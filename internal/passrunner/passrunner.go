// Package passrunner fans blob batches out to a worker pool and reduces
// per-worker partial results back into one accumulator, per spec.md §4.2.
package passrunner

import (
	"context"
	"runtime"
	"sync"

	"github.com/cualbondi/osmptparser/internal/pbfsource"
)

// Pass parameterizes one run: which primitive kind to select, the
// per-primitive predicate, and the monoid-style accumulator (NewAccumulator
// is its identity, Merge its associative combine).
type Pass[A any] struct {
	Kind           pbfsource.Kind
	NewAccumulator func() A
	Predicate      func(p pbfsource.Primitive) bool
	Emit           func(acc A, p pbfsource.Primitive) A
	Merge          func(a, b A) A
}

// Run opens src, round-robins its batches to workers goroutines (W = the
// workers argument, or runtime.NumCPU() when <= 0), and returns the
// accumulators merged in worker-spawn order.
func Run[A any](ctx context.Context, src pbfsource.Source, workers int, pass Pass[A]) (A, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	it, err := src.Open(ctx)
	if err != nil {
		var zero A
		return zero, err
	}
	defer it.Close()

	inputs := make([]chan pbfsource.Batch, workers)
	results := make([]chan A, workers)
	for i := range inputs {
		inputs[i] = make(chan pbfsource.Batch, 2)
		results[i] = make(chan A)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			acc := pass.NewAccumulator()
			for batch := range inputs[i] {
				for _, prim := range batch.Primitives {
					if prim.Kind != pass.Kind {
						continue
					}
					if pass.Predicate(prim) {
						acc = pass.Emit(acc, prim)
					}
				}
			}
			results[i] <- acc
		}(i)
	}

	var dispatchErr error
	idx := 0
	for {
		batch, ok, nextErr := it.Next()
		if nextErr != nil {
			dispatchErr = nextErr
			break
		}
		if !ok {
			break
		}
		select {
		case inputs[idx%workers] <- batch:
		case <-ctx.Done():
			dispatchErr = ctx.Err()
		}
		if dispatchErr != nil {
			break
		}
		idx++
	}
	for _, ch := range inputs {
		close(ch)
	}

	merged := pass.NewAccumulator()
	for i := 0; i < workers; i++ {
		merged = pass.Merge(merged, <-results[i])
	}
	wg.Wait()

	if dispatchErr != nil {
		return merged, dispatchErr
	}
	return merged, nil
}
