// Package batch runs independent jobs on a bounded number of goroutines.
package batch

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Do calls fn(i) for every i in [0, n) on up to workers goroutines and
// waits for all calls to return. If workers is not positive, GOMAXPROCS
// is used. Callers collect results by index, so their order does not
// depend on scheduling.
func Do(n, workers int, fn func(i int)) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}
