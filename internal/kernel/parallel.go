package kernel

import "golang.org/x/sync/errgroup"

// forEach calls fn(i) for i in [0, n) on at most Workers goroutines.
// Callers write results by index, so the output order never depends on scheduling.
func (k *Kernel) forEach(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if k.settings.Workers <= 1 || n == 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(k.settings.Workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}
