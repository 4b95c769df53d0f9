package engine

import "golang.org/x/sync/errgroup"

// parallelFor partitions [0, n) into at most concurrency contiguous
// chunks and runs fn over each index, one goroutine per chunk. Callers
// iterate by factor or variable index rather than raw edge index, so a
// chunk boundary never splits a factor's two edges or a variable's edge
// range across workers, and no two workers ever write to overlapping
// "next" scalars.
func parallelFor(concurrency, n int, fn func(i int) error) error {
	if n == 0 {
		return nil
	}
	if concurrency > n {
		concurrency = n
	}

	var g errgroup.Group
	chunk := (n + concurrency - 1) / concurrency
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		start, end := start, end
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := fn(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
