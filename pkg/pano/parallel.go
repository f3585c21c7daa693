package pano

import (
	"context"
	"runtime"
	"sync"
)

// forEachBand splits rows [0, h) into contiguous bands, one per worker, and
// calls fn for each band concurrently. Each band is owned by exactly one
// goroutine, so fn may write its rows without locking.
func forEachBand(ctx context.Context, h, workers int, fn func(ctx context.Context, y0, y1 int)) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > h {
		workers = h
	}
	if workers <= 1 {
		fn(ctx, 0, h)
		return ctx.Err()
	}

	step := (h + workers - 1) / workers
	var wg sync.WaitGroup
	for y0 := 0; y0 < h; y0 += step {
		y1 := min(y0+step, h)
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			fn(ctx, y0, y1)
		}(y0, y1)
	}
	wg.Wait()
	return ctx.Err()
}

// forEachRow calls fn for every row in [0, h), spread over workers. It stops
// early when ctx is cancelled.
func forEachRow(ctx context.Context, h, workers int, fn func(y int)) error {
	return forEachBand(ctx, h, workers, func(ctx context.Context, y0, y1 int) {
		for y := y0; y < y1; y++ {
			if ctx.Err() != nil {
				return
			}
			fn(y)
		}
	})
}
