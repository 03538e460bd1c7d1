package p3

import "golang.org/x/sync/errgroup"

// task splits data in contiguous chunks, one goroutine per chunk, and calls
// fn on every element. It returns once every element has been processed.
// fn must only mutate state owned by its element.
func task[T any](workersCount int, data []T, fn func(data T)) {
	if len(data) == 0 {
		return
	}
	workersCount = max(1, min(workersCount, len(data)))
	chunkSize := (len(data) + workersCount - 1) / workersCount

	var g errgroup.Group
	for start := 0; start < len(data); start += chunkSize {
		chunk := data[start:min(start+chunkSize, len(data))]
		g.Go(func() error {
			for _, d := range chunk {
				fn(d)
			}
			return nil
		})
	}
	_ = g.Wait()
}
