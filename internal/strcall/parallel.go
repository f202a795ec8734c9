package strcall

import (
	"runtime"
	"sync"
)

// workItem is a single VCF file queued for scanning.
type workItem struct {
	seq  int
	path string
}

// workResult pairs a file's scan outcome with its queue position.
type workResult struct {
	seq int
	res FileResult
}

// scanParallel scans queued files using a pool of workers. Results arrive
// on the returned channel in completion order; use orderedCollect to
// consume them in queue order. If workers is 0, runtime.NumCPU() is used.
func (s *Scanner) scanParallel(items <-chan workItem, workers int) <-chan workResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan workResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				results <- workResult{
					seq: item.seq,
					res: s.ScanFile(item.path),
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// orderedCollect calls fn for each result in queue order, buffering
// out-of-order results until the next expected sequence number arrives.
// Blocks until the results channel is closed.
func orderedCollect(results <-chan workResult, fn func(FileResult)) {
	pending := make(map[int]workResult)
	nextSeq := 0

	for r := range results {
		pending[r.seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			fn(rr.res)
		}
	}
}
