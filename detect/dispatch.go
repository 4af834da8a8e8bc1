package detect

import (
	"runtime"
	"sync"
)

// Batch classification fans the inputs out over a fixed worker pool. Workers
// share the read-only database and write into pre-allocated result slots
// indexed by input position, so the output order always equals the input
// order no matter which worker finishes first.

func defaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// ClassifyAll classifies every input and returns the results in input order.
// ClassifyAll(inputs)[i] is always identical to Classify(inputs[i]).
func (d *Detector) ClassifyAll(inputs []string) []Result {
	results := make([]Result, len(inputs))
	if len(inputs) == 0 {
		return results
	}

	workers := d.workers
	if workers > len(inputs) {
		workers = len(inputs)
	}
	if workers <= 1 {
		for i, ua := range inputs {
			results[i] = d.Classify(ua)
		}
		return results
	}

	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = d.Classify(inputs[i])
			}
		}()
	}

	for i := range inputs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}
