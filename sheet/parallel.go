package sheet

import (
	"fmt"
	"sync"

	"labelpress/dataset"
	"labelpress/label"
	"labelpress/layout"
)

// renderAll produces one Rendered per record, indexed like records.
// The parallel path fans indices out to a fixed pool of goroutines and
// every worker writes into its own slot, so completion order never
// leaks into the result order.
func renderAll(records []dataset.Record, r Renderer, cfg layout.Config) ([]*label.Rendered, error) {
	if !cfg.Parallel || cfg.Workers <= 1 || len(records) < 2 {
		out := make([]*label.Rendered, len(records))
		for i, rec := range records {
			rd, err := r.Render(rec)
			if err != nil {
				return nil, fmt.Errorf("render record %d (%s): %w", i, rec.SKU, err)
			}
			out[i] = rd
		}
		return out, nil
	}

	workers := cfg.Workers
	if workers > len(records) {
		workers = len(records)
	}

	out := make([]*label.Rendered, len(records))
	errs := make([]error, len(records))
	jobs := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				rd, err := r.Render(records[i])
				if err != nil {
					errs[i] = err
					continue
				}
				out[i] = rd
			}
		}()
	}
	for i := range records {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("render record %d (%s): %w", i, records[i].SKU, err)
		}
	}
	return out, nil
}
