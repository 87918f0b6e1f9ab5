package driver

import (
	"context"
	"sync"

	"github.com/dverbin/doctran/internal"
)

// DocumentJob names one input package and where its translation goes.
type DocumentJob struct {
	Input  string
	Output string
}

// BatchResult pairs a job with its outcome.
type BatchResult struct {
	Job    DocumentJob
	Report *Report
	Err    error
}

// TranslateBatch translates independent documents concurrently, up to
// workers at a time. Units within each document stay strictly sequential;
// documents share nothing but the read-only configuration, which is why
// this is the pipeline's only parallelism boundary. Results come back in
// job order.
func (d *Driver) TranslateBatch(ctx context.Context, jobs []DocumentJob, cfg internal.TranslationConfig, workers int) []BatchResult {
	if workers <= 0 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	results := make([]BatchResult, len(jobs))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				job := jobs[i]
				report, err := d.TranslatePackage(ctx, job.Input, job.Output, cfg)
				results[i] = BatchResult{Job: job, Report: report, Err: err}
			}
		}()
	}

	for i := range jobs {
		select {
		case <-ctx.Done():
			results[i] = BatchResult{Job: jobs[i], Err: ctx.Err()}
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()

	return results
}
