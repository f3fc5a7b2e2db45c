package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Summary reports the outcome of one batch indexing run.
type Summary struct {
	Indexed         int      `json:"indexed"`
	Skipped         int      `json:"skipped"`
	Errors          []string `json:"errors"`
	TotalChunks     int      `json:"total_chunks"`
	AvgChunksPerDoc float64  `json:"avg_chunks_per_doc"`
}

// RunBatch reconciles the index against the object store and
// processes the resulting work set. When explicit is non-empty only
// those sources are processed and no diff is taken.
//
// Documents run in parallel up to MaxConcurrentDocs. A failed
// document is recorded in the summary and the run continues;
// cancellation surfaces through the group as an error, and sources
// left unprocessed are picked up by the next incremental run.
func (o *Orchestrator) RunBatch(ctx context.Context, prefix string, explicit []string) (*Summary, error) {
	work, err := o.rec.WorkSet(ctx, prefix, explicit)
	if err != nil {
		return nil, fmt.Errorf("reconcile: %w", err)
	}

	summary := &Summary{Errors: []string{}}
	if len(work) == 0 {
		o.log.Info("no new documents to index", "prefix", prefix)
		return summary, nil
	}
	o.log.Info("starting batch run", "prefix", prefix, "documents", len(work))

	w := o.newWorker()
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.MaxConcurrentDocs)
	for _, source := range work {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			job := newJob(source)
			o.jobs.Put(job)
			w.Process(gctx, job)
			snap := job.Snapshot()

			mu.Lock()
			defer mu.Unlock()
			switch snap.Status {
			case StatusCompleted, StatusPartial:
				summary.Indexed++
				summary.TotalChunks += snap.Progress.TotalChunks
				if snap.Status == StatusPartial {
					summary.Errors = append(summary.Errors, fmt.Sprintf("%s: partial (%d/%d chunks)", source, snap.Progress.ChunksIndexed, snap.Progress.TotalChunks))
				}
			case StatusSkipped:
				summary.Skipped++
			default:
				summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %s", source, firstError(snap)))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary, fmt.Errorf("batch run interrupted: %w", err)
	}

	if summary.Indexed > 0 {
		summary.AvgChunksPerDoc = float64(summary.TotalChunks) / float64(summary.Indexed)
	}
	o.log.Info("batch run complete",
		"indexed", summary.Indexed,
		"skipped", summary.Skipped,
		"errors", len(summary.Errors),
		"total_chunks", summary.TotalChunks,
	)
	return summary, nil
}

func firstError(snap JobSnapshot) string {
	if len(snap.Progress.Errors) > 0 {
		return snap.Progress.Errors[0]
	}
	return string(snap.Status)
}
