package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/chunking"
	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/document"
	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/index"
	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/layout"
)

// ObjectFetcher downloads source documents from the object store.
type ObjectFetcher interface {
	Get(ctx context.Context, name string) ([]byte, error)
}

// ChunkWriter upserts chunk points into the vector index.
type ChunkWriter interface {
	Upsert(ctx context.Context, points []index.Point) error
}

// Worker processes a single document job: fetch, analyze, chunk,
// index. Chunk writes are independent; one failed chunk never rolls
// back the others.
type Worker struct {
	store   ObjectFetcher
	idx     ChunkWriter
	builder *chunking.Builder
	log     *slog.Logger

	pdfFallback bool
}

func NewWorker(store ObjectFetcher, idx ChunkWriter, builder *chunking.Builder, log *slog.Logger, pdfFallback bool) *Worker {
	return &Worker{
		store:       store,
		idx:         idx,
		builder:     builder,
		log:         log,
		pdfFallback: pdfFallback,
	}
}

// Process runs the full indexing pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "source", job.Source)

	// Phase 1: Fetch and analyze layout.
	job.SetStatus(StatusAnalyzing, "analyzing")
	analyzer, err := layout.ForFile(job.Source)
	if err != nil {
		log.Warn("unsupported format, skipping", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusSkipped, "analyzing")
		return
	}
	if pa, ok := analyzer.(*layout.PDFAnalyzer); ok {
		pa.FallbackPdftotext = w.pdfFallback
	}

	data, err := w.store.Get(ctx, job.Source)
	if err != nil {
		log.Error("fetch failed", "error", err)
		job.AddError(fmt.Sprintf("fetch: %s", err))
		job.SetStatus(StatusFailed, "analyzing")
		return
	}
	job.SetContentHash(chunking.ContentHashHex(string(data)))

	lay, err := analyzer.Analyze(bytes.NewReader(data), job.Source)
	if err != nil || layout.IsEmpty(lay) {
		// An analyzer error means the document is unprocessable, not
		// that the batch is broken.
		if err != nil {
			log.Warn("analysis failed, skipping", "error", err)
			job.AddError(fmt.Sprintf("analyze: %s", err))
		} else {
			log.Warn("no content extracted, skipping")
		}
		job.SetStatus(StatusSkipped, "analyzing")
		return
	}

	// Phase 2: Chunk.
	job.SetStatus(StatusChunking, "chunking")
	chunks := w.builder.Build(lay)
	if len(chunks) == 0 {
		log.Warn("no chunks produced, skipping")
		job.SetStatus(StatusSkipped, "chunking")
		return
	}
	job.SetTotalChunks(len(chunks))
	log.Info("chunked document", "chunks", len(chunks))

	// Phase 3: Upsert each chunk independently.
	job.SetStatus(StatusIndexing, "indexing")
	hadErrors := false
	for i, chunk := range chunks {
		select {
		case <-ctx.Done():
			job.AddError(ctx.Err().Error())
			job.SetStatus(StatusFailed, "indexing")
			return
		default:
		}

		point := w.buildPoint(job, chunk, i, len(chunks))
		if err := w.upsertWithRetry(ctx, log, point); err != nil {
			log.Error("chunk upsert failed", "chunk_id", point.ID, "chunk", i, "error", err)
			job.AddError(fmt.Sprintf("chunk %d: %s", i, err))
			hadErrors = true
			continue
		}
		job.IncrChunksIndexed()
	}

	switch {
	case hadErrors && job.Snapshot().Progress.ChunksIndexed > 0:
		job.SetStatus(StatusPartial, "done")
	case hadErrors:
		job.SetStatus(StatusFailed, "indexing")
	default:
		job.SetStatus(StatusCompleted, "done")
	}
	log.Info("indexing complete", "indexed", job.Snapshot().Progress.ChunksIndexed, "total", len(chunks))
}

// buildPoint assembles the index point for one chunk. The ID derives
// from (source, ordinal) so re-runs upsert in place.
func (w *Worker) buildPoint(job *Job, chunk document.Chunk, ordinal, total int) index.Point {
	metadata := map[string]any{
		document.MetaSource:      job.Source,
		document.MetaChunkIndex:  ordinal,
		document.MetaContentType: chunk.Type,
		document.MetaTokenCount:  chunk.Tokens,
		document.MetaTotalChunks: total,
		document.MetaContentHash: job.Snapshot().ContentHash,
	}
	for k, v := range chunk.Metadata {
		metadata[k] = v
	}
	return index.Point{
		ID:       index.ChunkID(job.Source, ordinal),
		Text:     chunk.Content,
		Metadata: metadata,
	}
}

func (w *Worker) upsertWithRetry(ctx context.Context, log *slog.Logger, point index.Point) error {
	var lastErr error
	for attempt := range MaxRetries {
		lastErr = w.idx.Upsert(ctx, []index.Point{point})
		if lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
		log.Warn("retryable upsert error", "chunk_id", point.ID, "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}
