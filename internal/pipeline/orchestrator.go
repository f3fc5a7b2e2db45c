package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/blobstore"
	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/chunking"
	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/classify"
	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/config"
	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/index"
	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/reconcile"
)

// Orchestrator manages the document indexing pipeline: a queue of
// single-document jobs fed by uploads, plus on-demand incremental
// batch runs.
type Orchestrator struct {
	jobs    *JobStore
	queue   chan *Job
	store   *blobstore.Client
	idx     *index.Client
	rec     *reconcile.Reconciler
	builder *chunking.Builder
	log     *slog.Logger
	cfg     config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline.
func NewOrchestrator(cfg config.Config, store *blobstore.Client, idx *index.Client, log *slog.Logger) *Orchestrator {
	classifier := classify.New(cfg.ConceptKeywords)
	builder := chunking.NewBuilder(classifier, chunking.Config{
		SectionTokens: cfg.SectionChunkTokens,
		TableTokens:   cfg.TableChunkTokens,
	})
	return &Orchestrator{
		jobs:    NewJobStore(cfg.JobTTL),
		queue:   make(chan *Job, cfg.MaxQueueSize),
		store:   store,
		idx:     idx,
		rec:     reconcile.New(idx, store, log),
		builder: builder,
		log:     log,
		cfg:     cfg,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := o.newWorker()
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues an indexing job for one source document.
func (o *Orchestrator) Submit(source string) (*Job, error) {
	job := newJob(source)
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return job, nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return nil, fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// BlobstoreClient returns the object store client for direct use by
// API handlers.
func (o *Orchestrator) BlobstoreClient() *blobstore.Client {
	return o.store
}

// IndexClient returns the index client for direct use by API handlers.
func (o *Orchestrator) IndexClient() *index.Client {
	return o.idx
}

func (o *Orchestrator) newWorker() *Worker {
	return NewWorker(o.store, o.idx, o.builder, o.log, o.cfg.PDFFallbackPdftotext)
}

func newJob(source string) *Job {
	now := time.Now()
	return &Job{
		ID:        uuid.NewString(),
		Source:    source,
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: now,
		UpdatedAt: now,
	}
}
