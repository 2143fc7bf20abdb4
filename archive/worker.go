// Package archive persists requests evicted from the in-memory log.
//
// A single Worker goroutine owns the store. Batches handed to PersistAsync
// belong to the worker from then on; callers must not touch them again.
package archive

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/blogem/reqsink/models"
	"github.com/blogem/reqsink/repositories"
)

var (
	ErrWorkerClosed = errors.New("archive worker closed")
	ErrQueueFull    = errors.New("archive queue full")
)

// Opener opens the store at path
type Opener func(ctx context.Context, path string) (repositories.ArchiveRepository, error)

// Stats counts what the worker has done so far
type Stats struct {
	Batches       int64 // committed
	Records       int64 // committed
	FailedBatches int64
	LostRecords   int64 // in failed or dropped batches, or unencodable
	DroppedQueue  int64 // batches refused by PersistAsync
}

// Worker is the dedicated writer for one archive path
type Worker struct {
	path   string
	open   Opener
	logger *slog.Logger

	queue chan []*models.CapturedRequest
	done  chan struct{}

	mu     sync.RWMutex
	closed bool

	// owned by run
	repo repositories.ArchiveRepository

	batches       atomic.Int64
	records       atomic.Int64
	failedBatches atomic.Int64
	lostRecords   atomic.Int64
	droppedQueue  atomic.Int64
}

// NewWorker creates a worker for path with room for queueSize pending batches.
// A nil open uses the SQLite repository.
func NewWorker(path string, queueSize int, open Opener, logger *slog.Logger) *Worker {
	if queueSize < 1 {
		queueSize = 1
	}
	if open == nil {
		open = repositories.OpenArchiveRepository
	}
	return &Worker{
		path:   path,
		open:   open,
		logger: logger.With("component", "archive", "path", path),
		queue:  make(chan []*models.CapturedRequest, queueSize),
		done:   make(chan struct{}),
	}
}

// Start launches the writer goroutine
func (w *Worker) Start() {
	go w.run()
}

// PersistAsync queues batch and returns without waiting for storage
func (w *Worker) PersistAsync(batch []*models.CapturedRequest) error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		w.lost(batch)
		return ErrWorkerClosed
	}

	select {
	case w.queue <- batch:
		return nil
	default:
		w.droppedQueue.Add(1)
		w.lost(batch)
		return ErrQueueFull
	}
}

// Close stops accepting batches and waits until queued ones are written
func (w *Worker) Close(ctx context.Context) error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.queue)
	}
	w.mu.Unlock()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats returns a snapshot of the worker counters
func (w *Worker) Stats() Stats {
	return Stats{
		Batches:       w.batches.Load(),
		Records:       w.records.Load(),
		FailedBatches: w.failedBatches.Load(),
		LostRecords:   w.lostRecords.Load(),
		DroppedQueue:  w.droppedQueue.Load(),
	}
}

// Summary reports the worker counters for the admin page
func (w *Worker) Summary() models.ArchiveSummary {
	return models.ArchiveSummary{
		Path:        w.path,
		Records:     w.records.Load(),
		LostRecords: w.lostRecords.Load(),
	}
}

func (w *Worker) run() {
	defer close(w.done)

	for batch := range w.queue {
		w.persist(context.Background(), batch)
	}

	if w.repo != nil {
		if err := w.repo.Close(); err != nil {
			w.logger.Error("failed to close archive store", "error", err)
		}
	}
}

// persist writes one batch; any failure loses the batch and is only logged
func (w *Worker) persist(ctx context.Context, batch []*models.CapturedRequest) {
	if len(batch) == 0 {
		return
	}

	repo, err := w.store(ctx)
	if err != nil {
		w.fail(batch, "failed to open archive store", err)
		return
	}

	blobs := make([][]byte, 0, len(batch))
	for _, rec := range batch {
		blob, err := Encode(rec)
		if err != nil {
			w.lostRecords.Add(1)
			w.logger.Error("failed to encode request, skipping", "error", err, "request_id", rec.ID)
			continue
		}
		blobs = append(blobs, blob)
	}

	if len(blobs) == 0 {
		return
	}

	if err := repo.InsertBatch(ctx, blobs); err != nil {
		w.failedBatches.Add(1)
		w.lostRecords.Add(int64(len(blobs)))
		w.logger.Error("failed to persist evicted requests, batch lost", "error", err, "count", len(blobs))
		return
	}

	w.batches.Add(1)
	w.records.Add(int64(len(blobs)))
	w.logger.Info("persisted evicted requests", "count", len(blobs))
}

// store opens the repository and creates the schema on first use
func (w *Worker) store(ctx context.Context) (repositories.ArchiveRepository, error) {
	if w.repo != nil {
		return w.repo, nil
	}

	repo, err := w.open(ctx, w.path)
	if err != nil {
		return nil, err
	}

	if err := repo.EnsureSchema(ctx); err != nil {
		repo.Close()
		return nil, err
	}

	w.repo = repo
	return repo, nil
}

func (w *Worker) fail(batch []*models.CapturedRequest, msg string, err error) {
	w.failedBatches.Add(1)
	w.lost(batch)
	w.logger.Error(msg+", batch lost", "error", err, "count", len(batch))
}

func (w *Worker) lost(batch []*models.CapturedRequest) {
	w.lostRecords.Add(int64(len(batch)))
}
