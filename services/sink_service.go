package services

import (
	"log/slog"
	"sync"

	"github.com/blogem/reqsink/models"
	"github.com/blogem/reqsink/requestlog"
)

// EvictionDivisor sets the eviction batch to one tenth of the capacity
const EvictionDivisor = 10

// Archiver takes ownership of evicted batches
type Archiver interface {
	PersistAsync(batch []*models.CapturedRequest) error
}

// SinkService interface defines the capture path over the bounded request log
type SinkService interface {
	Record(rec *models.CapturedRequest)
	Page(start int) (models.Window, []*models.CapturedRequest)
	Count() int
	Capacity() int
}

// sinkService implements SinkService interface
type sinkService struct {
	mu       sync.Mutex
	log      *requestlog.Log
	capacity int
	archiver Archiver // nil discards evicted batches
	logger   *slog.Logger
}

// NewSinkService creates a sink holding at most capacity requests.
// archiver may be nil, in which case evicted requests are dropped.
func NewSinkService(capacity int, archiver Archiver, logger *slog.Logger) SinkService {
	if capacity < 1 {
		capacity = 1
	}
	return &sinkService{
		log:      requestlog.New(capacity),
		capacity: capacity,
		archiver: archiver,
		logger:   logger,
	}
}

// EvictionBatchSize returns how many of the oldest requests are removed once
// the log grows past capacity
func EvictionBatchSize(capacity int) int {
	n := capacity / EvictionDivisor
	if n < 1 {
		return 1
	}
	return n
}

// Record appends rec and evicts the oldest batch when capacity is exceeded.
// The batch is handed to the archiver before the lock is released so batches
// reach it in eviction order; PersistAsync must not block or call back into
// the sink.
func (s *sinkService) Record(rec *models.CapturedRequest) {
	s.mu.Lock()
	s.log.Append(rec)
	var (
		evicted    []*models.CapturedRequest
		handoffErr error
	)
	if s.log.Size() > s.capacity {
		evicted = s.log.DrainOldest(EvictionBatchSize(s.capacity))
		if s.archiver != nil {
			handoffErr = s.archiver.PersistAsync(evicted)
		}
	}
	s.mu.Unlock()

	if len(evicted) == 0 {
		return
	}

	s.logger.Info("request log hit max size, evicting oldest requests",
		"capacity", s.capacity,
		"evicted", len(evicted),
		"persist", s.archiver != nil,
	)

	if handoffErr != nil {
		s.logger.Error("failed to hand evicted requests to archive", "error", handoffErr, "count", len(evicted))
	}
}

// Page returns the admin window starting start requests back from the newest
func (s *sinkService) Page(start int) (models.Window, []*models.CapturedRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	window := Paginate(s.log.Size(), start)
	return window, s.log.SnapshotWindow(window.WindowStart, window.End)
}

// Count returns the number of requests currently held
func (s *sinkService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Size()
}

// Capacity returns the configured maximum number of held requests
func (s *sinkService) Capacity() int {
	return s.capacity
}
