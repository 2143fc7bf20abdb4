// Package requestlog holds captured requests in arrival order.
//
// A Log is not safe for concurrent use; the sink service serialises access.
package requestlog

import "github.com/blogem/reqsink/models"

// Log is an ordered store of captured requests, oldest first
type Log struct {
	entries []*models.CapturedRequest
}

// New creates a log with room for capacity entries before it grows
func New(capacity int) *Log {
	if capacity < 0 {
		capacity = 0
	}
	return &Log{entries: make([]*models.CapturedRequest, 0, capacity+1)}
}

// Append adds rec at the newest end
func (l *Log) Append(rec *models.CapturedRequest) {
	l.entries = append(l.entries, rec)
}

// Size returns the number of entries held
func (l *Log) Size() int {
	return len(l.entries)
}

// SnapshotWindow returns a copy of entries [start, end) counted from the oldest.
// Both bounds are clamped to [0, Size()] and start never exceeds end.
func (l *Log) SnapshotWindow(start, end int) []*models.CapturedRequest {
	end = clamp(end, 0, len(l.entries))
	start = clamp(start, 0, end)

	out := make([]*models.CapturedRequest, end-start)
	copy(out, l.entries[start:end])
	return out
}

// DrainOldest removes and returns up to count of the oldest entries
func (l *Log) DrainOldest(count int) []*models.CapturedRequest {
	count = clamp(count, 0, len(l.entries))
	if count == 0 {
		return nil
	}

	drained := make([]*models.CapturedRequest, count)
	copy(drained, l.entries[:count])

	remaining := copy(l.entries, l.entries[count:])
	clear(l.entries[remaining:])
	l.entries = l.entries[:remaining]

	return drained
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
