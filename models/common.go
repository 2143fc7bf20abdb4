package models

// Response is what the sink writes back for a captured request
type Response struct {
	StatusCode  int
	ContentType string // empty leaves the content type to the transport
	Body        string
}

// Window describes one admin page over the request log
type Window struct {
	Start         int // requests skipped back from the newest
	End           int // exclusive index from the oldest
	WindowStart   int // inclusive index from the oldest
	NextPageStart int
	TotalCount    int
}

// Len returns the number of records covered by the window
func (w Window) Len() int {
	return w.End - w.WindowStart
}

// IsEmpty reports whether the window covers no records
func (w Window) IsEmpty() bool {
	return w.Len() == 0
}

// AdminPage represents the data passed to the admin template
type AdminPage struct {
	Title      string
	Requests   []*CapturedRequest
	TotalCount int
	Start      int
	NextPage   int
	HasMore    bool
	Archive    *ArchiveSummary // nil when persistence is off
}

// ArchiveSummary reports what has been persisted from evicted requests
type ArchiveSummary struct {
	Path        string
	Records     int64
	LostRecords int64
}
