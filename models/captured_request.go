package models

import (
	"time"
)

// TimestampLayout is the textual format of CapturedRequest.ReceivedAt
const TimestampLayout = time.RFC1123Z

// CapturedRequest represents a single inbound request held by the sink
type CapturedRequest struct {
	ID          string            `json:"id" yaml:"id" msgpack:"id"`
	ReceivedAt  string            `json:"received_at" yaml:"received_at" msgpack:"received_at"`
	Method      string            `json:"method" yaml:"method" msgpack:"method"`
	Path        string            `json:"path" yaml:"path" msgpack:"path"`
	QueryString string            `json:"query_string,omitempty" yaml:"query_string,omitempty" msgpack:"query_string,omitempty"`
	HeaderCount int               `json:"header_count" yaml:"header_count" msgpack:"header_count"`
	ClientIP    string            `json:"client_ip" yaml:"client_ip" msgpack:"client_ip"`
	Headers     map[string]string `json:"headers" yaml:"headers" msgpack:"headers"`
	Body        string            `json:"body" yaml:"body" msgpack:"body"`
	BodyLength  int64             `json:"body_length" yaml:"body_length" msgpack:"body_length"`
}

// FormatTimestamp renders t in TimestampLayout (UTC)
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// HasQuery reports whether the request carried a query string
func (c *CapturedRequest) HasQuery() bool {
	return c.QueryString != ""
}

// URL returns the path joined with the query string, as the client sent it
func (c *CapturedRequest) URL() string {
	if !c.HasQuery() {
		return c.Path
	}
	return c.Path + "?" + c.QueryString
}

// ArchivedRequest is one persisted row: a compressed, serialized CapturedRequest
type ArchivedRequest struct {
	ID         int64     `json:"id"`
	ArchivedAt time.Time `json:"archived_at"`
	Data       []byte    `json:"-"`
}
