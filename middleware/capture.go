package middleware

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/netip"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"

	"github.com/blogem/reqsink/models"
	"github.com/blogem/reqsink/reqctx"
)

// FallbackClientIP is recorded when the remote address cannot be parsed
const FallbackClientIP = "127.0.0.1"

// Recorder accepts captured requests
type Recorder interface {
	Record(rec *models.CapturedRequest)
}

// Capturer builds CapturedRequest values from inbound requests
type Capturer struct {
	// MaxBodyBytes bounds the raw and the decompressed body; 0 means no limit
	MaxBodyBytes int64
	Now          func() time.Time
	NewID        func() string
}

// NewCapturer creates a capturer using the wall clock and random UUIDs
func NewCapturer(maxBodyBytes int64) *Capturer {
	return &Capturer{
		MaxBodyBytes: maxBodyBytes,
		Now:          time.Now,
		NewID:        uuid.NewString,
	}
}

// CaptureRequests captures every request, hands it to the recorder and makes
// the record available to the next handler via reqctx
func CaptureRequests(capturer *Capturer, recorder Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := capturer.Capture(r)
			recorder.Record(rec)

			next.ServeHTTP(w, r.WithContext(reqctx.SetCapturedRequest(r.Context(), rec)))
		})
	}
}

// Capture normalises r into a record. It never fails: body problems are
// reported in the Body field instead.
func (c *Capturer) Capture(r *http.Request) *models.CapturedRequest {
	headers, headerCount := collectHeaders(r)
	raw, readErr := c.readBody(r.Body)

	rec := &models.CapturedRequest{
		ID:          c.NewID(),
		ReceivedAt:  models.FormatTimestamp(c.Now()),
		Method:      strings.ToUpper(r.Method),
		Path:        r.URL.Path,
		QueryString: r.URL.RawQuery,
		HeaderCount: headerCount,
		ClientIP:    clientIP(r.RemoteAddr),
		Headers:     headers,
		BodyLength:  int64(len(raw)),
	}

	if readErr != nil {
		rec.Body = fmt.Sprintf("Could not read request body: %v", readErr)
		return rec
	}

	rec.Body = c.decodeBody(raw, r.Header.Get("Content-Encoding"))
	return rec
}

// readBody reads at most MaxBodyBytes from body
func (c *Capturer) readBody(body io.Reader) ([]byte, error) {
	if body == nil || body == http.NoBody {
		return nil, nil
	}
	return c.readLimited(body)
}

func (c *Capturer) readLimited(r io.Reader) ([]byte, error) {
	if c.MaxBodyBytes <= 0 {
		return io.ReadAll(r)
	}

	data, err := io.ReadAll(io.LimitReader(r, c.MaxBodyBytes+1))
	if err != nil {
		return data, err
	}
	if int64(len(data)) > c.MaxBodyBytes {
		return data[:c.MaxBodyBytes], fmt.Errorf("body exceeds %d bytes", c.MaxBodyBytes)
	}
	return data, nil
}

// decodeBody turns raw bytes into text, inflating gzip when announced
func (c *Capturer) decodeBody(raw []byte, contentEncoding string) string {
	if strings.EqualFold(strings.TrimSpace(contentEncoding), "gzip") {
		inflated, err := c.gunzip(raw)
		if err != nil {
			return fmt.Sprintf("Could not decompress gzip body: %v", err)
		}
		raw = inflated
	}

	if !utf8.Valid(raw) {
		return fmt.Sprintf("Could not decode body as UTF-8: invalid byte sequence at offset %d", invalidOffset(raw))
	}
	return string(raw)
}

func (c *Capturer) gunzip(raw []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	return c.readLimited(zr)
}

// collectHeaders flattens headers to their last value and counts every value
// seen. Go lifts Host, Transfer-Encoding and Trailer out of the header map,
// so they are put back here.
func collectHeaders(r *http.Request) (map[string]string, int) {
	headers := make(map[string]string, len(r.Header)+3)
	count := 0

	for name, values := range r.Header {
		if len(values) == 0 {
			continue
		}
		count += len(values)
		headers[name] = values[len(values)-1]
	}

	restore := func(name, value string) {
		if _, ok := headers[name]; !ok {
			count++
		}
		headers[name] = value
	}

	if r.Host != "" {
		restore("Host", r.Host)
	}
	if len(r.TransferEncoding) > 0 {
		restore("Transfer-Encoding", strings.Join(r.TransferEncoding, ", "))
	}
	if len(r.Trailer) > 0 {
		names := make([]string, 0, len(r.Trailer))
		for name := range r.Trailer {
			names = append(names, name)
		}
		sort.Strings(names)
		restore("Trailer", strings.Join(names, ", "))
	}

	return headers, count
}

// clientIP extracts the address part of a transport remote address
func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}

	addr, err := netip.ParseAddr(strings.Trim(host, "[]"))
	if err != nil {
		return FallbackClientIP
	}
	return addr.Unmap().WithZone("").String()
}

func invalidOffset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(b)
}
