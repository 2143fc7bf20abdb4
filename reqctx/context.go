package reqctx

import (
	"context"

	"github.com/blogem/reqsink/models"
)

// Context key type
type contextKey string

const capturedRequestKey contextKey = "captured_request"

// SetCapturedRequest adds the captured record to the request context
func SetCapturedRequest(ctx context.Context, rec *models.CapturedRequest) context.Context {
	return context.WithValue(ctx, capturedRequestKey, rec)
}

// GetCapturedRequest retrieves the captured record from the request context
func GetCapturedRequest(ctx context.Context) (*models.CapturedRequest, bool) {
	rec, ok := ctx.Value(capturedRequestKey).(*models.CapturedRequest)
	return rec, ok && rec != nil
}
