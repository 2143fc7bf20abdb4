package controllers

import (
	"log/slog"
	"net/http"

	"github.com/blogem/reqsink/reqctx"
	"github.com/blogem/reqsink/services"
)

// SinkController answers captured requests
type SinkController struct {
	services *services.Services
	logger   *slog.Logger
}

// NewSinkController creates a new sink controller
func NewSinkController(services *services.Services, logger *slog.Logger) *SinkController {
	return &SinkController{
		services: services,
		logger:   logger,
	}
}

// Dispatch handles every captured request. It must run behind
// middleware.CaptureRequests.
func (c *SinkController) Dispatch(w http.ResponseWriter, r *http.Request) {
	rec, ok := reqctx.GetCapturedRequest(r.Context())
	if !ok {
		c.logger.Error("dispatch reached without a captured request", "path", r.URL.Path)
		http.Error(w, "request was not captured", http.StatusInternalServerError)
		return
	}

	writeResponse(w, c.services.Dispatch.Dispatch(rec))
}
