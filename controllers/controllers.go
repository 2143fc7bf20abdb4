package controllers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/blogem/reqsink/models"
	"github.com/blogem/reqsink/render"
	"github.com/blogem/reqsink/services"
)

// ArchiveSummarizer reports persistence progress
type ArchiveSummarizer interface {
	Summary() models.ArchiveSummary
}

// writeResponse writes a sink response to the client
func writeResponse(w http.ResponseWriter, resp *models.Response) {
	if resp.ContentType != "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}

	// Set status code if not OK
	if resp.StatusCode != http.StatusOK {
		w.WriteHeader(resp.StatusCode)
	}

	io.WriteString(w, resp.Body)
}

// Controllers holds all controller instances
type Controllers struct {
	Admin  *AdminController
	Sink   *SinkController
	Static http.Handler
}

// NewControllers creates and initializes all controller instances.
// archive may be nil when persistence is off.
func NewControllers(services *services.Services, engine render.Engine, archive ArchiveSummarizer, logger *slog.Logger) *Controllers {
	return &Controllers{
		Admin:  NewAdminController(services, engine, archive, logger),
		Sink:   NewSinkController(services, logger),
		Static: NewStaticHandler(),
	}
}
