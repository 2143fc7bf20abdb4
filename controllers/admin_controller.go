package controllers

import (
	"log/slog"
	"net/http"

	"github.com/blogem/reqsink/assets"
	"github.com/blogem/reqsink/models"
	"github.com/blogem/reqsink/render"
	"github.com/blogem/reqsink/services"
)

// AdminController handles the request review page
type AdminController struct {
	services *services.Services
	engine   render.Engine
	archive  ArchiveSummarizer
	logger   *slog.Logger
}

// NewAdminController creates a new admin controller
func NewAdminController(services *services.Services, engine render.Engine, archive ArchiveSummarizer, logger *slog.Logger) *AdminController {
	return &AdminController{
		services: services,
		engine:   engine,
		archive:  archive,
		logger:   logger,
	}
}

// Index handles /admin?start=N
func (c *AdminController) Index(w http.ResponseWriter, r *http.Request) {
	start := services.ParseStart(r.URL.Query().Get("start"))
	window, requests := c.services.Sink.Page(start)
	if window.IsEmpty() && window.TotalCount > 0 {
		c.logger.Debug("admin page past the oldest request", "start", window.Start, "total", window.TotalCount)
	}

	page := models.AdminPage{
		Title:      "reqsink",
		Requests:   requests,
		TotalCount: window.TotalCount,
		Start:      window.Start,
		NextPage:   window.NextPageStart,
		HasMore:    window.WindowStart > 0,
	}
	if c.archive != nil {
		summary := c.archive.Summary()
		page.Archive = &summary
	}

	body, err := c.engine.Render(assets.AdminTemplate, page)
	if err != nil {
		c.logger.Error("failed to render admin page", "error", err)
		http.Error(w, "Failed to render admin page", http.StatusInternalServerError)
		return
	}

	writeResponse(w, &models.Response{
		StatusCode:  http.StatusOK,
		ContentType: models.DefaultContentType,
		Body:        body,
	})
}
