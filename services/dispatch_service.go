package services

import (
	"log/slog"
	"net/http"

	"github.com/blogem/reqsink/models"
	"github.com/blogem/reqsink/render"
)

const (
	// RequestTemplateKey names the captured request inside a route template
	RequestTemplateKey = "request"

	acknowledgementBody = "OK"
	renderFailureBody   = "template render failed"
)

// DispatchService interface decides the response for a captured request
type DispatchService interface {
	Dispatch(rec *models.CapturedRequest) *models.Response
	Routes() models.RouteTable
}

// dispatchService implements DispatchService interface
type dispatchService struct {
	routes models.RouteTable
	engine render.Engine
	logger *slog.Logger
}

// NewDispatchService creates a dispatcher over a route table loaded at startup
func NewDispatchService(routes models.RouteTable, engine render.Engine, logger *slog.Logger) DispatchService {
	if routes == nil {
		routes = models.RouteTable{}
	}
	return &dispatchService{
		routes: routes,
		engine: engine,
		logger: logger,
	}
}

// Acknowledgement is the generic response for requests without a route
func Acknowledgement() *models.Response {
	return &models.Response{StatusCode: http.StatusOK, Body: acknowledgementBody}
}

// Dispatch matches the request path exactly, then the method, and renders the
// rule's template. Unmatched requests get the acknowledgement.
func (s *dispatchService) Dispatch(rec *models.CapturedRequest) *models.Response {
	rule, ok := s.routes.Lookup(rec.Path)
	if !ok {
		return Acknowledgement()
	}

	if !rule.MatchesMethod(rec.Method) {
		s.logger.Debug("route method mismatch",
			"path", rec.Path,
			"method", rec.Method,
			"route_method", rule.Method,
		)
		return Acknowledgement()
	}

	body, err := s.engine.Render(rule.Template, map[string]any{RequestTemplateKey: rec})
	if err != nil {
		s.logger.Error("failed to render route template",
			"error", err,
			"template", rule.Template,
			"path", rec.Path,
			"request_id", rec.ID,
		)
		return &models.Response{
			StatusCode:  http.StatusInternalServerError,
			ContentType: "text/plain; charset=utf-8",
			Body:        renderFailureBody,
		}
	}

	return &models.Response{
		StatusCode:  http.StatusOK,
		ContentType: rule.ResponseContentType(),
		Body:        body,
	}
}

// Routes returns the active route table
func (s *dispatchService) Routes() models.RouteTable {
	return s.routes
}
