package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/blogem/reqsink/controllers"
	"github.com/blogem/reqsink/middleware"
	"github.com/blogem/reqsink/services"
)

// AdminPath is the review page; it is never captured
const AdminPath = "/admin"

// setupRouter configures all routes
func setupRouter(ctrl *controllers.Controllers, srvs *services.Services, capturer *middleware.Capturer, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.AccessLog(logger))

	// Admin page and its assets
	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.Compress(5))
		r.HandleFunc(AdminPath, ctrl.Admin.Index)
		r.Handle(controllers.StaticPrefix+"*", ctrl.Static)
	})

	// Everything else is captured
	sink := middleware.CaptureRequests(capturer, srvs.Sink)(http.HandlerFunc(ctrl.Sink.Dispatch))
	r.Handle("/*", sink)

	// chi routes methods it does not know here, so PROPFIND and friends
	// still reach the sink
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path == AdminPath {
			ctrl.Admin.Index(w, req)
			return
		}
		sink.ServeHTTP(w, req)
	})

	return r
}
