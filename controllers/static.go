package controllers

import (
	"mime"
	"net/http"
	"path"

	"github.com/blogem/reqsink/assets"
)

// StaticPrefix is the URL prefix for embedded static files
const StaticPrefix = "/__static__/"

// NewStaticHandler serves the embedded static files under StaticPrefix
func NewStaticHandler() http.Handler {
	return http.StripPrefix(StaticPrefix, http.HandlerFunc(serveStatic))
}

func serveStatic(w http.ResponseWriter, r *http.Request) {
	data, ok := assets.Lookup(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	contentType := mime.TypeByExtension(path.Ext(r.URL.Path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}
