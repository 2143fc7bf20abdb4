package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/blogem/reqsink/archive"
	"github.com/blogem/reqsink/config"
	"github.com/blogem/reqsink/controllers"
	"github.com/blogem/reqsink/database"
	"github.com/blogem/reqsink/logging"
	"github.com/blogem/reqsink/middleware"
	"github.com/blogem/reqsink/models"
	"github.com/blogem/reqsink/repositories"
	"github.com/blogem/reqsink/services"
)

func setupTestRouter(t *testing.T, cfg config.Config, archiver services.Archiver) (http.Handler, *services.Services) {
	t.Helper()
	logger := logging.Nop()

	engine, err := newEngine(cfg, logger)
	require.NoError(t, err)

	routes := models.RouteTable{}
	if cfg.ExtraRoutes != "" {
		routes, err = config.LoadRouteTable(cfg.ExtraRoutes, engine)
		require.NoError(t, err)
	}

	srvs := services.NewServices(cfg.RequestLimit, archiver, routes, engine, logger)
	ctrl := controllers.NewControllers(srvs, engine, nil, logger)
	return setupRouter(ctrl, srvs, middleware.NewCapturer(cfg.MaxBodyBytes), logger), srvs
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRouterCapturesEverythingButAdmin(t *testing.T) {
	r, srvs := setupTestRouter(t, config.Default(), nil)

	for _, method := range []string{"GET", "POST", "PUT", "DELETE", "PATCH", "PROPFIND"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(method, "/some/path?x=1", strings.NewReader("payload")))
		assert.Equal(t, http.StatusOK, w.Code, method)
		assert.Equal(t, "OK", w.Body.String(), method)
	}

	for _, method := range []string{"GET", "POST", "PROPFIND"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(method, "/admin", nil))
		assert.Equal(t, http.StatusOK, w.Code, method)
		assert.Contains(t, w.Body.String(), "tracked requests", method)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/__static__/reqsink.css", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 6, srvs.Sink.Count())
	_, page := srvs.Sink.Page(0)
	require.Len(t, page, 6)
	assert.Equal(t, "GET", page[0].Method)
	assert.Equal(t, "PROPFIND", page[5].Method)
	assert.Equal(t, "x=1", page[5].QueryString)
	assert.Equal(t, "payload", page[5].Body)
}

func TestRouterRootIsCaptured(t *testing.T) {
	r, srvs := setupTestRouter(t, config.Default(), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "OK", w.Body.String())
	assert.Equal(t, 1, srvs.Sink.Count())
}

func TestRouterExtraRoutes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "templates", "hooks", "created.html"), `<p>created {{ .request.Body }}</p>`)
	writeFile(t, filepath.Join(dir, "routes.yaml"), `
- method: POST
  route: /hook
  template: hooks/created.html
`)

	cfg := config.Default()
	cfg.UserTemplatesDir = filepath.Join(dir, "templates")
	cfg.ExtraRoutes = filepath.Join(dir, "routes.yaml")
	r, _ := setupTestRouter(t, cfg, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/hook", strings.NewReader("<x>")))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.DefaultContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, "<p>created &lt;x&gt;</p>", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hook", nil))
	assert.Equal(t, "OK", w.Body.String())
}

func TestNewEngineRejectsAdminOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "admin.html"), `nope`)

	cfg := config.Default()
	cfg.UserTemplatesDir = dir
	_, err := newEngine(cfg, logging.Nop())
	assert.Error(t, err)
}

func TestEvictionIsArchived(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sink.db")
	worker := archive.NewWorker(path, 4, nil, logging.Nop())
	worker.Start()

	cfg := config.Default()
	cfg.RequestLimit = 10
	r, srvs := setupTestRouter(t, cfg, worker)

	for i := 0; i < 11; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/first", nil))
	}
	assert.Equal(t, 10, srvs.Sink.Count())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, worker.Close(ctx))
	assert.Equal(t, int64(1), worker.Summary().Records)

	repo, err := repositories.OpenArchiveRepository(ctx, path)
	require.NoError(t, err)
	defer repo.Close()

	var out bytes.Buffer
	require.NoError(t, printArchive(ctx, &out, repo, 10, 0, "json"))

	var entry archivedEntry
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	require.NotNil(t, entry.Request)
	assert.Equal(t, "/first", entry.Request.Path)
	assert.Empty(t, entry.Error)
}

func TestPrintArchiveYAML(t *testing.T) {
	ctx := context.Background()
	repo, err := repositories.OpenArchiveRepository(ctx, filepath.Join(t.TempDir(), "sink.db"))
	require.NoError(t, err)
	defer repo.Close()
	require.NoError(t, repo.EnsureSchema(ctx))

	blob, err := archive.Encode(&models.CapturedRequest{ID: "a", Method: "PUT", Path: "/y"})
	require.NoError(t, err)
	require.NoError(t, repo.InsertBatch(ctx, [][]byte{blob, []byte("garbage")}))

	var out bytes.Buffer
	require.NoError(t, printArchive(ctx, &out, repo, 10, 0, "yaml"))

	dec := yaml.NewDecoder(&out)
	var first, second map[string]any
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))

	request, ok := first["request"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/y", request["path"])
	assert.NotEmpty(t, second["error"])
}

func TestOpenArchiveLeavesSchemaAlone(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "other.db")
	writeFile(t, path, "")

	repos, err := openArchive(ctx, path)
	require.NoError(t, err)

	_, err = repos.Archive.Count(ctx)
	assert.ErrorContains(t, err, "no such table")
	require.NoError(t, repos.Archive.Close())

	db, err := database.Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	var tables int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table'").Scan(&tables))
	assert.Zero(t, tables)
}

func TestOpenArchiveMissingFile(t *testing.T) {
	_, err := openArchive(context.Background(), filepath.Join(t.TempDir(), "missing.db"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
