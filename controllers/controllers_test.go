package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogem/reqsink/assets"
	"github.com/blogem/reqsink/logging"
	"github.com/blogem/reqsink/models"
	"github.com/blogem/reqsink/render"
	"github.com/blogem/reqsink/reqctx"
	"github.com/blogem/reqsink/services"
)

type fixedSummary models.ArchiveSummary

func (f fixedSummary) Summary() models.ArchiveSummary { return models.ArchiveSummary(f) }

func setupControllers(t *testing.T, archive ArchiveSummarizer, rules ...models.RouteRule) (*Controllers, *services.Services) {
	t.Helper()
	engine := render.New()
	_, err := engine.LoadFS(assets.Templates(), "*.html")
	require.NoError(t, err)
	require.NoError(t, engine.Add("hook.json", `{"path":"{{ .request.Path }}"}`))

	srvs := services.NewServices(100, nil, models.NewRouteTable(rules), engine, logging.Nop())
	return NewControllers(srvs, engine, archive, logging.Nop()), srvs
}

func requestPath(i int) string {
	return fmt.Sprintf("/req/%03d", i)
}

func TestAdminIndex(t *testing.T) {
	ctrl, srvs := setupControllers(t, nil)
	for i := 0; i < 25; i++ {
		srvs.Sink.Record(&models.CapturedRequest{Method: "GET", Path: requestPath(i)})
	}

	w := httptest.NewRecorder()
	ctrl.Admin.Index(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.DefaultContentType, w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "There have been 25 tracked requests")
	assert.Contains(t, body, requestPath(24))
	assert.Contains(t, body, requestPath(15))
	assert.NotContains(t, body, requestPath(14))
	assert.Contains(t, body, `href="/admin?start=10"`)
	assert.NotContains(t, body, "archived to")
}

func TestAdminIndexLastPage(t *testing.T) {
	ctrl, srvs := setupControllers(t, nil)
	for i := 0; i < 25; i++ {
		srvs.Sink.Record(&models.CapturedRequest{Method: "GET", Path: requestPath(i)})
	}

	w := httptest.NewRecorder()
	ctrl.Admin.Index(w, httptest.NewRequest(http.MethodGet, "/admin?start=20", nil))

	body := w.Body.String()
	assert.Contains(t, body, requestPath(0))
	assert.Contains(t, body, requestPath(4))
	assert.NotContains(t, body, requestPath(5))
	assert.NotContains(t, body, "start=30")
}

func TestAdminIndexPastEnd(t *testing.T) {
	ctrl, srvs := setupControllers(t, nil)
	srvs.Sink.Record(&models.CapturedRequest{Method: "GET", Path: requestPath(0)})

	for _, target := range []string{"/admin?start=5", "/admin?start=9223372036854775807"} {
		w := httptest.NewRecorder()
		ctrl.Admin.Index(w, httptest.NewRequest(http.MethodGet, target, nil))

		assert.Equal(t, http.StatusOK, w.Code, target)
		assert.Contains(t, w.Body.String(), "No requests on this page.", target)
	}
}

func TestAdminIndexBadStart(t *testing.T) {
	ctrl, srvs := setupControllers(t, nil)
	srvs.Sink.Record(&models.CapturedRequest{Method: "GET", Path: requestPath(7)})

	w := httptest.NewRecorder()
	ctrl.Admin.Index(w, httptest.NewRequest(http.MethodGet, "/admin?start=abc", nil))

	assert.Contains(t, w.Body.String(), requestPath(7))
}

func TestAdminIndexArchiveSummary(t *testing.T) {
	ctrl, _ := setupControllers(t, fixedSummary{Path: "sink.db", Records: 12, LostRecords: 3})

	w := httptest.NewRecorder()
	ctrl.Admin.Index(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Contains(t, w.Body.String(), "12 older requests archived to sink.db, 3 lost.")
}

func TestSinkDispatch(t *testing.T) {
	ctrl, _ := setupControllers(t, nil,
		models.RouteRule{Method: "POST", Route: "/hook", Template: "hook.json", ContentType: "application/json"},
	)

	cases := []struct {
		method      string
		path        string
		wantBody    string
		contentType string
	}{
		{"POST", "/hook", `{"path":"/hook"}`, "application/json"},
		{"GET", "/hook", "OK", ""},
		{"POST", "/other", "OK", ""},
	}

	for _, tc := range cases {
		r := httptest.NewRequest(tc.method, tc.path, nil)
		r = r.WithContext(reqctx.SetCapturedRequest(r.Context(), &models.CapturedRequest{Method: tc.method, Path: tc.path}))
		w := httptest.NewRecorder()

		ctrl.Sink.Dispatch(w, r)

		assert.Equal(t, http.StatusOK, w.Code, "%s %s", tc.method, tc.path)
		assert.Equal(t, tc.wantBody, w.Body.String(), "%s %s", tc.method, tc.path)
		if tc.contentType != "" {
			assert.Equal(t, tc.contentType, w.Header().Get("Content-Type"))
		}
	}
}

func TestSinkDispatchWithoutCapture(t *testing.T) {
	ctrl, _ := setupControllers(t, nil)

	w := httptest.NewRecorder()
	ctrl.Sink.Dispatch(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestStaticHandler(t *testing.T) {
	h := NewStaticHandler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, StaticPrefix+"reqsink.css", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/css")

	css, ok := assets.Lookup("reqsink.css")
	require.True(t, ok)
	assert.Equal(t, string(css), w.Body.String())

	for _, name := range []string{"missing.js", "", "../templates/admin.html"} {
		w = httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, StaticPrefix+name, nil))
		assert.Equal(t, http.StatusNotFound, w.Code, "asset %q", name)
	}
}
