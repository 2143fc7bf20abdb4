package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogem/reqsink/logging"
	"github.com/blogem/reqsink/models"
	"github.com/blogem/reqsink/render"
)

func newDispatcher(t *testing.T, rules ...models.RouteRule) DispatchService {
	t.Helper()
	engine := render.New()
	require.NoError(t, engine.Add("hook.html", `<p>{{ .request.Method }} {{ .request.Path }} {{ .request.Body }}</p>`))
	require.NoError(t, engine.Add("hook.json", `{"id":"{{ .request.ID }}"}`))
	require.NoError(t, engine.Add("broken.html", `{{ .request.Nope }}`))
	return NewDispatchService(models.NewRouteTable(rules), engine, logging.Nop())
}

func TestDispatch_NoRoute(t *testing.T) {
	d := newDispatcher(t)

	resp := d.Dispatch(&models.CapturedRequest{Method: "GET", Path: "/anything"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", resp.Body)
	assert.Empty(t, resp.ContentType)
}

func TestDispatch_MethodMismatch(t *testing.T) {
	d := newDispatcher(t, models.RouteRule{Method: "POST", Route: "/hook", Template: "hook.html"})

	resp := d.Dispatch(&models.CapturedRequest{Method: "GET", Path: "/hook"})

	assert.Equal(t, Acknowledgement(), resp)
}

func TestDispatch_RendersTemplate(t *testing.T) {
	d := newDispatcher(t, models.RouteRule{Method: "post", Route: "/hook", Template: "hook.html"})

	resp := d.Dispatch(&models.CapturedRequest{Method: "POST", Path: "/hook", Body: "a&b"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.DefaultContentType, resp.ContentType)
	assert.Equal(t, "<p>POST /hook a&amp;b</p>", resp.Body)
}

func TestDispatch_ConfiguredContentType(t *testing.T) {
	d := newDispatcher(t, models.RouteRule{Method: "PUT", Route: "/json", Template: "hook.json", ContentType: "application/json"})

	resp := d.Dispatch(&models.CapturedRequest{ID: "abc", Method: "PUT", Path: "/json"})

	assert.Equal(t, "application/json", resp.ContentType)
	assert.Equal(t, `{"id":"abc"}`, resp.Body)
}

func TestDispatch_PathMatchIsExact(t *testing.T) {
	d := newDispatcher(t, models.RouteRule{Method: "GET", Route: "/hook", Template: "hook.html"})

	for _, path := range []string{"/hook/", "/hook/sub", "/Hook", "/hoo"} {
		resp := d.Dispatch(&models.CapturedRequest{Method: "GET", Path: path})
		assert.Equal(t, "OK", resp.Body, "path %s", path)
	}
}

func TestDispatch_RenderFailure(t *testing.T) {
	d := newDispatcher(t,
		models.RouteRule{Method: "GET", Route: "/broken", Template: "broken.html"},
		models.RouteRule{Method: "GET", Route: "/gone", Template: "missing.html"},
	)

	for _, path := range []string{"/broken", "/gone"} {
		resp := d.Dispatch(&models.CapturedRequest{Method: "GET", Path: path})
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, "path %s", path)
		assert.Equal(t, "template render failed", resp.Body)
	}
}

func TestDispatch_Routes(t *testing.T) {
	d := NewDispatchService(nil, render.New(), logging.Nop())
	assert.NotNil(t, d.Routes())
	assert.Empty(t, d.Routes())
}
