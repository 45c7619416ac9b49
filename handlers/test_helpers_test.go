package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase/core"

	"serviceorders/services"
	"serviceorders/store"
	"serviceorders/testhelpers"
)

// newTestEnv returns an Env over a fresh test app.
func newTestEnv(t *testing.T) *Env {
	t.Helper()
	app := testhelpers.NewTestApp(t)
	return NewEnv(app, store.NewOrderStore(app, services.DeductionsCountAsCost))
}

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app core.App, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// request builds a form request with the given path values set.
func request(method, target string, form url.Values, pathValues map[string]string) *http.Request {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	return req
}

// serve runs handler against req and returns the recorder.
func serve(t *testing.T, env *Env, handler func(*core.RequestEvent) error, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(env.App, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

// htmx marks req as an HTMX request.
func htmx(req *http.Request) *http.Request {
	req.Header.Set("HX-Request", "true")
	return req
}
