package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogMiddleware(t *testing.T) {
	obs, logs := observer.New(zap.DebugLevel)
	mw := RequestLogMiddleware(zap.New(obs))

	req := httptest.NewRequest(http.MethodPatch, "/orders/abc/header", nil)
	req.Header.Set("HX-Request", "true")
	e := newTestRequestEvent(nil, req, httptest.NewRecorder())

	require.NoError(t, mw(e))

	entries := logs.FilterMessage("http: request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "PATCH", fields["method"])
	assert.Equal(t, "/orders/abc/header", fields["path"])
	assert.Equal(t, true, fields["htmx"])
}
