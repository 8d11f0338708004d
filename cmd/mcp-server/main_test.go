package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/njchilds90/symdiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/tool", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestTool_Differentiate(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	mux := newMux(zap.New(core))

	rec := post(t, mux, `{"tool":"differentiate","params":{"expr":"x*sin(x)","var":"x"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp symdiff.ToolResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Error)
	assert.Equal(t, "(sin(x) + x * cos(x))", resp.String)

	entries := logs.FilterMessage("tool call").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "differentiate", entries[0].ContextMap()["tool"])
	assert.Equal(t, true, entries[0].ContextMap()["ok"])
}

func TestTool_EvaluateWithDiagnostics(t *testing.T) {
	mux := newMux(zap.NewNop())
	rec := post(t, mux, `{"tool":"evaluate","params":{"expr":"ln(x)","vars":{"x":0}}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp symdiff.ToolResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "-Inf", resp.Result)
	require.Len(t, resp.Diagnostics, 1)
	assert.Equal(t, symdiff.DiagLogDomain, resp.Diagnostics[0].Kind)
}

func TestTool_BadRequests(t *testing.T) {
	mux := newMux(zap.NewNop())

	tests := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"unknown field", `{"tool":"parse","extra":1}`},
		{"trailing data", `{"tool":"parse","params":{"expr":"x"}} {}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, mux, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestTool_ToolErrorIsOK(t *testing.T) {
	rec := post(t, newMux(zap.NewNop()), `{"tool":"integrate","params":{}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp symdiff.ToolResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "unknown tool: integrate", resp.Error)
}

func TestTool_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newMux(zap.NewNop()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tool", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSchemaAndHealth(t *testing.T) {
	mux := newMux(zap.NewNop())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/schema", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, symdiff.ToolSpec(), rec.Body.String())

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health["status"])
}
