package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/mapcode/pkg/dataset"
	"github.com/ssargent/mapcode/pkg/mapcode"
)

func fetch(t *testing.T, h http.Handler, path string, header http.Header) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	res := w.Result()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(body)
}

func TestRouterAuth(t *testing.T) {
	env := setupTestServer(t)

	res, _ := fetch(t, env.handler, "/api/v1/health", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = fetch(t, env.handler, "/api/v1/health", http.Header{"X-Api-Key": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = fetch(t, env.handler, "/api/v1/health", http.Header{"X-Api-Key": {testAPIKey}})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
}

func TestRouterMetrics(t *testing.T) {
	env := setupTestServer(t)
	fetch(t, env.handler, "/api/v1/health", http.Header{"X-Api-Key": {testAPIKey}})
	fetch(t, env.handler, "/api/v1/health", http.Header{"X-Api-Key": {"wrong"}})
	fetch(t, env.handler, "/api/v1/decode?code=NLD+JD.LZM", http.Header{"X-Api-Key": {testAPIKey}})

	res, body := fetch(t, env.handler, "/metrics", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `mapcode_http_requests_total{endpoint="/api/v1/health",method="GET",status_code="200"} 1`)
	assert.Contains(t, body, `mapcode_auth_requests_total{status="error"} 1`)
	assert.Contains(t, body, `mapcode_engine_operations_total{operation="decode",status="success"} 1`)
	assert.Contains(t, body, `mapcode_cache_lookups_total{result="miss"} 1`)
	assert.Contains(t, body, "mapcode_dataset_territories 11")
	assert.Contains(t, body, "go_goroutines")
}

func TestRouterSwagger(t *testing.T) {
	env := setupTestServer(t)

	res, body := fetch(t, env.handler, "/swagger/swagger.json", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		BasePath string                     `json:"basePath"`
		Paths    map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &doc))
	assert.Equal(t, "Mapcode REST API", doc.Info.Title)
	assert.Equal(t, "/api/v1", doc.BasePath)
	for _, p := range []string{"/health", "/encode", "/decode", "/parse", "/territories/{iso}", "/borders", "/batch", "/batch/{id}"} {
		assert.Contains(t, doc.Paths, p)
	}

	res, body = fetch(t, env.handler, "/swagger/index.html", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "swagger-ui")

	res, _ = fetch(t, env.handler, "/swagger/nothing", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestRouterRecoversPanics(t *testing.T) {
	env := setupTestServer(t)
	env.server.engine = nil

	res, _ := fetch(t, env.server.Router(), "/api/v1/health", http.Header{"X-Api-Key": {testAPIKey}})
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
}

func TestStartServer(t *testing.T) {
	tbl, err := dataset.World().Table()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- StartServer(ctx, Dependencies{Engine: mapcode.NewEngine(tbl)}, ServerConfig{Bind: "127.0.0.1", Port: 0})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestStartServerNeedsEngine(t *testing.T) {
	err := StartServer(context.Background(), Dependencies{}, ServerConfig{})
	assert.Error(t, err)
}

func TestServerFactory(t *testing.T) {
	starter := NewServerFactory().CreateServerStarter()
	err := starter.StartServer(context.Background(), Dependencies{}, ServerConfig{})
	assert.Error(t, err)
}
