package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/dalemusser/termsvc/internal/app/system/requestid"
	"github.com/dalemusser/termsvc/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestValidateConfig(t *testing.T) {
	valid := AppConfig{DataDir: "./data", DownloadRateLimit: 60, DownloadRateWindow: time.Minute}

	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"defaults", func(c *AppConfig) {}, false},
		{"missing data dir", func(c *AppConfig) { c.DataDir = "" }, true},
		{"negative limit", func(c *AppConfig) { c.DownloadRateLimit = -1 }, true},
		{"zero window with limit", func(c *AppConfig) { c.DownloadRateWindow = 0 }, true},
		{"limiting disabled ignores window", func(c *AppConfig) {
			c.DownloadRateLimit = 0
			c.DownloadRateWindow = 0
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := ValidateConfig(&config.CoreConfig{}, cfg, testLogger())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConnectDB_MissingDataDir(t *testing.T) {
	cfg := AppConfig{DataDir: filepath.Join(t.TempDir(), "missing")}

	_, err := ConnectDB(context.Background(), &config.CoreConfig{}, cfg, testLogger())
	assert.Error(t, err)
}

// startApp runs the lifecycle hooks up to BuildHandler against a temp data dir.
func startApp(t *testing.T, cfg AppConfig) http.Handler {
	t.Helper()
	return startAppWith(t, cfg, nil)
}

// startAppWith is startApp with a callback that runs just before
// BuildHandler, after ConnectDB has installed the tracer provider.
func startAppWith(t *testing.T, cfg AppConfig, beforeBuild func()) http.Handler {
	t.Helper()
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	ctx := context.Background()
	coreCfg := &config.CoreConfig{}
	logger := testLogger()

	require.NoError(t, ValidateConfig(coreCfg, cfg, logger))

	deps, err := ConnectDB(ctx, coreCfg, cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, Shutdown(context.Background(), coreCfg, cfg, deps, logger))
	})

	require.NoError(t, EnsureSchema(ctx, coreCfg, cfg, deps, logger))
	require.NoError(t, Startup(ctx, coreCfg, cfg, deps, logger))

	if beforeBuild != nil {
		beforeBuild()
	}

	h, err := BuildHandler(coreCfg, cfg, deps, logger)
	require.NoError(t, err)
	return h
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", target, nil))
	return rec
}

func TestBuildHandler_Routes(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "data")
	testutil.WriteFile(t, dir, "test-tos.txt", "Test Terms of Service Content")
	testutil.WriteFile(t, parent, "secret.txt", "outside")

	h := startApp(t, AppConfig{DataDir: dir, DownloadRateLimit: 100, DownloadRateWindow: time.Minute})

	rec := get(h, "/tos/download?file=test-tos.txt")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Test Terms of Service Content", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(requestid.Header))

	rec = get(h, "/tos/download?file=../secret.txt")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"NOT_FOUND","message":"File '../secret.txt' not found"}}`, rec.Body.String())

	rec = get(h, "/tos/version")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"version":"2.1.0","effectiveDate":"2025-01-15","lastUpdated":"2025-01-10"}`, rec.Body.String())

	rec = get(h, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	var health map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health["status"])

	rec = get(h, "/no/such/route")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"NOT_FOUND"`)
}

func TestBuildHandler_RateLimitDisabled(t *testing.T) {
	dir := testutil.DataDir(t, map[string]string{"tos.txt": "x"})

	h := startApp(t, AppConfig{DataDir: dir})

	for i := 0; i < 20; i++ {
		rec := get(h, "/tos/download?file=tos.txt")
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}
}

func TestBuildHandler_RateLimitEnabled(t *testing.T) {
	dir := testutil.DataDir(t, map[string]string{"tos.txt": "x"})

	h := startApp(t, AppConfig{DataDir: dir, DownloadRateLimit: 1, DownloadRateWindow: time.Minute})

	assert.Equal(t, http.StatusOK, get(h, "/tos/download?file=tos.txt").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(h, "/tos/download?file=tos.txt").Code)
}

func TestBuildHandler_MethodNotAllowed(t *testing.T) {
	dir := testutil.DataDir(t, map[string]string{"tos.txt": "x"})

	h := startApp(t, AppConfig{DataDir: dir, DownloadRateLimit: 100, DownloadRateWindow: time.Minute})

	for _, target := range []string{"/tos/download?file=tos.txt", "/tos/version"} {
		t.Run(target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest("POST", target, nil))

			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body struct {
				Error struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "METHOD_NOT_ALLOWED", body.Error.Code)
			assert.Contains(t, body.Error.Message, "POST")
		})
	}
}

func TestBuildHandler_RecordsServerSpan(t *testing.T) {
	dir := testutil.DataDir(t, map[string]string{"tos.txt": "x"})
	exp := tracetest.NewInMemoryExporter()

	h := startAppWith(t, AppConfig{DataDir: dir}, func() {
		tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
		prev := otel.GetTracerProvider()
		otel.SetTracerProvider(tp)
		t.Cleanup(func() {
			otel.SetTracerProvider(prev)
			_ = tp.Shutdown(context.Background())
		})
	})

	rec := get(h, "/tos/download?file=tos.txt")
	require.Equal(t, http.StatusOK, rec.Code)

	var server []tracetest.SpanStub
	for _, span := range exp.GetSpans() {
		if span.SpanKind == trace.SpanKindServer {
			server = append(server, span)
		}
	}
	require.Len(t, server, 1)
	assert.True(t, server[0].SpanContext.IsValid())

	status := map[string]int64{}
	for _, kv := range server[0].Attributes {
		switch kv.Key {
		case "http.response.status_code", "http.status_code":
			status[string(kv.Key)] = kv.Value.AsInt64()
		}
	}
	require.NotEmpty(t, status, "server span carries the response status")
	for _, code := range status {
		assert.Equal(t, int64(http.StatusOK), code)
	}
}

func TestShutdown_StopsDownloadLimiter(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	dir := testutil.DataDir(t, map[string]string{"tos.txt": "x"})
	cfg := AppConfig{DataDir: dir, DownloadRateLimit: 5, DownloadRateWindow: time.Minute}
	coreCfg := &config.CoreConfig{}

	deps, err := ConnectDB(context.Background(), coreCfg, cfg, testLogger())
	require.NoError(t, err)
	require.NotNil(t, deps.DownloadLimiter)

	require.NoError(t, Shutdown(context.Background(), coreCfg, cfg, deps, testLogger()))

	select {
	case <-deps.DownloadLimiter.Done():
	case <-time.After(time.Second):
		t.Fatal("limiter cleanup still running after Shutdown")
	}
}

func TestConnectDB_NoLimiterWhenDisabled(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	dir := testutil.DataDir(t, map[string]string{"tos.txt": "x"})
	cfg := AppConfig{DataDir: dir}
	coreCfg := &config.CoreConfig{}

	deps, err := ConnectDB(context.Background(), coreCfg, cfg, testLogger())
	require.NoError(t, err)
	assert.Nil(t, deps.DownloadLimiter)
	assert.NoError(t, Shutdown(context.Background(), coreCfg, cfg, deps, testLogger()))
}
