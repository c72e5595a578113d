// In file: cmd/weather/handler_test.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dileep-u-k/weather-alerts/internal/metrics"
	"github.com/dileep-u-k/weather-alerts/internal/tools"
)

type cannedAlerts struct{}

func (cannedAlerts) GetAlerts(_ context.Context, state string) string {
	return "No active alerts for " + state + "."
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := prometheus.NewRegistry()
	manager := tools.NewToolManager(metrics.New(registry))
	require.NoError(t, manager.Register(tools.NewAlertsTool(cannedAlerts{})))
	require.NoError(t, manager.RegisterResource(tools.EchoResource{}))

	return newEngine(NewGatewayHandler(manager), nil, nil, registry)
}

func TestGatewayCallTool(t *testing.T) {
	engine := newTestEngine(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tools/get_alerts", strings.NewReader(`{"state":"CA"}`))
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Tool    string `json:"tool"`
		Content string `json:"content"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "get_alerts", resp.Tool)
	assert.Equal(t, "No active alerts for CA.", resp.Content)
}

func TestGatewayCallToolErrors(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("unknown tool", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/tools/get_forecast", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing state", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/tools/get_alerts", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGatewayListTools(t *testing.T) {
	engine := newTestEngine(t)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tools", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Tools             []tools.Tool             `json:"tools"`
		ResourceTemplates []tools.ResourceTemplate `json:"resource_templates"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Tools, 1)
	assert.Equal(t, "get_alerts", resp.Tools[0].Function.Name)
	require.Len(t, resp.ResourceTemplates, 1)
	assert.Equal(t, "echo://{message}", resp.ResourceTemplates[0].URITemplate)
}

func TestGatewayReadResource(t *testing.T) {
	engine := newTestEngine(t)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/resources?uri=echo://ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var content tools.ResourceContent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &content))
	assert.Equal(t, "Resource echo: ping", content.Text)

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/resources?uri=ftp://x", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/resources", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGatewayHealthAndMetrics(t *testing.T) {
	engine := newTestEngine(t)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/tools/get_alerts", strings.NewReader(`{"state":"NY"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"version"`)

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `weather_tool_calls_total{result="ok",tool="get_alerts"} 1`)
}
