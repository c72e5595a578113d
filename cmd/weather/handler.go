// In file: cmd/weather/handler.go
package main

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dileep-u-k/weather-alerts/internal/mcpserver"
	"github.com/dileep-u-k/weather-alerts/internal/tools"
	"github.com/dileep-u-k/weather-alerts/internal/version"
)

// GatewayHandler serves the tool table over plain HTTP for callers that do
// not speak the plugin protocol.
type GatewayHandler struct {
	toolManager *tools.ToolManager
}

func NewGatewayHandler(toolManager *tools.ToolManager) *GatewayHandler {
	return &GatewayHandler{toolManager: toolManager}
}

// HandleListTools returns every tool definition.
func (h *GatewayHandler) HandleListTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"tools":              h.toolManager.GetDefinitions(),
		"resource_templates": h.toolManager.GetResourceTemplates(),
	})
}

// HandleCallTool runs the named tool with the request body as its JSON
// arguments.
func (h *GatewayHandler) HandleCallTool(c *gin.Context) {
	name := c.Param("name")
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	content, err := h.toolManager.Execute(c.Request.Context(), name, body)
	switch {
	case errors.Is(err, tools.ErrToolNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tool": name, "content": content})
}

// HandleReadResource reads the resource named by the uri query parameter.
func (h *GatewayHandler) HandleReadResource(c *gin.Context) {
	uri := c.Query("uri")
	if uri == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uri query parameter is required"})
		return
	}

	content, err := h.toolManager.ReadResource(c.Request.Context(), uri)
	switch {
	case errors.Is(err, tools.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, content)
}

// newEngine wires the gateway, health, version, metrics and the MCP SSE
// transport onto one gin engine. sse may be nil.
func newEngine(h *GatewayHandler, sse http.Handler, sseMessages http.Handler, gatherer prometheus.Gatherer) *gin.Engine {
	engine := gin.Default()

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, version.GetBuildInfo())
	})
	if gatherer != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	v1 := engine.Group("/api/v1")
	{
		v1.GET("/tools", h.HandleListTools)
		v1.POST("/tools/:name", h.HandleCallTool)
		v1.GET("/resources", h.HandleReadResource)
	}

	if sse != nil && sseMessages != nil {
		mcpGroup := engine.Group(mcpserver.BasePath)
		mcpGroup.GET("/sse", gin.WrapH(sse))
		mcpGroup.POST("/message", gin.WrapH(sseMessages))
	}

	return engine
}
