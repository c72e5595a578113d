// In file: cmd/weather/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"

	"github.com/dileep-u-k/weather-alerts/internal/logging"
	"github.com/dileep-u-k/weather-alerts/internal/mcpserver"
	"github.com/dileep-u-k/weather-alerts/internal/metrics"
	"github.com/dileep-u-k/weather-alerts/internal/nws"
	"github.com/dileep-u-k/weather-alerts/internal/tools"
	"github.com/dileep-u-k/weather-alerts/internal/version"
)

// main is the composition root: it loads configuration, builds the tool
// table once, and hands it to the selected transport.
func main() {
	// 1. LOAD CONFIGURATION
	cfg, err := LoadConfig("")
	if err != nil {
		log.Fatalf("❌ FATAL: Configuration Error: %v", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	buildInfo := version.GetBuildInfo()
	printBanner(cfg, buildInfo)
	log.WithFields(log.Fields{
		"version":   buildInfo.Version,
		"commit":    buildInfo.GitCommit,
		"transport": cfg.Server.Transport,
		"nws":       cfg.NWS.BaseURL,
		"timeout":   cfg.NWS.Timeout.String(),
	}).Info("✅ Configuration loaded.")

	// 2. INITIALIZE SERVICES
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.New(registry)

	toolManager, err := initializeToolManager(cfg, recorder)
	if err != nil {
		log.Fatalf("❌ FATAL: %v", err)
	}
	mcpServer, err := mcpserver.New(toolManager, buildInfo)
	if err != nil {
		log.Fatalf("❌ FATAL: Could not build MCP server: %v", err)
	}

	// 3. RUN THE SELECTED TRANSPORT
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch cfg.Server.Transport {
	case TransportHTTP:
		err = runHTTP(ctx, cfg, toolManager, mcpServer, registry)
	default:
		err = runStdio(ctx, mcpServer)
	}
	if err != nil {
		log.Fatalf("❌ FATAL: %v", err)
	}
	log.Info("👋 Server exited gracefully.")
}

// printBanner writes the startup line to stdout, unless stdout carries
// protocol frames, in which case it goes to stderr.
func printBanner(cfg *AppConfig, info version.BuildInfo) {
	var out io.Writer = os.Stdout
	if cfg.Server.Transport == TransportStdio {
		out = os.Stderr
	}
	fmt.Fprintf(out, "🚀 Starting MCP weather server %s (%s)...\n", info.Version, cfg.Server.Transport)
}

// initializeToolManager creates and registers all available tools.
func initializeToolManager(cfg *AppConfig, rec *metrics.Recorder) (*tools.ToolManager, error) {
	manager := tools.NewToolManager(rec)

	client := nws.NewClient(nws.WithTimeout(cfg.NWS.Timeout), nws.WithMetrics(rec))
	alerts := nws.NewAlertService(client, cfg.NWS.BaseURL)
	if err := manager.Register(tools.NewAlertsTool(alerts)); err != nil {
		return nil, fmt.Errorf("failed to register get_alerts tool: %w", err)
	}
	if err := manager.RegisterResource(tools.EchoResource{}); err != nil {
		return nil, fmt.Errorf("failed to register echo resource: %w", err)
	}

	log.Infof("✅ Tool Manager initialized with %d tools.", manager.ToolCount())
	return manager, nil
}

func runStdio(ctx context.Context, mcpServer *server.MCPServer) error {
	w := log.StandardLogger().WriterLevel(log.ErrorLevel)
	defer w.Close()

	log.Info("👂 Serving MCP over stdio")
	err := mcpserver.ServeStdio(ctx, mcpServer, os.Stdin, os.Stdout, stdlog.New(w, "", 0))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runHTTP(ctx context.Context, cfg *AppConfig, toolManager *tools.ToolManager, mcpServer *server.MCPServer, registry *prometheus.Registry) error {
	gin.SetMode(os.Getenv("GIN_MODE"))

	sse := mcpserver.NewSSEServer(mcpServer, cfg.Server.PublicURL)
	engine := newEngine(NewGatewayHandler(toolManager), sse.SSEHandler(), sse.MessageHandler(), registry)

	// Requests derive from baseCtx so open SSE streams end on shutdown.
	baseCtx, cancelRequests := context.WithCancel(context.Background())
	defer cancelRequests()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	return runServerWithGracefulShutdown(ctx, srv, cancelRequests)
}

// runServerWithGracefulShutdown handles the server lifecycle.
func runServerWithGracefulShutdown(ctx context.Context, srv *http.Server, cancelRequests context.CancelFunc) error {
	errCh := make(chan error, 1)
	go func() {
		log.Infof("👂 Gateway is listening on http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("🛑 Shutting down server...")
	cancelRequests()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
