// In file: internal/mcpserver/server.go

// Package mcpserver binds the tool table to the Model Context Protocol, the
// host plugin protocol used to discover and invoke this server's operations.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	stdlog "log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dileep-u-k/weather-alerts/internal/tools"
	"github.com/dileep-u-k/weather-alerts/internal/version"
)

// BasePath is where the SSE transport is mounted on the HTTP gateway.
const BasePath = "/mcp"

// ToolTable is what the protocol layer needs from tools.ToolManager.
type ToolTable interface {
	GetDefinitions() []tools.Tool
	GetResourceTemplates() []tools.ResourceTemplate
	Execute(ctx context.Context, name string, arguments json.RawMessage) (string, error)
	ReadResource(ctx context.Context, uri string) (tools.ResourceContent, error)
}

// New builds an MCP server announcing every tool and resource template in
// table. Tool argument errors are returned as tool results with isError set,
// never as protocol errors.
func New(table ToolTable, info version.BuildInfo) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		version.ServerName,
		info.Version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
	)

	for _, def := range table.GetDefinitions() {
		schema, err := json.Marshal(def.Function.Parameters)
		if err != nil {
			return nil, fmt.Errorf("marshal schema for %s: %w", def.Function.Name, err)
		}
		tool := mcp.NewToolWithRawSchema(def.Function.Name, def.Function.Description, schema)
		s.AddTool(tool, toolHandler(table, def.Function.Name))
	}

	for _, tmpl := range table.GetResourceTemplates() {
		rt := mcp.NewResourceTemplate(
			tmpl.URITemplate,
			tmpl.Name,
			mcp.WithTemplateDescription(tmpl.Description),
			mcp.WithTemplateMIMEType(tmpl.MIMEType),
		)
		s.AddResourceTemplate(rt, resourceHandler(table))
	}

	return s, nil
}

func toolHandler(table ToolTable, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := json.Marshal(request.Params.Arguments)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments for %s: %v", name, err)), nil
		}
		text, err := table.Execute(ctx, name, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}

func resourceHandler(table ToolTable) server.ResourceTemplateHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		content, err := table.ReadResource(ctx, request.Params.URI)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      content.URI,
				MIMEType: content.MIMEType,
				Text:     content.Text,
			},
		}, nil
	}
}

// ServeStdio runs the protocol over in/out until in is closed or ctx is done.
func ServeStdio(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer, errLog *stdlog.Logger) error {
	stdio := server.NewStdioServer(s)
	if errLog != nil {
		stdio.SetErrorLogger(errLog)
	}
	return stdio.Listen(ctx, in, out)
}

// NewSSEServer returns the SSE transport for s. Its handlers are mounted
// under BasePath; baseURL is the externally reachable origin used to build
// the message endpoint handed to clients.
func NewSSEServer(s *server.MCPServer, baseURL string) *server.SSEServer {
	return server.NewSSEServer(s,
		server.WithBaseURL(baseURL),
		server.WithStaticBasePath(BasePath),
	)
}
