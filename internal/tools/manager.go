// In file: internal/tools/manager.go
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dileep-u-k/weather-alerts/internal/logging"
	"github.com/dileep-u-k/weather-alerts/internal/metrics"

	log "github.com/sirupsen/logrus"
)

var (
	// ErrToolNotFound is returned by Execute for an unregistered name.
	ErrToolNotFound = errors.New("tool not found")
	// ErrResourceNotFound is returned by ReadResource when no template matches.
	ErrResourceNotFound = errors.New("resource not found")
)

// ToolManager is the explicit table of tools and resource templates. It is
// filled once at startup and only read afterwards, so it needs no locking.
type ToolManager struct {
	tools     map[string]ToolExecutor
	resources []ResourceReader
	metrics   *metrics.Recorder
}

// NewToolManager creates an empty table. rec may be nil.
func NewToolManager(rec *metrics.Recorder) *ToolManager {
	return &ToolManager{
		tools:   make(map[string]ToolExecutor),
		metrics: rec,
	}
}

// Register adds a new tool to the manager's registry.
func (tm *ToolManager) Register(tool ToolExecutor) error {
	if tool == nil {
		return errors.New("tool is required")
	}
	name := tool.Definition().Function.Name
	if name == "" {
		return errors.New("tool name is required")
	}
	if _, exists := tm.tools[name]; exists {
		return fmt.Errorf("tool %q already registered", name)
	}
	tm.tools[name] = tool
	return nil
}

// RegisterResource adds a resource template. Templates are matched by the
// literal prefix before their first variable, in registration order.
func (tm *ToolManager) RegisterResource(r ResourceReader) error {
	if r == nil {
		return errors.New("resource is required")
	}
	prefix := templatePrefix(r.Template().URITemplate)
	if prefix == "" {
		return errors.New("resource uri template is required")
	}
	for _, existing := range tm.resources {
		if templatePrefix(existing.Template().URITemplate) == prefix {
			return fmt.Errorf("resource template %q already registered", r.Template().URITemplate)
		}
	}
	tm.resources = append(tm.resources, r)
	return nil
}

// GetDefinitions returns all registered tool definitions sorted by name.
func (tm *ToolManager) GetDefinitions() []Tool {
	defs := make([]Tool, 0, len(tm.tools))
	for _, tool := range tm.tools {
		defs = append(defs, tool.Definition())
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Function.Name < defs[j].Function.Name })
	return defs
}

// GetResourceTemplates returns all registered templates in registration order.
func (tm *ToolManager) GetResourceTemplates() []ResourceTemplate {
	out := make([]ResourceTemplate, 0, len(tm.resources))
	for _, r := range tm.resources {
		out = append(out, r.Template())
	}
	return out
}

// Execute runs a tool by name with the given arguments. Each call gets its
// own traceID, carried to the tool on ctx.
func (tm *ToolManager) Execute(ctx context.Context, name string, arguments json.RawMessage) (string, error) {
	tool, ok := tm.tools[name]
	if !ok {
		tm.metrics.ObserveToolCall(metrics.UnknownTool, ErrToolNotFound)
		return "", fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	entry := logging.FromContext(ctx).WithFields(log.Fields{
		"traceID": uuid.NewString(),
		"tool":    name,
	})
	ctx = logging.WithEntry(ctx, entry)

	start := time.Now()
	result, err := tool.Execute(ctx, arguments)
	tm.metrics.ObserveToolCall(name, err)
	if err != nil {
		entry.WithError(err).Warn("tool call rejected")
		return "", err
	}
	entry.WithField("elapsed", time.Since(start).String()).Debug("tool call finished")
	return result, nil
}

// ReadResource serves uri from the first template whose prefix matches.
func (tm *ToolManager) ReadResource(ctx context.Context, uri string) (ResourceContent, error) {
	for _, r := range tm.resources {
		if strings.HasPrefix(uri, templatePrefix(r.Template().URITemplate)) {
			entry := logging.FromContext(ctx).WithFields(log.Fields{
				"traceID":  uuid.NewString(),
				"resource": r.Template().Name,
			})
			return r.Read(logging.WithEntry(ctx, entry), uri)
		}
	}
	return ResourceContent{}, fmt.Errorf("%w: %s", ErrResourceNotFound, uri)
}

// ToolCount returns the number of registered tools.
func (tm *ToolManager) ToolCount() int {
	return len(tm.tools)
}

func templatePrefix(uriTemplate string) string {
	if i := strings.Index(uriTemplate, "{"); i >= 0 {
		return uriTemplate[:i]
	}
	return uriTemplate
}
