// In file: internal/tools/executor.go
package tools

import (
	"context"
	"encoding/json"
)

// ToolExecutor is implemented by every tool the server can run.
type ToolExecutor interface {
	// Definition returns the tool's schema as announced to hosts.
	Definition() Tool

	// Execute runs the tool with its JSON-encoded arguments and returns the
	// text result. An error means the arguments were unusable; operational
	// failures are reported inside the text.
	Execute(ctx context.Context, arguments json.RawMessage) (string, error)
}

// ResourceReader serves reads for one resource template.
type ResourceReader interface {
	Template() ResourceTemplate

	// Read returns the content for uri, which the manager has already
	// matched against the template's scheme.
	Read(ctx context.Context, uri string) (ResourceContent, error)
}
