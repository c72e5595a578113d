// In file: internal/tools/alerts_tool.go
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// AlertsLookup is the part of nws.AlertService the tool needs.
type AlertsLookup interface {
	GetAlerts(ctx context.Context, state string) string
}

// AlertsTool exposes active NWS alerts for a state as the "get_alerts" tool.
type AlertsTool struct {
	alerts AlertsLookup
}

// Statically verify that AlertsTool implements the ToolExecutor interface.
var _ ToolExecutor = (*AlertsTool)(nil)

// NewAlertsTool creates the get_alerts tool backed by alerts.
func NewAlertsTool(alerts AlertsLookup) *AlertsTool {
	return &AlertsTool{alerts: alerts}
}

// Definition describes get_alerts and its single state argument.
func (at *AlertsTool) Definition() Tool {
	return NewFunctionTool(
		"get_alerts",
		"Get weather alerts for a US state.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"state": {
					Type:        "string",
					Description: "Two-letter US state code (e.g. CA, NY)",
				},
			},
			Required: []string{"state"},
		},
	)
}

// Execute decodes {"state": "..."} and returns the rendered alerts. The state
// is passed on verbatim.
func (at *AlertsTool) Execute(ctx context.Context, arguments json.RawMessage) (string, error) {
	var args struct {
		State *string `json:"state"`
	}
	if len(arguments) == 0 {
		arguments = json.RawMessage(`{}`)
	}
	if err := json.Unmarshal(arguments, &args); err != nil {
		return "", fmt.Errorf("invalid arguments for get_alerts: %w", err)
	}
	if args.State == nil {
		return "", errors.New("invalid arguments for get_alerts: state is required")
	}
	return at.alerts.GetAlerts(ctx, *args.State), nil
}
