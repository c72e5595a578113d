// In file: internal/nws/format.go
package nws

import (
	"fmt"
	"strings"
)

// AlertSeparator sits between rendered alerts.
const AlertSeparator = "\n---\n"

// FormatAlert renders one feature as a fixed five-line block.
func FormatAlert(feature AlertFeature) string {
	p := feature.Properties
	return fmt.Sprintf("Event: %s\nArea: %s\nSeverity: %s\nDescription: %s\nInstructions: %s",
		p.Event, p.AreaDesc, p.Severity, p.Description, p.Instruction)
}

// FormatAlerts renders features in input order joined by AlertSeparator.
func FormatAlerts(features []AlertFeature) string {
	blocks := make([]string, 0, len(features))
	for _, f := range features {
		blocks = append(blocks, FormatAlert(f))
	}
	return strings.Join(blocks, AlertSeparator)
}
