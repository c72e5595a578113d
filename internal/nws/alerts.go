// In file: internal/nws/alerts.go
package nws

import (
	"context"
	"fmt"

	"github.com/dileep-u-k/weather-alerts/internal/logging"
)

// MsgUnavailable is returned when the API could not be reached or answered
// with something other than a feature collection.
const MsgUnavailable = "Unable to fetch alerts or no alerts found."

// NoActiveAlertsMessage is returned for a valid response with zero features.
func NoActiveAlertsMessage(state string) string {
	return fmt.Sprintf("No active alerts for %s.", state)
}

// AlertService turns a state code into readable alert text.
type AlertService struct {
	fetcher Fetcher
	baseURL string
}

// NewAlertService creates an AlertService querying baseURL through fetcher.
// An empty baseURL means DefaultBaseURL.
func NewAlertService(fetcher Fetcher, baseURL string) *AlertService {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &AlertService{fetcher: fetcher, baseURL: baseURL}
}

// GetAlerts never fails: every failure collapses into MsgUnavailable, with
// the cause already logged by the fetcher.
func (s *AlertService) GetAlerts(ctx context.Context, state string) string {
	url := AlertsURL(s.baseURL, state)

	doc, err := s.fetcher.Fetch(ctx, url)
	if err != nil || doc == nil {
		return MsgUnavailable
	}
	if len(doc.Features) == 0 {
		return NoActiveAlertsMessage(state)
	}

	logging.FromContext(ctx).WithField("count", len(doc.Features)).Debug("rendering alerts")
	return FormatAlerts(doc.Features)
}
