// In file: internal/metrics/metrics.go

// Package metrics holds the Prometheus counters exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// UnknownTool is the tool label for calls naming no registered tool. Caller
// supplied names never become label values.
const UnknownTool = "unknown"

// Recorder counts upstream fetch outcomes and tool invocations.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	fetches   *prometheus.CounterVec
	toolCalls *prometheus.CounterVec
}

// New creates a Recorder and registers its collectors with reg.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather",
			Subsystem: "nws",
			Name:      "fetch_total",
			Help:      "Outbound NWS alert requests by outcome.",
		}, []string{"outcome"}),
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather",
			Name:      "tool_calls_total",
			Help:      "Tool invocations by tool name and result.",
		}, []string{"tool", "result"}),
	}
	if reg != nil {
		reg.MustRegister(r.fetches, r.toolCalls)
	}
	return r
}

// ObserveFetch increments the fetch counter for outcome.
func (r *Recorder) ObserveFetch(outcome string) {
	if r == nil {
		return
	}
	r.fetches.WithLabelValues(outcome).Inc()
}

// ObserveToolCall increments the tool call counter.
func (r *Recorder) ObserveToolCall(tool string, err error) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.toolCalls.WithLabelValues(tool, result).Inc()
}
