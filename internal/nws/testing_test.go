// In file: internal/nws/testing_test.go
package nws

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/dileep-u-k/weather-alerts/internal/logging"
)

// newUpstream serves body with status on every request after delay.
func newUpstream(t *testing.T, status int, body string, delay time.Duration) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		w.Header().Set("Content-Type", AcceptGeoJSON)
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

// loggedContext returns a context whose log entries land in the returned hook.
func loggedContext() (context.Context, *test.Hook) {
	logger, hook := test.NewNullLogger()
	return logging.WithEntry(context.Background(), logger.WithField("traceID", "test")), hook
}
