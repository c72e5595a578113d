// In file: internal/nws/client.go

// Package nws talks to the National Weather Service alerts API and renders
// active alerts as plain text.
package nws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/dileep-u-k/weather-alerts/internal/logging"
	"github.com/dileep-u-k/weather-alerts/internal/metrics"

	log "github.com/sirupsen/logrus"
)

const (
	// DefaultBaseURL is the public NWS API root.
	DefaultBaseURL = "https://api.weather.gov"
	// UserAgent identifies this client to the NWS API, which rejects anonymous requests.
	UserAgent = "weather-app/1.0"
	// AcceptGeoJSON is the media type requested from the alerts endpoint.
	AcceptGeoJSON = "application/geo+json"
	// DefaultTimeout bounds a whole request including reading the body.
	DefaultTimeout = 30 * time.Second

	maxResponseBytes = 10 << 20
)

// FailureKind classifies why a fetch produced no document.
type FailureKind string

const (
	FailureTransport FailureKind = "transport"
	FailureTimeout   FailureKind = "timeout"
	FailureUpstream  FailureKind = "upstream"
	FailureMalformed FailureKind = "malformed"
)

// FetchError is returned by Client.Fetch for every failed request.
type FetchError struct {
	Kind       FailureKind
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s failure fetching %s (status %d): %v", e.Kind, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s failure fetching %s: %v", e.Kind, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher retrieves and decodes an alert document from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*AlertDocument, error)
}

// Client is the HTTP Fetcher for the NWS API. It is safe for concurrent use;
// the underlying http.Client pools connections but holds no per-call state.
type Client struct {
	httpClient *http.Client
	metrics    *metrics.Recorder
}

// Statically verify that Client implements the Fetcher interface.
var _ Fetcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithMetrics records fetch outcomes on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(c *Client) { c.metrics = r }
}

// NewClient creates a Client with a DefaultTimeout-bound HTTP client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch issues one GET to url and decodes the body. Any failure is logged
// once on the context's entry and returned as a *FetchError.
func (c *Client) Fetch(ctx context.Context, url string) (*AlertDocument, error) {
	doc, err := c.fetch(ctx, url)
	if err != nil {
		var fe *FetchError
		kind := FailureTransport
		if errors.As(err, &fe) {
			kind = fe.Kind
		}
		c.metrics.ObserveFetch(string(kind))
		logging.FromContext(ctx).WithFields(log.Fields{
			"url":   url,
			"kind":  kind,
			"error": err,
		}).Error("error making NWS request")
		return nil, err
	}
	c.metrics.ObserveFetch("success")
	return doc, nil
}

func (c *Client) fetch(ctx context.Context, url string) (*AlertDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Kind: FailureTransport, URL: url, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", AcceptGeoJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: classify(err), URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4<<10)
		return nil, &FetchError{
			Kind:       FailureUpstream,
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &FetchError{Kind: classify(err), URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	doc, err := DecodeAlertDocument(body)
	if err != nil {
		return nil, &FetchError{Kind: FailureMalformed, URL: url, StatusCode: resp.StatusCode, Err: err}
	}
	return doc, nil
}

func classify(err error) FailureKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FailureTimeout
	}
	return FailureTransport
}

// AlertsURL builds the active-alerts-by-area URL. The area code is appended
// verbatim; the API decides whether it is valid.
func AlertsURL(baseURL, area string) string {
	return strings.TrimRight(baseURL, "/") + "/alerts/active/area/" + area
}
