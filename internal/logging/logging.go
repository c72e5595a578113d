// In file: internal/logging/logging.go

// Package logging configures the process-wide logrus logger and carries
// per-invocation log entries on a context.Context.
package logging

import (
	"context"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

type ctxKey struct{}

// Setup applies the level and format to the standard logrus logger.
// Unknown levels fall back to info; format is "json" or "text".
func Setup(level, format string, out io.Writer) {
	lvl, err := log.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	if out != nil {
		log.SetOutput(out)
	}
}

// WithEntry returns a copy of ctx carrying entry.
func WithEntry(ctx context.Context, entry *log.Entry) context.Context {
	return context.WithValue(ctx, ctxKey{}, entry)
}

// FromContext returns the entry stored by WithEntry, or a fresh entry on the
// standard logger.
func FromContext(ctx context.Context) *log.Entry {
	if ctx != nil {
		if entry, ok := ctx.Value(ctxKey{}).(*log.Entry); ok && entry != nil {
			return entry
		}
	}
	return log.NewEntry(log.StandardLogger())
}
