// In file: internal/tools/echo_resource.go
package tools

import (
	"context"
	"errors"
	"strings"
)

const echoScheme = "echo://"

// EchoResource answers reads of echo://{message} with the message itself.
type EchoResource struct{}

var _ ResourceReader = EchoResource{}

// Template returns the echo://{message} template.
func (EchoResource) Template() ResourceTemplate {
	return ResourceTemplate{
		URITemplate: echoScheme + "{message}",
		Name:        "echo",
		Description: "Echo a message as a resource.",
		MIMEType:    "text/plain",
	}
}

// Read returns "Resource echo: {message}" with the message taken verbatim
// from the URI.
func (e EchoResource) Read(_ context.Context, uri string) (ResourceContent, error) {
	message, ok := strings.CutPrefix(uri, echoScheme)
	if !ok || message == "" {
		return ResourceContent{}, errors.New("echo resource requires a message")
	}
	return ResourceContent{
		URI:      uri,
		MIMEType: e.Template().MIMEType,
		Text:     "Resource echo: " + message,
	}, nil
}
