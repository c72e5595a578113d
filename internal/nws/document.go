// In file: internal/nws/document.go
package nws

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Fallbacks used when an alert property is absent, null or not a string.
const (
	FallbackEvent       = "Unknown"
	FallbackAreaDesc    = "Unknown"
	FallbackSeverity    = "Unknown"
	FallbackDescription = "No description available"
	FallbackInstruction = "No specific instructions provided"
)

// ErrMissingFeatures is returned when a response body has no "features" key.
var ErrMissingFeatures = errors.New("response has no features key")

// AlertDocument is the decoded body of an /alerts/active response.
type AlertDocument struct {
	Features []AlertFeature
}

// AlertFeature is one alert record from the feature collection.
type AlertFeature struct {
	Properties AlertProperties
}

// AlertProperties holds the rendered alert fields with fallbacks already
// applied, so every field is safe to print as-is.
type AlertProperties struct {
	Event       string
	AreaDesc    string
	Severity    string
	Description string
	Instruction string
}

// DecodeAlertDocument parses a GeoJSON feature collection.
//
// A missing "features" key or a "features" value that is not an array is an
// error; "features": null decodes to zero alerts. Individual features never
// fail: anything that is not an object with a "properties" object renders
// with every fallback.
func DecodeAlertDocument(body []byte) (*AlertDocument, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, fmt.Errorf("decode alert document: %w", err)
	}
	raw, ok := top["features"]
	if !ok {
		return nil, ErrMissingFeatures
	}

	doc := &AlertDocument{}
	if isNull(raw) {
		return doc, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode features: %w", err)
	}
	doc.Features = make([]AlertFeature, 0, len(items))
	for _, item := range items {
		doc.Features = append(doc.Features, decodeFeature(item))
	}
	return doc, nil
}

func decodeFeature(raw json.RawMessage) AlertFeature {
	var fields map[string]json.RawMessage
	_ = json.Unmarshal(raw, &fields)

	var props map[string]json.RawMessage
	if p, ok := fields["properties"]; ok {
		_ = json.Unmarshal(p, &props)
	}

	return AlertFeature{
		Properties: AlertProperties{
			Event:       stringProp(props, "event", FallbackEvent),
			AreaDesc:    stringProp(props, "areaDesc", FallbackAreaDesc),
			Severity:    stringProp(props, "severity", FallbackSeverity),
			Description: stringProp(props, "description", FallbackDescription),
			Instruction: stringProp(props, "instruction", FallbackInstruction),
		},
	}
}

func stringProp(props map[string]json.RawMessage, key, fallback string) string {
	raw, ok := props[key]
	if !ok || isNull(raw) {
		return fallback
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fallback
	}
	return s
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
