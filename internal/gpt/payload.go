package gpt

import (
	"encoding/json"
	"strings"
)

// Shape selects which of the two incompatible request bodies to send.
type Shape string

const (
	// ShapeResponses is the current responses-style request body.
	ShapeResponses Shape = "responses"
	// ShapeChat is the legacy chat-completions request body.
	ShapeChat Shape = "chat"
)

// legacyModelPrefixes select the legacy chat shape. This is a static
// name heuristic, not a capability probe: model names outside the list
// default to the current shape.
var legacyModelPrefixes = []string{"gpt-3.5", "gpt-4"}

// ShapeForModel picks the request shape for a configured model name.
func ShapeForModel(model string) Shape {
	name := strings.ToLower(strings.TrimSpace(model))
	for _, prefix := range legacyModelPrefixes {
		if strings.HasPrefix(name, prefix) {
			return ShapeChat
		}
	}
	return ShapeResponses
}

// Endpoint returns the API path for the shape.
func (s Shape) Endpoint() string {
	if s == ShapeChat {
		return "/chat/completions"
	}
	return "/responses"
}

// tokenCapField returns the output-length-cap field name for the shape.
func (s Shape) tokenCapField() string {
	if s == ShapeChat {
		return "max_tokens"
	}
	return "max_output_tokens"
}

// Payload is the outgoing request body. Fields live in a map so the
// negotiator can remove whatever a model rejects; the orchestrator is
// the sole owner of an instance for the duration of one run.
type Payload struct {
	shape  Shape
	fields map[string]any
}

// NewPayload builds the request body for one utterance.
func NewPayload(shape Shape, cfg Config, utterance string) *Payload {
	fields := map[string]any{
		"model": cfg.Model,
	}
	switch shape {
	case ShapeChat:
		fields["messages"] = []map[string]any{
			{"role": "user", "content": utterance},
		}
		fields["max_tokens"] = cfg.MaxOutputTokens
	default:
		fields["input"] = utterance
		fields["max_output_tokens"] = cfg.MaxOutputTokens
	}
	if cfg.Temperature != nil {
		fields["temperature"] = *cfg.Temperature
	}
	return &Payload{shape: shape, fields: fields}
}

// Has reports whether a field is present.
func (p *Payload) Has(field string) bool {
	_, ok := p.fields[field]
	return ok
}

// Remove deletes a field rejected by the service.
func (p *Payload) Remove(field string) {
	delete(p.fields, field)
}

// TokenCap returns the current output-length cap, or 0 when the field
// was negotiated away.
func (p *Payload) TokenCap() int {
	if v, ok := p.fields[p.shape.tokenCapField()].(int); ok {
		return v
	}
	return 0
}

// SetTokenCap replaces the output-length cap. It is a no-op when the
// field was negotiated away, so a length retry never reintroduces a
// rejected parameter.
func (p *Payload) SetTokenCap(limit int) {
	field := p.shape.tokenCapField()
	if _, ok := p.fields[field]; ok {
		p.fields[field] = limit
	}
}

// MarshalJSON encodes the current field set.
func (p *Payload) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.fields)
}
