package gpt

import (
	"encoding/json"
	"regexp"
	"strings"
)

// maxNegotiationRounds caps how many times a 400 response may trigger a
// corrected retry. Past the bound the last response is surfaced
// unchanged.
const maxNegotiationRounds = 2

// knownOptionalFields are request fields some models reject. They are
// probed by substring regardless of quoting because provider error
// formatting is not contractually stable.
var knownOptionalFields = []string{
	"temperature",
	"max_output_tokens",
	"max_tokens",
	"top_p",
	"presence_penalty",
	"frequency_penalty",
}

// unsupportedParamMarkers identify an unsupported-parameter rejection
// inside a 400 error message.
var unsupportedParamMarkers = []string{
	"unsupported parameter",
	"unsupported value",
	"is not supported",
	"unknown parameter",
}

var quotedTokenPattern = regexp.MustCompile("['\"`]([A-Za-z_][A-Za-z0-9_.]*)['\"`]")

// Negotiator decides which request fields a 400 response rejected.
// A field removed once is never reconsidered, so negotiation cannot
// loop on an unchanged error message.
type Negotiator struct {
	removed map[string]struct{}
}

// NewNegotiator returns a Negotiator with no removal history.
func NewNegotiator() *Negotiator {
	return &Negotiator{removed: make(map[string]struct{})}
}

// RejectedFields parses a 400 body and returns the payload fields to
// remove before retrying, or nil when the message carries no actionable
// field. Only fields still present in the payload and not removed in a
// prior round are returned; re-running on an unchanged message after
// removal yields nothing.
func (n *Negotiator) RejectedFields(body []byte, p *Payload) []string {
	message := errorMessage(body)
	if message == "" {
		return nil
	}
	lower := strings.ToLower(message)
	if !containsAnyMarker(lower) {
		return nil
	}

	candidates := make([]string, 0, 2)
	seen := make(map[string]struct{})
	add := func(field string) {
		if _, dup := seen[field]; dup {
			return
		}
		seen[field] = struct{}{}
		candidates = append(candidates, field)
	}

	for _, match := range quotedTokenPattern.FindAllStringSubmatch(message, -1) {
		add(match[1])
	}
	for _, field := range knownOptionalFields {
		if strings.Contains(lower, field) {
			add(field)
		}
	}

	fields := make([]string, 0, len(candidates))
	for _, field := range candidates {
		if _, done := n.removed[field]; done {
			continue
		}
		if !p.Has(field) {
			continue
		}
		n.removed[field] = struct{}{}
		fields = append(fields, field)
	}
	return fields
}

// errorMessage pulls error.message out of a 400 body, falling back to
// the raw body text when the body is not the structured error shape.
func errorMessage(body []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return strings.TrimSpace(string(body))
}

func containsAnyMarker(lower string) bool {
	for _, marker := range unsupportedParamMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
