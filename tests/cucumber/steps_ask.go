//go:build cucumber
// +build cucumber

package cucumber

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"govorun/internal/gpt"
)

func (s *featureState) modelAnswersWithText(text string) error {
	payload := map[string]any{
		"status": "completed",
		"output": []any{map[string]any{
			"type": "message",
			"content": []any{map[string]any{
				"type": "output_text",
				"text": text,
			}},
		}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal scripted answer: %w", err)
	}
	s.push(modelResponse{status: 200, body: string(body)})
	return nil
}

func (s *featureState) modelAnswersWithRawBody(body string) error {
	s.push(modelResponse{status: 200, body: body})
	return nil
}

func (s *featureState) modelRespondsWithStatus(status int) error {
	s.push(modelResponse{status: status, body: `{}`})
	return nil
}

func (s *featureState) modelRejectsParameter(field string) error {
	message := fmt.Sprintf("Unsupported parameter: '%s' is not supported with this model.", field)
	body, err := json.Marshal(map[string]any{"error": map[string]any{"message": message}})
	if err != nil {
		return fmt.Errorf("marshal rejection: %w", err)
	}
	s.push(modelResponse{status: 400, body: string(body)})
	return nil
}

func (s *featureState) modelReportsTruncation() error {
	s.push(modelResponse{status: 200, body: `{"status":"incomplete","incomplete_details":{"reason":"max_output_tokens"},"output":[]}`})
	return nil
}

func (s *featureState) iAsk(utterance string) error {
	temp := 0.7
	cfg := gpt.Config{
		Model:           "gpt-5-mini",
		BaseURL:         s.server.URL,
		APIKey:          "test-key",
		Temperature:     &temp,
		MaxOutputTokens: 150,
		TokenCeiling:    600,
		HardBudget:      9 * time.Second,
	}
	orchestrator := gpt.New(cfg, nil, nil)
	s.result = orchestrator.Run(context.Background(), utterance)
	return nil
}

func (s *featureState) theReplyIs(expected string) error {
	if s.result.Reply != expected {
		return fmt.Errorf("reply %q, expected %q", s.result.Reply, expected)
	}
	return nil
}

func (s *featureState) theOutcomeIs(expected string) error {
	if string(s.result.Outcome) != expected {
		return fmt.Errorf("outcome %q, expected %q", s.result.Outcome, expected)
	}
	return nil
}

func (s *featureState) theModelReceivedRequests(expected int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) != expected {
		return fmt.Errorf("received %d requests, expected %d", len(s.requests), expected)
	}
	return nil
}

func (s *featureState) lastRequest() (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil, fmt.Errorf("no requests were made")
	}
	var fields map[string]any
	if err := json.Unmarshal(s.requests[len(s.requests)-1], &fields); err != nil {
		return nil, fmt.Errorf("decode last request: %w", err)
	}
	return fields, nil
}

func (s *featureState) lastRequestLacksField(field string) error {
	fields, err := s.lastRequest()
	if err != nil {
		return err
	}
	if _, ok := fields[field]; ok {
		return fmt.Errorf("last request still contains %q", field)
	}
	return nil
}

func (s *featureState) lastRequestSetsField(field string, expected int) error {
	fields, err := s.lastRequest()
	if err != nil {
		return err
	}
	value, ok := fields[field].(float64)
	if !ok {
		return fmt.Errorf("last request is missing numeric field %q", field)
	}
	if int(value) != expected {
		return fmt.Errorf("%s = %d, expected %d", field, int(value), expected)
	}
	return nil
}
