//go:build cucumber
// +build cucumber

package cucumber

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/cucumber/godog"

	"govorun/internal/gpt"
)

// modelResponse is one scripted reply from the stub remote.
type modelResponse struct {
	status int
	body   string
}

// featureState holds scenario state: a stub remote model and the last
// orchestration result.
type featureState struct {
	server *httptest.Server

	mu       sync.Mutex
	queue    []modelResponse
	requests [][]byte

	result gpt.Result
}

// InitializeScenario wires cucumber steps to the feature state.
func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, nil
	})

	ctx.Step(`^the model answers with text "([^"]*)"$`, state.modelAnswersWithText)
	ctx.Step(`^the model answers with raw body "([^"]*)"$`, state.modelAnswersWithRawBody)
	ctx.Step(`^the model responds with status (\d+)$`, state.modelRespondsWithStatus)
	ctx.Step(`^the model rejects parameter "([^"]*)"$`, state.modelRejectsParameter)
	ctx.Step(`^the model reports truncation$`, state.modelReportsTruncation)
	ctx.Step(`^I ask "([^"]*)"$`, state.iAsk)
	ctx.Step(`^the reply is "([^"]*)"$`, state.theReplyIs)
	ctx.Step(`^the outcome is "([^"]*)"$`, state.theOutcomeIs)
	ctx.Step(`^the model received (\d+) requests?$`, state.theModelReceivedRequests)
	ctx.Step(`^the last request does not contain field "([^"]*)"$`, state.lastRequestLacksField)
	ctx.Step(`^the last request sets "([^"]*)" to (\d+)$`, state.lastRequestSetsField)
}

// reset starts a fresh stub server before each scenario.
func (s *featureState) reset() {
	s.queue = nil
	s.requests = nil
	s.result = gpt.Result{}
	s.server = httptest.NewServer(http.HandlerFunc(s.serveModel))
}

// cleanup shuts the stub server down.
func (s *featureState) cleanup() {
	if s.server != nil {
		s.server.Close()
		s.server = nil
	}
}

// serveModel plays back the scripted responses in order.
func (s *featureState) serveModel(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, body)
	var next modelResponse
	if len(s.queue) > 0 {
		next = s.queue[0]
		s.queue = s.queue[1:]
	} else {
		next = modelResponse{status: http.StatusInternalServerError, body: `{"error":{"message":"no scripted response"}}`}
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(next.status)
	_, _ = io.WriteString(w, next.body)
}

// push appends one scripted response.
func (s *featureState) push(resp modelResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, resp)
}
