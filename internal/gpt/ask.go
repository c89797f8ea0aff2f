package gpt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Retry allowances for one run. Together with the Deadline they bound
// total attempts: a run can neither loop forever nor blow past the
// caller's budget.
const (
	maxTransientRetries = 1
	maxLengthRetries    = 2
)

// transientComfort is the minimum remaining budget for a backoff-led
// retry to be worth attempting.
const transientComfort = 1 * time.Second

// Config is the immutable per-process configuration for the
// orchestrator, constructed once at startup and passed in. Business
// logic performs no ambient lookups.
type Config struct {
	Model           string
	BaseURL         string
	APIKey          string
	Temperature     *float64
	MaxOutputTokens int
	TokenCeiling    int
	HardBudget      time.Duration
}

// Orchestrator drives the bounded attempt sequence for one utterance:
// dispatch, negotiate rejected parameters, widen the output cap on
// truncation, retry transient failures, and always return a short
// reply before the hard budget expires.
type Orchestrator struct {
	cfg    Config
	client *Client
	logger *slog.Logger

	now   func() time.Time
	sleep func(time.Duration)
}

// New builds an Orchestrator over a shared HTTP client.
func New(cfg Config, doer HTTPDoer, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Orchestrator{
		cfg:    cfg,
		client: NewClient(cfg.BaseURL, cfg.APIKey, doer),
		logger: logger,
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

// Answer runs one orchestration and returns the reply text. It never
// returns an error: every failure maps to a fixed user-facing string.
func (o *Orchestrator) Answer(ctx context.Context, utterance string) string {
	return o.Run(ctx, utterance).Reply
}

// Run is Answer with the run's bookkeeping attached for logging and
// the transcript store.
func (o *Orchestrator) Run(ctx context.Context, utterance string) Result {
	deadline := newDeadlineAt(o.cfg.HardBudget, o.now)
	shape := ShapeForModel(o.cfg.Model)
	payload := NewPayload(shape, o.cfg, utterance)
	negotiator := NewNegotiator()

	result := Result{Shape: shape}
	start := o.now()

	done := func(reply string, outcome Outcome) Result {
		result.Reply = reply
		result.Outcome = outcome
		result.Duration = o.now().Sub(start)
		return result
	}

	var transientRetries, lengthRetries, negotiationRounds int

	for {
		if deadline.Expired() {
			o.logger.Warn("budget exhausted", "attempts", result.Attempts)
			return done(ReplyOverloaded, OutcomeOverloaded)
		}

		body, err := json.Marshal(payload)
		if err != nil {
			// A payload is built from config and plain strings; this
			// cannot happen with well-formed config.
			o.logger.Error("marshal payload", "error", err)
			return done(ReplyOverloaded, OutcomeOverloaded)
		}
		result.Request = body

		timeout := deadline.AttemptTimeout()
		result.Attempts++
		o.logger.Debug("dispatch",
			"shape", shape,
			"attempt", result.Attempts,
			"timeout", timeout,
			"remaining", deadline.Remaining(),
		)

		status, respBody, err := o.client.Post(ctx, shape.Endpoint(), body, timeout)
		if err != nil {
			o.logger.Warn("transport failure", "attempt", result.Attempts, "error", err)
			if transientRetries < maxTransientRetries && deadline.Remaining() > transientComfort {
				transientRetries++
				o.sleep(transportBackoff)
				continue
			}
			return done(ReplyOverloaded, OutcomeOverloaded)
		}
		result.Status = status
		result.Response = respBody

		switch {
		case status == http.StatusOK:
			reply, outcome, retry := o.evalSuccess(respBody, payload, deadline, &lengthRetries)
			if retry {
				continue
			}
			return done(reply, outcome)

		case status == http.StatusBadRequest:
			fields := negotiator.RejectedFields(respBody, payload)
			if len(fields) > 0 && negotiationRounds < maxNegotiationRounds {
				negotiationRounds++
				for _, field := range fields {
					payload.Remove(field)
				}
				o.logger.Info("removed rejected parameters", "fields", fields, "round", negotiationRounds)
				continue
			}
			o.logger.Warn("request rejected", "status", status)
			return done(fmt.Sprintf(replyServiceUnavailable, status), OutcomeRejected)

		case isTransientStatus(status):
			o.logger.Warn("transient status", "status", status, "attempt", result.Attempts)
			if transientRetries < maxTransientRetries && deadline.Remaining() > transientComfort {
				transientRetries++
				o.sleep(transientBackoff)
				continue
			}
			return done(ReplyOverloaded, OutcomeOverloaded)

		default:
			o.logger.Warn("unexpected status", "status", status)
			return done(fmt.Sprintf(replyServiceUnavailable, status), OutcomeRejected)
		}
	}
}

// evalSuccess inspects a 200 body. retry=true means the caller should
// dispatch again with the widened output cap.
func (o *Orchestrator) evalSuccess(body []byte, payload *Payload, deadline Deadline, lengthRetries *int) (string, Outcome, bool) {
	var tree any
	if err := json.Unmarshal(body, &tree); err != nil {
		o.logger.Warn("response is not valid json", "error", err)
		return ReplyBadResponse, OutcomeBadResponse, false
	}

	// Even a truncated response usually carries partial text; giving
	// the user something beats giving them nothing.
	if text := ExtractText(tree); text != "" {
		return text, OutcomeSuccess, false
	}

	if truncatedByCap(tree, payload.shape) {
		current := payload.TokenCap()
		if *lengthRetries < maxLengthRetries && current > 0 && current < o.cfg.TokenCeiling && !deadline.Expired() {
			widened := current * 2
			if widened > o.cfg.TokenCeiling {
				widened = o.cfg.TokenCeiling
			}
			payload.SetTokenCap(widened)
			*lengthRetries++
			o.logger.Info("output truncated, widening cap", "cap", widened, "retry", *lengthRetries)
			return "", "", true
		}
		return ReplyTruncated, OutcomeTruncated, false
	}

	return ReplyUnparseable, OutcomeUnparseable, false
}

// truncatedByCap reports whether a response was cut short specifically
// by the output-length cap, in either response shape.
func truncatedByCap(tree any, shape Shape) bool {
	root, ok := tree.(map[string]any)
	if !ok {
		return false
	}
	if shape == ShapeChat {
		choices, ok := root["choices"].([]any)
		if !ok || len(choices) == 0 {
			return false
		}
		choice, ok := choices[0].(map[string]any)
		if !ok {
			return false
		}
		reason, _ := choice["finish_reason"].(string)
		return reason == "length"
	}
	if status, _ := root["status"].(string); status != "incomplete" {
		return false
	}
	details, ok := root["incomplete_details"].(map[string]any)
	if !ok {
		return false
	}
	reason, _ := details["reason"].(string)
	return reason == "max_output_tokens"
}

// isTransientStatus reports whether a status merits one bounded retry.
func isTransientStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
