package gpt

import (
	"encoding/json"
	"time"
)

// Outcome classifies how an orchestration run ended.
type Outcome string

const (
	// OutcomeSuccess means answer text was extracted, complete or partial.
	OutcomeSuccess Outcome = "success"
	// OutcomeOverloaded means the budget ran out or transient failures
	// exhausted the retry allowance.
	OutcomeOverloaded Outcome = "overloaded"
	// OutcomeRejected means a non-retryable HTTP status was surfaced.
	OutcomeRejected Outcome = "rejected"
	// OutcomeTruncated means the output was cut short by the length cap
	// and no retry could widen it.
	OutcomeTruncated Outcome = "truncated"
	// OutcomeUnparseable means a 200 body yielded no text by any strategy.
	OutcomeUnparseable Outcome = "unparseable"
	// OutcomeBadResponse means a 200 body was not valid JSON.
	OutcomeBadResponse Outcome = "bad_response"
)

// Result captures one orchestration run. Reply is always a short,
// user-facing string; the rest exists for logging and the transcript
// store and never reaches the voice platform.
type Result struct {
	Reply    string
	Outcome  Outcome
	Shape    Shape
	Attempts int
	Status   int
	Request  json.RawMessage
	Response json.RawMessage
	Duration time.Duration
}
