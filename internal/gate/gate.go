package gate

import (
	"context"
	"fmt"
	"strings"

	"govorun/internal/spec"
)

// Gate bounds how many remote calls run at once. Acquire blocks until a
// slot frees up or ctx expires; the returned release must be called
// exactly once.
type Gate interface {
	Acquire(ctx context.Context) (release func(), err error)
}

// Build constructs a gate based on configuration.
func Build(cfg spec.Config) (Gate, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Gate.Mode))
	switch mode {
	case "", "disabled":
		return NoopGate, nil
	case "local":
		return NewLocal(cfg.Gate.MaxConcurrent), nil
	default:
		return nil, fmt.Errorf("unsupported gate mode %q", cfg.Gate.Mode)
	}
}

// NoopGate admits every caller immediately.
var NoopGate Gate = noop{}

type noop struct{}

func (noop) Acquire(context.Context) (func(), error) {
	return func() {}, nil
}

// Local is a process-local counting gate. Callers past the limit queue
// on the semaphore channel in arrival order.
type Local struct {
	slots chan struct{}
}

// NewLocal builds a Local gate admitting at most maxConcurrent callers.
func NewLocal(maxConcurrent int) *Local {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Local{slots: make(chan struct{}, maxConcurrent)}
}

// Acquire takes a slot, waiting until one frees up or ctx expires.
func (g *Local) Acquire(ctx context.Context) (func(), error) {
	select {
	case g.slots <- struct{}{}:
		return func() { <-g.slots }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("acquire gate slot: %w", ctx.Err())
	}
}
