package domain

import (
	"context"
	"time"
)

// Operation names an engine operation.
type Operation string

const (
	OperationExpand      Operation = "expand"
	OperationReconstruct Operation = "reconstruct"
	OperationConvergents Operation = "convergents"
	OperationApproximate Operation = "approximate"
)

// OperationEvent describes one completed engine operation.
type OperationEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Operation Operation     `json:"operation"`
	Input     string        `json:"input"`           // p/q or coefficient notation
	Terms     int           `json:"terms"`           // number of coefficients involved
	CacheHit  bool          `json:"cache_hit,omitempty"`
	Duration  time.Duration `json:"duration"`
	Err       error         `json:"-"`
}

// Hooks defines callbacks for engine observability.
type Hooks struct {
	OnOperation func(context.Context, *OperationEvent)
}
