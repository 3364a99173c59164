package tool

import (
	"context"
	"encoding/json"
)

// ToolExecutor defines the runtime contract for executable tools.
// Executors never return Go errors: every failure is folded into a Failure result.
type ToolExecutor interface {
	Execute(ctx context.Context, params json.RawMessage) Result
}

// ExecutorFunc adapts a plain function to ToolExecutor.
type ExecutorFunc func(ctx context.Context, params json.RawMessage) Result

func (f ExecutorFunc) Execute(ctx context.Context, params json.RawMessage) Result {
	return f(ctx, params)
}
