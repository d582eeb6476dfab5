// pkg/cli/context.go

package cli

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RuntimeContext carries everything a command handler needs: the span
// context for otelzap/telemetry, a named logger and the start timestamp.
type RuntimeContext struct {
	Ctx       context.Context
	Log       *zap.Logger
	Span      trace.Span
	Command   string
	Timestamp time.Time
}
