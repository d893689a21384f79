package application

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/shellcon/aquacheck/internal/domain"
)

// RunBenchmark times a and b one after the other. A failing operation is
// recorded with its fallback duration and error text; it never aborts the
// benchmark.
func RunBenchmark(ctx context.Context, logger *slog.Logger, a, b domain.Operation) domain.BenchmarkResult {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, span := tracer.Start(ctx, "benchmark.run",
		trace.WithAttributes(
			attribute.String("benchmark.a", a.Name),
			attribute.String("benchmark.b", b.Name),
		),
	)
	defer span.End()

	res := domain.BenchmarkResult{
		A: timeOperation(ctx, logger, a),
		B: timeOperation(ctx, logger, b),
	}
	span.SetAttributes(
		attribute.Float64("benchmark.a_ms", res.A.Millis()),
		attribute.Float64("benchmark.b_ms", res.B.Millis()),
	)
	return res
}

func timeOperation(ctx context.Context, logger *slog.Logger, op domain.Operation) domain.Timing {
	t := domain.Timing{Name: op.Name}
	if op.Run == nil {
		t.Duration = op.Fallback
		t.Err = "operation not configured"
		return t
	}

	start := time.Now()
	err := op.Run(ctx)
	t.Duration = time.Since(start)

	if err != nil {
		logger.Warn("benchmark operation failed",
			"operation", op.Name,
			"error", err,
			"fallback_ms", float64(op.Fallback)/float64(time.Millisecond),
		)
		t.Duration = op.Fallback
		t.Err = err.Error()
	}
	return t
}
