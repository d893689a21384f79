package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/shellcon/aquacheck/internal/domain"
)

var errNoTrigger = errors.New("no trigger configured to exercise the handler")

// ObserveCounter samples a counter, fires trigger calls times and samples
// again. Any failure makes the observation unavailable instead of failing
// the caller, and so does a missing trigger: two samples with no requests in
// between say nothing about per-request construction.
func ObserveCounter(ctx context.Context, logger *slog.Logger, sampler domain.CounterSampler, trigger domain.Trigger, calls int) domain.CounterObservation {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, span := tracer.Start(ctx, "counter.observe")
	defer span.End()

	unavailable := func(err error) domain.CounterObservation {
		logger.Warn("counter observation unavailable", "error", err)
		span.RecordError(err)
		return domain.CounterObservation{Err: err.Error()}
	}

	if trigger == nil || calls <= 0 {
		return unavailable(errNoTrigger)
	}

	before, err := sampler.Sample(ctx)
	if err != nil {
		return unavailable(fmt.Errorf("sampling before trigger: %w", err))
	}
	for i := 0; i < calls; i++ {
		if err := trigger.Fire(ctx); err != nil {
			return unavailable(fmt.Errorf("trigger call %d: %w", i+1, err))
		}
	}
	after, err := sampler.Sample(ctx)
	if err != nil {
		return unavailable(fmt.Errorf("sampling after trigger: %w", err))
	}

	obs := domain.CounterObservation{Available: true, Before: before, After: after}
	span.SetAttributes(attribute.Int64("counter.growth", obs.Growth()))
	return obs
}
