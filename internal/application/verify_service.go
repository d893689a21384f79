package application

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/shellcon/aquacheck/internal/domain"
	"github.com/shellcon/aquacheck/internal/domain/extract"
	"github.com/shellcon/aquacheck/internal/domain/rules"
	"github.com/shellcon/aquacheck/internal/domain/verdict"
)

// Verification outcomes recorded per call.
const (
	OutcomeValid        = "valid"
	OutcomeInvalid      = "invalid"
	OutcomeUnverifiable = "unverifiable"
	OutcomeCheckError   = "check_error"
)

// VerifyService renders verdicts for the lab challenges:
// read source → extract region → evaluate rules → gather runtime evidence → verdict.
type VerifyService struct {
	cfg       domain.Config
	reader    domain.SourceReader
	probe     domain.Probe
	inspector domain.IndexInspector
	sampler   domain.CounterSampler
	trigger   domain.Trigger
	recorder  domain.VerificationRecorder
	logger    *slog.Logger
}

// VerifyOption configures optional collaborators of a VerifyService.
type VerifyOption func(*VerifyService)

// WithIndexInspector enables database introspection for query optimization.
func WithIndexInspector(i domain.IndexInspector) VerifyOption {
	return func(s *VerifyService) { s.inspector = i }
}

// WithCounterObservation enables the client-construction observation for
// the resource-leak challenge.
func WithCounterObservation(sampler domain.CounterSampler, trigger domain.Trigger) VerifyOption {
	return func(s *VerifyService) {
		s.sampler = sampler
		s.trigger = trigger
	}
}

func WithRecorder(r domain.VerificationRecorder) VerifyOption {
	return func(s *VerifyService) { s.recorder = r }
}

func WithLogger(l *slog.Logger) VerifyOption {
	return func(s *VerifyService) { s.logger = l }
}

func NewVerifyService(cfg domain.Config, reader domain.SourceReader, probe domain.Probe, opts ...VerifyOption) *VerifyService {
	s := &VerifyService{
		cfg:    cfg,
		reader: reader,
		probe:  probe,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type outcome struct {
	verdict domain.Verdict
	label   string
}

// Verify renders the verdict for category c. The only error is an unknown
// category; every other failure is reported inside the verdict.
func (s *VerifyService) Verify(ctx context.Context, c domain.Category) (domain.Verdict, error) {
	if c.ChallengeID() == 0 {
		return domain.Verdict{}, fmt.Errorf("%w: %q", domain.ErrUnknownChallenge, c)
	}

	requestID := RequestID(ctx)
	ctx = WithRequestID(ctx, requestID)
	logger := s.logger.With(
		"request_id", requestID,
		"category", string(c),
		"challenge_id", c.ChallengeID(),
	)

	ctx, span := tracer.Start(ctx, "verify."+string(c),
		trace.WithAttributes(
			attribute.String("verify.category", string(c)),
			attribute.Int("verify.challenge_id", c.ChallengeID()),
			attribute.String("request_id", requestID),
		),
	)
	defer span.End()

	logger.Info("starting verification")
	start := time.Now()

	var out outcome
	switch c {
	case domain.CategoryAsyncIO:
		out = s.verifyAsyncIO(ctx, logger)
	case domain.CategoryQueryOptimization:
		out = s.verifyQueryOptimization(ctx, logger)
	case domain.CategoryMemoryAllocation:
		out = s.verifyMemoryAllocation(ctx, logger)
	case domain.CategoryResourceLeak:
		out = s.verifyResourceLeak(ctx, logger)
	case domain.CategoryConcurrency:
		out = s.verifyConcurrency(ctx, logger)
	}

	elapsed := time.Since(start)
	if s.recorder != nil {
		s.recorder.RecordVerification(c, out.label, elapsed)
	}
	span.SetAttributes(
		attribute.Bool("verify.valid", out.verdict.Valid),
		attribute.String("verify.outcome", out.label),
	)
	if !out.verdict.Valid {
		span.SetStatus(codes.Error, out.label)
	}
	logger.Info("verification completed",
		"valid", out.verdict.Valid,
		"outcome", out.label,
		"duration_ms", float64(elapsed)/float64(time.Millisecond),
	)
	return out.verdict, nil
}

// staticEvidence is the result of reading and evaluating one source file.
type staticEvidence struct {
	doc    string
	region extract.Region
	result domain.StaticRuleResult
}

func (s *VerifyService) evaluateSource(ctx context.Context, logger *slog.Logger, c domain.Category, src domain.SourceConfig) (staticEvidence, error) {
	path := s.resolve(src.Path)

	readCtx, readSpan := tracer.Start(ctx, "source.read", trace.WithAttributes(attribute.String("source.path", path)))
	doc, err := s.reader.ReadSource(readCtx, path)
	if err != nil {
		readSpan.RecordError(err)
		readSpan.End()
		logger.Error("failed to read source for verification", "path", path, "error", err)
		return staticEvidence{}, fmt.Errorf("reading %s: %w", src.Path, err)
	}
	readSpan.End()

	_, evalSpan := tracer.Start(ctx, "rules.evaluate")
	defer evalSpan.End()

	region := extract.FromMarkers(doc, src.Markers)
	if region.Degraded {
		logger.Warn("challenge markers not found, checking whole file", "path", path, "degraded", true)
	}

	set, err := rules.ForCategory(c, s.cfg)
	if err != nil {
		return staticEvidence{}, err
	}
	res := rules.Evaluate(set, region, doc)

	attrs := []any{"region_degraded", res.RegionDegraded}
	for _, p := range res.Predicates {
		attrs = append(attrs, rules.DetailKey(p.Name), p.Passed)
	}
	for k, n := range res.Counts {
		attrs = append(attrs, k, n)
	}
	logger.Info("challenge code check results", attrs...)

	evalSpan.SetAttributes(
		attribute.Bool("rules.passed", res.Passed()),
		attribute.Bool("rules.region_degraded", res.RegionDegraded),
	)
	return staticEvidence{doc: doc, region: region, result: res}, nil
}

func (s *VerifyService) resolve(path string) string {
	if filepath.IsAbs(path) || s.cfg.Workspace == "" {
		return path
	}
	return filepath.Join(s.cfg.Workspace, path)
}

func staticDetails(res domain.StaticRuleResult) domain.Details {
	d := domain.Details{"region_degraded": res.RegionDegraded}
	for _, p := range res.Predicates {
		d[rules.DetailKey(p.Name)] = p.Passed
	}
	for k, v := range res.Signals {
		d[k] = v
	}
	for k, n := range res.Counts {
		d[k] = n
	}
	return d
}

func finish(c domain.Category, failures []domain.PredicateResult, details domain.Details) outcome {
	v := verdict.Build(domain.ComponentFor(c), failures, details)
	if v.Valid {
		return outcome{verdict: v, label: OutcomeValid}
	}
	return outcome{verdict: v, label: OutcomeInvalid}
}

func unverifiable(c domain.Category, err error) outcome {
	return outcome{
		verdict: verdict.Unverifiable(domain.ComponentFor(c), err.Error()),
		label:   OutcomeUnverifiable,
	}
}

// unverifiableWith keeps runtime evidence gathered before the source read failed.
func unverifiableWith(c domain.Category, err error, details domain.Details) outcome {
	out := unverifiable(c, err)
	out.verdict.Details = details
	return out
}

func ms(d time.Duration) float64 {
	if d < 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}

func (s *VerifyService) verifyAsyncIO(ctx context.Context, logger *slog.Logger) outcome {
	c := domain.CategoryAsyncIO

	// The benchmark durations are reported whatever the static verdict.
	file := s.resolve(s.cfg.AsyncIO.BenchmarkFile)
	blocking := s.probe.BlockingFileRead(file)
	blocking.Name, blocking.Fallback = "blocking_io", 0
	async := s.probe.AsyncFileRead(file)
	async.Name, async.Fallback = "async_io", 0

	bench := RunBenchmark(ctx, logger, blocking, async)
	timings := domain.Details{
		"blocking_io_duration_ms": bench.A.Millis(),
		"async_io_duration_ms":    bench.B.Millis(),
	}
	if bench.A.Err != "" {
		timings["blocking_io_error"] = bench.A.Err
	}
	if bench.B.Err != "" {
		timings["async_io_error"] = bench.B.Err
	}

	ev, err := s.evaluateSource(ctx, logger, c, s.cfg.AsyncIO.SourceConfig)
	if err != nil {
		return unverifiableWith(c, err, timings)
	}
	details := staticDetails(ev.result)
	for k, v := range timings {
		details[k] = v
	}
	return finish(c, ev.result.Failures(), details)
}

func (s *VerifyService) verifyQueryOptimization(ctx context.Context, logger *slog.Logger) outcome {
	c := domain.CategoryQueryOptimization
	ev, err := s.evaluateSource(ctx, logger, c, s.cfg.QueryOptimization.SourceConfig)
	if err != nil {
		return unverifiable(c, err)
	}
	details := staticDetails(ev.result)
	failures := ev.result.Failures()

	if s.inspector == nil {
		details["database_checks"] = false
		return finish(c, failures, details)
	}

	ictx, span := tracer.Start(ctx, "database.introspect")
	intro, err := s.inspector.Inspect(ictx)
	if err != nil {
		span.RecordError(err)
		span.End()
		logger.Error("database error during validation checks", "error", err)
		return outcome{
			verdict: verdict.CheckFailed(domain.ComponentFor(c), err.Error()),
			label:   OutcomeCheckError,
		}
	}
	span.End()

	details["database_checks"] = true
	attrs := make([]any, 0, 2*len(intro.Checks))
	for _, chk := range intro.Checks {
		key := rules.DetailKey(chk.Name)
		details[key] = chk.Passed
		attrs = append(attrs, key, chk.Passed)
		if !chk.Passed {
			failures = append(failures, chk)
		}
	}
	logger.Info("database check results", attrs...)

	return finish(c, failures, details)
}

func (s *VerifyService) verifyMemoryAllocation(ctx context.Context, logger *slog.Logger) outcome {
	c := domain.CategoryMemoryAllocation
	ev, err := s.evaluateSource(ctx, logger, c, s.cfg.MemoryAllocation.SourceConfig)
	if err != nil {
		return unverifiable(c, err)
	}
	details := staticDetails(ev.result)
	details["max_heap_conversions"] = s.cfg.MemoryAllocation.MaxHeapConversions
	return finish(c, ev.result.Failures(), details)
}

func (s *VerifyService) verifyResourceLeak(ctx context.Context, logger *slog.Logger) outcome {
	c := domain.CategoryResourceLeak
	ev, err := s.evaluateSource(ctx, logger, c, s.cfg.ResourceLeak.SourceConfig)
	if err != nil {
		return unverifiable(c, err)
	}
	details := staticDetails(ev.result)
	failures := ev.result.Failures()

	if s.sampler == nil {
		return finish(c, failures, details)
	}

	calls := s.cfg.ResourceLeak.TriggerCalls
	obs := ObserveCounter(ctx, logger, s.sampler, s.trigger, calls)
	details["counter_available"] = obs.Available
	if !obs.Available {
		details["counter_error"] = obs.Err
		return finish(c, failures, details)
	}

	growth := obs.Growth()
	details["client_constructions_before"] = obs.Before
	details["client_constructions_after"] = obs.After
	details["client_constructions_growth"] = growth
	logger.Info("client construction counter observed",
		"before", obs.Before,
		"after", obs.After,
		"growth", growth,
		"trigger_calls", calls,
	)
	if growth > 0 {
		failures = append(failures, domain.PredicateResult{
			Name:  "ClientConstructionsStable",
			Unmet: fmt.Sprintf("The service created %d new HTTP clients while serving %d requests; reuse a single client", growth, calls),
		})
	}
	details[rules.DetailKey("ClientConstructionsStable")] = growth == 0
	return finish(c, failures, details)
}

func (s *VerifyService) verifyConcurrency(ctx context.Context, logger *slog.Logger) outcome {
	c := domain.CategoryConcurrency
	cc := s.cfg.Concurrency

	single := s.probe.Get(cc.TargetURL)
	single.Name, single.Fallback = "single_request", cc.ProbeTimeout
	parallel := s.probe.ParallelGet(cc.TargetURL, cc.ParallelRequests)
	parallel.Name, parallel.Fallback = "parallel_requests", cc.ProbeTimeout

	bench := RunBenchmark(ctx, logger, single, parallel)
	details := domain.Details{
		"single_request_duration_ms":    bench.A.Millis(),
		"parallel_requests_duration_ms": bench.B.Millis(),
		"parallel_requests":             cc.ParallelRequests,
		"latency_threshold_ms":          ms(cc.LatencyThreshold),
	}

	var failures []domain.PredicateResult
	if bench.A.Err != "" {
		details["single_request_error"] = bench.A.Err
	}
	if bench.B.Err != "" {
		details["parallel_requests_error"] = bench.B.Err
	}
	reachable := bench.A.Err == "" && bench.B.Err == ""
	details["target_reachable"] = reachable
	if !reachable {
		reason := bench.A.Err
		if reason == "" {
			reason = bench.B.Err
		}
		failures = append(failures, domain.PredicateResult{
			Name:  "TargetReachable",
			Unmet: fmt.Sprintf("Could not reach the tank analysis endpoint %s: %s", cc.TargetURL, reason),
		})
	}
	fast := bench.B.Duration < cc.LatencyThreshold
	details["below_latency_threshold"] = fast
	if !fast {
		failures = append(failures, domain.PredicateResult{
			Name: "BelowLatencyThreshold",
			Unmet: fmt.Sprintf("%d parallel analysis requests took %.0fms; they should complete in under %.0fms",
				cc.ParallelRequests, bench.B.Millis(), ms(cc.LatencyThreshold)),
		})
	}
	return finish(c, failures, details)
}
