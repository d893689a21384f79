package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/shellcon/aquacheck/internal/domain"
)

// ErrUnknownExporter is returned for an exporter name Init does not know.
var ErrUnknownExporter = errors.New("unknown trace exporter")

// Shutdown flushes and releases the tracing pipeline.
type Shutdown func(context.Context) error

// TracingOption customizes Init.
type TracingOption func(*tracingOptions)

type tracingOptions struct {
	writer  io.Writer
	version string
}

// WithWriter sends stdout-exporter output to w.
func WithWriter(w io.Writer) TracingOption {
	return func(o *tracingOptions) { o.writer = w }
}

// WithVersion tags the service resource with a version.
func WithVersion(v string) TracingOption {
	return func(o *tracingOptions) { o.version = v }
}

// InitTracing installs the global TracerProvider and text-map propagator
// described by cfg. With the "none" exporter the global no-op provider is
// left in place and Shutdown does nothing.
func InitTracing(ctx context.Context, cfg domain.TracingConfig, opts ...TracingOption) (Shutdown, error) {
	o := tracingOptions{writer: os.Stdout, version: "dev"}
	for _, opt := range opts {
		opt(&o)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	var (
		exporter sdktrace.SpanExporter
		closers  []func(context.Context) error
		err      error
	)

	switch cfg.Exporter {
	case "", "none":
		return func(context.Context) error { return nil }, nil

	case "stdout":
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(o.writer), stdouttrace.WithPrettyPrint())

	case "otlp":
		conn, dialErr := grpc.NewClient(cfg.Endpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if dialErr != nil {
			return nil, fmt.Errorf("creating grpc client for %s: %w", cfg.Endpoint, dialErr)
		}
		closers = append(closers, func(context.Context) error { return conn.Close() })
		exporter, err = otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownExporter, cfg.Exporter)
	}
	if err != nil {
		return nil, fmt.Errorf("creating %s exporter: %w", cfg.Exporter, err)
	}

	res := resource.NewWithAttributes(
		"",
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", o.version),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)

	closers = append([]func(context.Context) error{tp.Shutdown}, closers...)
	return func(ctx context.Context) error {
		var errs []error
		for _, c := range closers {
			if err := c(ctx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}, nil
}
