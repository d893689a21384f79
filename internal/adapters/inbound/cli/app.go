package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/shellcon/aquacheck/internal/adapters/outbound/config"
	"github.com/shellcon/aquacheck/internal/adapters/outbound/counter"
	"github.com/shellcon/aquacheck/internal/adapters/outbound/gitinfo"
	"github.com/shellcon/aquacheck/internal/adapters/outbound/pgintrospect"
	"github.com/shellcon/aquacheck/internal/adapters/outbound/probe"
	"github.com/shellcon/aquacheck/internal/adapters/outbound/source"
	"github.com/shellcon/aquacheck/internal/adapters/outbound/telemetry"
	"github.com/shellcon/aquacheck/internal/application"
	"github.com/shellcon/aquacheck/internal/domain"
)

type globalOptions struct {
	configPath string
	workspace  string
}

// app holds the wired services shared by every command.
type app struct {
	cfg     domain.Config
	logger  *slog.Logger
	metrics *telemetry.Metrics
	git     domain.GitInfo
	verify  *application.VerifyService
	catalog *application.CatalogService
	closers []func(context.Context) error
}

func loadConfig(opts *globalOptions) (domain.Config, error) {
	workspace, err := filepath.Abs(opts.workspace)
	if err != nil {
		return domain.Config{}, fmt.Errorf("resolving workspace: %w", err)
	}
	var loader domain.ConfigLoader = config.New()
	if opts.configPath != "" {
		loader = config.WithPath(opts.configPath)
	}
	return loader.Load(workspace)
}

// newApp loads configuration and wires the outbound adapters into the
// verification and catalog services. Logs go to logOut.
func newApp(ctx context.Context, opts *globalOptions, logOut io.Writer) (*app, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	logger := telemetry.NewLogger(logOut, cfg.LogLevel)

	a := &app{cfg: cfg, logger: logger, metrics: telemetry.NewMetrics(), git: gitinfo.New()}

	shutdown, err := telemetry.InitTracing(ctx, cfg.Tracing, telemetry.WithVersion(version))
	if err != nil {
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}
	a.closers = append(a.closers, shutdown)

	pc := probe.New(cfg.Concurrency.ProbeTimeout, a.metrics.ProbeClients)
	a.closers = append(a.closers, func(context.Context) error { pc.Close(); return nil })

	reader := source.New()
	verifyOpts := []application.VerifyOption{
		application.WithLogger(logger),
		application.WithRecorder(a.metrics),
	}

	if cfg.Database.DSN != "" {
		inspector, closeDB, err := pgintrospect.Open(cfg.Database.DSN, cfg.QueryOptimization, cfg.Database.QueryTimeout)
		if err != nil {
			_ = a.Close(ctx)
			return nil, fmt.Errorf("opening database: %w", err)
		}
		a.closers = append(a.closers, func(context.Context) error { return closeDB() })
		verifyOpts = append(verifyOpts, application.WithIndexInspector(inspector))
	} else {
		logger.Debug("database introspection disabled", "reason", "database.dsn not set")
	}

	if rl := cfg.ResourceLeak; rl.MetricsURL != "" && rl.CounterName != "" {
		verifyOpts = append(verifyOpts, application.WithCounterObservation(
			counter.Scrape(rl.MetricsURL, rl.CounterName, nil),
			pc.Trigger(rl.TriggerURL),
		))
	}

	a.verify = application.NewVerifyService(cfg, reader, pc, verifyOpts...)
	a.catalog = application.NewCatalogService(cfg, reader, a.verify, logger)
	return a, nil
}

// revision labels the workspace commit, or "" outside a repository.
func (a *app) revision() string {
	rev, err := a.git.Describe(a.cfg.Workspace)
	if err != nil {
		a.logger.Debug("workspace revision unavailable", "error", err)
		return ""
	}
	return rev.Label()
}

// Close releases resources in reverse acquisition order.
func (a *app) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
