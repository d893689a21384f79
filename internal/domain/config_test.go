package domain_test

import (
	"testing"
	"time"

	"github.com/shellcon/aquacheck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := domain.DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "none", cfg.Tracing.Exporter)
	assert.Equal(t, 10, cfg.MemoryAllocation.MaxHeapConversions)
	assert.Equal(t, 500*time.Millisecond, cfg.Concurrency.LatencyThreshold)
	assert.Equal(t, 2*time.Second, cfg.Database.QueryTimeout)
}

func TestDefaultConfig_AsyncMarkersMostDecoratedFirst(t *testing.T) {
	m := domain.DefaultConfig().AsyncIO.Markers
	assert.Equal(t, []string{
		"// ⚠️ CHALLENGE #1: ASYNC I/O ⚠️",
		"// CHALLENGE #1: ASYNC I/O",
		"// Challenge 1: Async I/O",
		"// Challenge 1",
		"// CHALLENGE #1",
	}, m.Start)
	assert.Equal(t, []string{
		"// ⚠️ END CHALLENGE CODE ⚠️",
		"// END CHALLENGE CODE",
		"// End Challenge Code",
		"// End Challenge 1",
		"// END CHALLENGE #1",
	}, m.End)
}

func TestDefaultConfig_MemoryMarkersAcceptBothTitles(t *testing.T) {
	start := domain.DefaultConfig().MemoryAllocation.Markers.Start
	assert.Contains(t, start, "// ⚠️ CHALLENGE #3: STRING ALLOCATION OPTIMIZATION ⚠️")
	assert.Contains(t, start, "// ⚠️ CHALLENGE #3: MEMORY OPTIMIZATION ⚠️")
}

func TestAsyncIOConfig_TracingRequiredDefaultsTrue(t *testing.T) {
	var c domain.AsyncIOConfig
	assert.True(t, c.TracingRequired())

	off := false
	c.RequireTracing = &off
	assert.False(t, c.TracingRequired())
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Config)
		errMsg string
	}{
		{"unknown exporter", func(c *domain.Config) { c.Tracing.Exporter = "jaeger" }, "tracing.exporter"},
		{"otlp without endpoint", func(c *domain.Config) { c.Tracing.Exporter = "otlp" }, "tracing.endpoint"},
		{"bad log level", func(c *domain.Config) { c.LogLevel = "loud" }, "log_level"},
		{"empty source", func(c *domain.Config) { c.ResourceLeak.Path = "" }, "resource_leak.source"},
		{"no end markers", func(c *domain.Config) { c.AsyncIO.Markers.End = nil }, "async_io.markers"},
		{"zero heap conversions", func(c *domain.Config) { c.MemoryAllocation.MaxHeapConversions = 0 }, "max_heap_conversions"},
		{"negative trigger calls", func(c *domain.Config) { c.ResourceLeak.TriggerCalls = -1 }, "trigger_calls"},
		{"metrics without trigger", func(c *domain.Config) { c.ResourceLeak.MetricsURL = "http://lab:8080/metrics" }, "trigger_url"},
		{"metrics with zero trigger calls", func(c *domain.Config) {
			c.ResourceLeak.MetricsURL = "http://lab:8080/metrics"
			c.ResourceLeak.TriggerURL = "http://lab:8080/api/sensors/status"
			c.ResourceLeak.TriggerCalls = 0
		}, "trigger_calls"},
		{"zero parallel requests", func(c *domain.Config) { c.Concurrency.ParallelRequests = 0 }, "parallel_requests"},
		{"zero threshold", func(c *domain.Config) { c.Concurrency.LatencyThreshold = 0 }, "latency_threshold"},
		{"probe timeout too long", func(c *domain.Config) { c.Concurrency.ProbeTimeout = time.Minute }, "probe_timeout"},
		{"zero query timeout", func(c *domain.Config) { c.Database.QueryTimeout = 0 }, "query_timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidate_MetricsWithTrigger(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.ResourceLeak.MetricsURL = "http://lab:8080/metrics"
	cfg.ResourceLeak.TriggerURL = "http://lab:8080/api/sensors/status"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_OTLPWithEndpoint(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Tracing.Exporter = "otlp"
	cfg.Tracing.Endpoint = "localhost:4317"
	assert.NoError(t, cfg.Validate())
}
