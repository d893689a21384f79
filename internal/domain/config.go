package domain

import (
	"fmt"
	"strings"
	"time"
)

// MarkerSet lists the accepted start and end delimiters of a challenge
// region, most decorated form first.
type MarkerSet struct {
	Start []string `yaml:"start" json:"start"`
	End   []string `yaml:"end"   json:"end"`
}

// SourceConfig locates the learner file a category inspects.
type SourceConfig struct {
	Path    string    `yaml:"source"  json:"source"`
	Markers MarkerSet `yaml:"markers" json:"markers"`
}

// Config holds engine configuration loaded from .aquacheck.yaml.
type Config struct {
	Workspace   string         `yaml:"-"            json:"workspace"`
	ListenAddr  string         `yaml:"listen_addr"  json:"listen_addr"`
	LogLevel    string         `yaml:"log_level"    json:"log_level"`
	LecturesDir string         `yaml:"lectures_dir" json:"lectures_dir"`
	Tracing     TracingConfig  `yaml:"tracing"      json:"tracing"`
	Database    DatabaseConfig `yaml:"database"     json:"database"`

	AsyncIO           AsyncIOConfig      `yaml:"async_io"           json:"async_io"`
	QueryOptimization QueryConfig        `yaml:"query_optimization" json:"query_optimization"`
	MemoryAllocation  MemoryConfig       `yaml:"memory_allocation"  json:"memory_allocation"`
	ResourceLeak      ResourceLeakConfig `yaml:"resource_leak"      json:"resource_leak"`
	Concurrency       ConcurrencyConfig  `yaml:"concurrency"        json:"concurrency"`
}

type TracingConfig struct {
	// Exporter is one of "none", "stdout" or "otlp".
	Exporter    string `yaml:"exporter"     json:"exporter"`
	Endpoint    string `yaml:"endpoint"     json:"endpoint,omitempty"`
	ServiceName string `yaml:"service_name" json:"service_name"`
}

type DatabaseConfig struct {
	// DSN enables database introspection for the query-optimization check
	// when non-empty.
	DSN          string        `yaml:"dsn"           json:"-"`
	QueryTimeout time.Duration `yaml:"query_timeout" json:"query_timeout"`
}

type AsyncIOConfig struct {
	SourceConfig   `yaml:",inline"`
	BenchmarkFile  string `yaml:"benchmark_file"  json:"benchmark_file"`
	RequireTracing *bool  `yaml:"require_tracing" json:"require_tracing,omitempty"`
}

// TracingRequired reports whether the stricter span-instrumentation rule
// applies. Defaults to true.
func (c AsyncIOConfig) TracingRequired() bool {
	return c.RequireTracing == nil || *c.RequireTracing
}

type QueryConfig struct {
	SourceConfig        `yaml:",inline"`
	Table               string `yaml:"table"                 json:"table"`
	TrigramExtension    string `yaml:"trigram_extension"     json:"trigram_extension"`
	NameIndex           string `yaml:"name_index"            json:"name_index"`
	ScientificNameIndex string `yaml:"scientific_name_index" json:"scientific_name_index"`
}

type MemoryConfig struct {
	SourceConfig       `yaml:",inline"`
	MaxHeapConversions int `yaml:"max_heap_conversions" json:"max_heap_conversions"`
}

type ResourceLeakConfig struct {
	SourceConfig `yaml:",inline"`
	// MetricsURL and CounterName locate the service's client-construction
	// counter. Observation is skipped when either is empty. TriggerURL is
	// required alongside MetricsURL.
	MetricsURL   string `yaml:"metrics_url"   json:"metrics_url,omitempty"`
	CounterName  string `yaml:"counter_name"  json:"counter_name,omitempty"`
	TriggerURL   string `yaml:"trigger_url"   json:"trigger_url,omitempty"`
	TriggerCalls int    `yaml:"trigger_calls" json:"trigger_calls"`
}

type ConcurrencyConfig struct {
	TargetURL        string        `yaml:"target_url"        json:"target_url"`
	ParallelRequests int           `yaml:"parallel_requests" json:"parallel_requests"`
	LatencyThreshold time.Duration `yaml:"latency_threshold" json:"latency_threshold"`
	ProbeTimeout     time.Duration `yaml:"probe_timeout"     json:"probe_timeout"`
}

const (
	endMarkerDecorated = "// ⚠️ END CHALLENGE CODE ⚠️"
	endMarkerPlain     = "// END CHALLENGE CODE"
	endMarkerTitle     = "// End Challenge Code"
)

func challengeMarkers(n int, title string) MarkerSet {
	upper := strings.ToUpper(title)
	return MarkerSet{
		Start: []string{
			fmt.Sprintf("// ⚠️ CHALLENGE #%d: %s ⚠️", n, upper),
			fmt.Sprintf("// CHALLENGE #%d: %s", n, upper),
			fmt.Sprintf("// Challenge %d: %s", n, title),
			fmt.Sprintf("// Challenge %d", n),
			fmt.Sprintf("// CHALLENGE #%d", n),
		},
		End: []string{
			endMarkerDecorated,
			endMarkerPlain,
			endMarkerTitle,
			fmt.Sprintf("// End Challenge %d", n),
			fmt.Sprintf("// END CHALLENGE #%d", n),
		},
	}
}

// DefaultConfig returns the configuration matching the stock lab layout.
func DefaultConfig() Config {
	return Config{
		Workspace:   ".",
		ListenAddr:  ":8080",
		LogLevel:    "info",
		LecturesDir: "services/aqua-brain/src/lectures",
		Tracing: TracingConfig{
			Exporter:    "none",
			ServiceName: "aquacheck",
		},
		Database: DatabaseConfig{QueryTimeout: 2 * time.Second},
		AsyncIO: AsyncIOConfig{
			SourceConfig: SourceConfig{
				Path:    "services/aqua-monitor/src/challenges.rs",
				Markers: challengeMarkers(1, "Async I/O"),
			},
			BenchmarkFile: "services/aqua-monitor/config/tank_settings.json",
		},
		QueryOptimization: QueryConfig{
			SourceConfig: SourceConfig{
				Path:    "services/species-hub/src/challenges.rs",
				Markers: challengeMarkers(2, "Database Query Optimization"),
			},
			Table:               "species",
			TrigramExtension:    "pg_trgm",
			NameIndex:           "species_name_gin_trgm_idx",
			ScientificNameIndex: "species_scientific_name_gin_trgm_idx",
		},
		MemoryAllocation: MemoryConfig{
			SourceConfig: SourceConfig{
				Path:    "services/aqua-brain/src/challenges.rs",
				Markers: memoryMarkers(),
			},
			MaxHeapConversions: 10,
		},
		ResourceLeak: ResourceLeakConfig{
			SourceConfig: SourceConfig{
				Path:    "services/aqua-monitor/src/challenges.rs",
				Markers: challengeMarkers(4, "Resource Leak"),
			},
			CounterName:  "http_clients_created_total",
			TriggerCalls: 3,
		},
		Concurrency: ConcurrencyConfig{
			TargetURL:        "http://localhost:8002/api/analysis/tanks",
			ParallelRequests: 8,
			LatencyThreshold: 500 * time.Millisecond,
			ProbeTimeout:     2 * time.Second,
		},
	}
}

// memoryMarkers accepts both titles the aqua-brain snapshots used.
func memoryMarkers() MarkerSet {
	m := challengeMarkers(3, "String Allocation Optimization")
	m.Start = append([]string{
		m.Start[0],
		"// ⚠️ CHALLENGE #3: MEMORY OPTIMIZATION ⚠️",
	}, m.Start[1:]...)
	return m
}

var validExporters = []string{"none", "stdout", "otlp"}

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the config for invalid values and returns a descriptive error.
func (c Config) Validate() error {
	if !contains(validExporters, c.Tracing.Exporter) {
		return fmt.Errorf("unknown tracing.exporter %q (valid: none, stdout, otlp)", c.Tracing.Exporter)
	}
	if c.Tracing.Exporter == "otlp" && c.Tracing.Endpoint == "" {
		return fmt.Errorf("tracing.endpoint is required for the otlp exporter")
	}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel)
	}

	sources := map[string]SourceConfig{
		"async_io":           c.AsyncIO.SourceConfig,
		"query_optimization": c.QueryOptimization.SourceConfig,
		"memory_allocation":  c.MemoryAllocation.SourceConfig,
		"resource_leak":      c.ResourceLeak.SourceConfig,
	}
	for name, sc := range sources {
		if sc.Path == "" {
			return fmt.Errorf("%s.source must not be empty", name)
		}
		if len(sc.Markers.Start) == 0 || len(sc.Markers.End) == 0 {
			return fmt.Errorf("%s.markers must list at least one start and one end marker", name)
		}
	}

	if c.MemoryAllocation.MaxHeapConversions <= 0 {
		return fmt.Errorf("memory_allocation.max_heap_conversions must be > 0 (got %d)", c.MemoryAllocation.MaxHeapConversions)
	}
	if c.ResourceLeak.TriggerCalls < 0 {
		return fmt.Errorf("resource_leak.trigger_calls must be >= 0 (got %d)", c.ResourceLeak.TriggerCalls)
	}
	if rl := c.ResourceLeak; rl.MetricsURL != "" {
		if rl.TriggerURL == "" {
			return fmt.Errorf("resource_leak.trigger_url is required when resource_leak.metrics_url is set")
		}
		if rl.TriggerCalls == 0 {
			return fmt.Errorf("resource_leak.trigger_calls must be > 0 when resource_leak.metrics_url is set")
		}
	}
	if c.Concurrency.ParallelRequests <= 0 {
		return fmt.Errorf("concurrency.parallel_requests must be > 0 (got %d)", c.Concurrency.ParallelRequests)
	}
	if c.Concurrency.LatencyThreshold <= 0 {
		return fmt.Errorf("concurrency.latency_threshold must be > 0")
	}
	if c.Concurrency.ProbeTimeout <= 0 || c.Concurrency.ProbeTimeout > 10*time.Second {
		return fmt.Errorf("concurrency.probe_timeout must be in (0s, 10s] (got %s)", c.Concurrency.ProbeTimeout)
	}
	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("database.query_timeout must be > 0")
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
