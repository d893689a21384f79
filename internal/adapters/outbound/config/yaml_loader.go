package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/shellcon/aquacheck/internal/domain"
)

// FileName is the workspace configuration file.
const FileName = ".aquacheck.yaml"

// Environment variables that override file values.
const (
	EnvListenAddr   = "AQUACHECK_LISTEN_ADDR"
	EnvDatabaseDSN  = "AQUACHECK_DATABASE_DSN"
	EnvOTLPEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
)

// YAMLLoader implements domain.ConfigLoader by reading .aquacheck.yaml.
type YAMLLoader struct {
	path string
}

// New creates a YAMLLoader that looks for .aquacheck.yaml in the workspace.
func New() *YAMLLoader { return &YAMLLoader{} }

// WithPath creates a YAMLLoader for an explicit config file. Unlike the
// workspace file, an explicit file must exist.
func WithPath(path string) *YAMLLoader { return &YAMLLoader{path: path} }

// Load reads the config for workspace. Values from the file are laid over
// DefaultConfig, then environment overrides are applied and the result is
// validated. A missing workspace file yields the defaults.
func (l *YAMLLoader) Load(workspace string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := l.path
	if path == "" {
		path = filepath.Join(workspace, FileName)
	}
	name := filepath.Base(path)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return domain.Config{}, fmt.Errorf("parsing %s: %w", name, err)
		}
	case errors.Is(err, os.ErrNotExist) && l.path == "":
	default:
		return domain.Config{}, fmt.Errorf("reading %s: %w", name, err)
	}

	cfg.Workspace = workspace
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", name, err)
	}
	return cfg, nil
}

func applyEnv(cfg *domain.Config) {
	if v := os.Getenv(EnvListenAddr); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv(EnvDatabaseDSN); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv(EnvOTLPEndpoint); v != "" {
		cfg.Tracing.Endpoint = v
	}
}
