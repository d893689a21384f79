package domain

import (
	"context"
	"errors"
	"time"
)

// ErrUnknownChallenge is returned when a challenge id or category name does
// not resolve.
var ErrUnknownChallenge = errors.New("unknown challenge")

// SourceReader reads the current text of a learner source file. Reads are
// never cached so every verification sees the latest edit.
type SourceReader interface {
	ReadSource(ctx context.Context, path string) (string, error)
}

// IndexInspector checks the live data store for the search-support objects
// (extension and indexes) the query-optimization fix requires.
type IndexInspector interface {
	Inspect(ctx context.Context) (IntrospectionResult, error)
}

// CounterSampler reads a monotonically increasing process counter.
type CounterSampler interface {
	Sample(ctx context.Context) (int64, error)
}

// Trigger invokes the handler whose side effects a CounterSampler observes.
type Trigger interface {
	Fire(ctx context.Context) error
}

// Operation is one timed benchmark step. Fallback is the duration recorded
// when Run fails.
type Operation struct {
	Name     string
	Run      func(ctx context.Context) error
	Fallback time.Duration
}

// ConfigLoader loads engine configuration for a workspace.
type ConfigLoader interface {
	Load(workspace string) (Config, error)
}

// GitInfo reports the version-control state of the workspace.
type GitInfo interface {
	Describe(path string) (Revision, error)
}

// Probe builds benchmark operations against the lab environment.
type Probe interface {
	// BlockingFileRead reads path on the calling goroutine.
	BlockingFileRead(path string) Operation
	// AsyncFileRead reads path on a separate goroutine and awaits the result.
	AsyncFileRead(path string) Operation
	// Get issues one GET request to url.
	Get(url string) Operation
	// ParallelGet issues n concurrent GET requests to url and waits for all.
	ParallelGet(url string, n int) Operation
}

// VerificationRecorder records the outcome of each verification.
type VerificationRecorder interface {
	RecordVerification(category Category, outcome string, elapsed time.Duration)
}
