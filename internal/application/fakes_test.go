package application_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/shellcon/aquacheck/internal/domain"
)

type fakeReader struct {
	files map[string]string
	reads []string
}

func (r *fakeReader) ReadSource(_ context.Context, path string) (string, error) {
	r.reads = append(r.reads, path)
	content, ok := r.files[path]
	if !ok {
		return "", fmt.Errorf("open %s: %w", path, os.ErrNotExist)
	}
	return content, nil
}

// fakeProbe returns operations that sleep for a fixed duration or fail.
type fakeProbe struct {
	delay   map[string]time.Duration
	failing map[string]error
}

func (p *fakeProbe) op(kind string) domain.Operation {
	return domain.Operation{
		Name: kind,
		Run: func(ctx context.Context) error {
			if err := p.failing[kind]; err != nil {
				return err
			}
			if d := p.delay[kind]; d > 0 {
				select {
				case <-time.After(d):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		},
	}
}

func (p *fakeProbe) BlockingFileRead(string) domain.Operation { return p.op("blocking") }
func (p *fakeProbe) AsyncFileRead(string) domain.Operation    { return p.op("async") }
func (p *fakeProbe) Get(string) domain.Operation              { return p.op("get") }
func (p *fakeProbe) ParallelGet(string, int) domain.Operation { return p.op("parallel") }

type fakeInspector struct {
	result domain.IntrospectionResult
	err    error
}

func (i fakeInspector) Inspect(context.Context) (domain.IntrospectionResult, error) {
	return i.result, i.err
}

// fakeCounter is both the sampler and the trigger: each Fire adds perCall.
type fakeCounter struct {
	mu      sync.Mutex
	value   int64
	perCall int64
	fired   int
	err     error
}

func (c *fakeCounter) Sample(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return 0, c.err
	}
	return c.value, nil
}

func (c *fakeCounter) Fire(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fired++
	c.value += c.perCall
	return nil
}

type recorded struct {
	category domain.Category
	outcome  string
}

type fakeRecorder struct {
	calls []recorded
}

func (r *fakeRecorder) RecordVerification(c domain.Category, outcome string, _ time.Duration) {
	r.calls = append(r.calls, recorded{category: c, outcome: outcome})
}

var errConnRefused = errors.New("dial tcp 127.0.0.1:8002: connect: connection refused")
