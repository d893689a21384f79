package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shellcon/aquacheck/internal/application"
	"github.com/shellcon/aquacheck/internal/domain"
)

func TestRunBenchmark_Sequential(t *testing.T) {
	var order []string
	running := false
	op := func(name string) domain.Operation {
		return domain.Operation{Name: name, Run: func(context.Context) error {
			assert.False(t, running, "operations overlapped")
			running = true
			order = append(order, name)
			time.Sleep(2 * time.Millisecond)
			running = false
			return nil
		}}
	}

	res := application.RunBenchmark(context.Background(), nil, op("a"), op("b"))

	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, "a", res.A.Name)
	assert.Equal(t, "b", res.B.Name)
	assert.GreaterOrEqual(t, res.A.Duration, 2*time.Millisecond)
	assert.Empty(t, res.A.Err)
	assert.Empty(t, res.B.Err)
}

func TestRunBenchmark_FailureUsesFallback(t *testing.T) {
	failing := domain.Operation{
		Name:     "parallel_requests",
		Run:      func(context.Context) error { return errors.New("connection refused") },
		Fallback: 2 * time.Second,
	}
	ok := domain.Operation{Name: "single", Run: func(context.Context) error { return nil }}

	res := application.RunBenchmark(context.Background(), nil, ok, failing)

	assert.Empty(t, res.A.Err)
	assert.Equal(t, 2*time.Second, res.B.Duration)
	assert.Equal(t, "connection refused", res.B.Err)
	assert.InDelta(t, 2000.0, res.B.Millis(), 0.001)
}

func TestRunBenchmark_MissingRun(t *testing.T) {
	res := application.RunBenchmark(context.Background(), nil, domain.Operation{Name: "a"}, domain.Operation{Name: "b", Fallback: time.Second})
	assert.Equal(t, time.Duration(0), res.A.Duration)
	assert.NotEmpty(t, res.A.Err)
	assert.Equal(t, time.Second, res.B.Duration)
}
