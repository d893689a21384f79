// Package probe builds the timed operations used by benchmarks: local file
// reads and HTTP requests against the lab services.
package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/shellcon/aquacheck/internal/domain"
)

// DefaultTimeout bounds every outbound probe request.
const DefaultTimeout = 2 * time.Second

// Client implements domain.Probe. One Client is created per process and
// shared by all verifications.
type Client struct {
	http    *http.Client
	timeout time.Duration
}

// New creates the shared probe client and counts the construction on
// created, which may be nil.
func New(timeout time.Duration, created prometheus.Counter) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if created != nil {
		created.Inc()
	}
	return &Client{
		http: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConnsPerHost: 32,
				IdleConnTimeout:     30 * time.Second,
			},
		},
		timeout: timeout,
	}
}

// Close releases idle connections held by the shared transport.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

func (c *Client) BlockingFileRead(path string) domain.Operation {
	return domain.Operation{
		Name: "blocking_file_read",
		Run: func(context.Context) error {
			_, err := os.ReadFile(path)
			return err
		},
	}
}

func (c *Client) AsyncFileRead(path string) domain.Operation {
	return domain.Operation{
		Name: "async_file_read",
		Run: func(ctx context.Context) error {
			done := make(chan error, 1)
			go func() {
				_, err := os.ReadFile(path)
				done <- err
			}()
			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	}
}

func (c *Client) Get(url string) domain.Operation {
	return domain.Operation{
		Name:     "get",
		Run:      func(ctx context.Context) error { return c.get(ctx, url) },
		Fallback: c.timeout,
	}
}

func (c *Client) ParallelGet(url string, n int) domain.Operation {
	return domain.Operation{
		Name: "parallel_get",
		Run: func(ctx context.Context) error {
			g, gctx := errgroup.WithContext(ctx)
			for i := 0; i < n; i++ {
				g.Go(func() error { return c.get(gctx, url) })
			}
			return g.Wait()
		},
		Fallback: c.timeout,
	}
}

// Trigger returns a domain.Trigger that issues one GET to url per Fire.
func (c *Client) Trigger(url string) domain.Trigger {
	return triggerFunc(func(ctx context.Context) error { return c.get(ctx, url) })
}

type triggerFunc func(ctx context.Context) error

func (f triggerFunc) Fire(ctx context.Context) error { return f(ctx) }

func (c *Client) get(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
	}
	return nil
}
