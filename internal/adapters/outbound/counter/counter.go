// Package counter samples monotonically increasing process counters, either
// scraped from a Prometheus text endpoint or read from an in-process
// collector.
package counter

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/prometheus/common/model"
)

// ScrapeTimeout bounds a single scrape request.
const ScrapeTimeout = 2 * time.Second

// Scraper reads one counter from a Prometheus text exposition over HTTP.
type Scraper struct {
	URL    string
	Name   string
	Client *http.Client
}

// Scrape returns a Scraper for the counter called name exposed at url.
func Scrape(url, name string, client *http.Client) *Scraper {
	if client == nil {
		client = &http.Client{Timeout: ScrapeTimeout}
	}
	return &Scraper{URL: url, Name: name, Client: client}
}

func (s *Scraper) Sample(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, ScrapeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return 0, fmt.Errorf("building scrape request: %w", err)
	}
	req.Header.Set("Accept", string(expfmt.NewFormat(expfmt.TypeTextPlain)))

	resp, err := s.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("scraping %s: %w", s.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("scraping %s: unexpected status %d", s.URL, resp.StatusCode)
	}

	parser := expfmt.NewTextParser(model.UTF8Validation)
	families, err := parser.TextToMetricFamilies(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("parsing exposition from %s: %w", s.URL, err)
	}
	mf, ok := families[s.Name]
	if !ok {
		return 0, fmt.Errorf("metric %q not exposed at %s", s.Name, s.URL)
	}
	return sum(mf)
}

// sum adds up every series of a counter or untyped family.
func sum(mf *dto.MetricFamily) (int64, error) {
	var total float64
	for _, m := range mf.GetMetric() {
		switch {
		case m.GetCounter() != nil:
			total += m.GetCounter().GetValue()
		case m.GetUntyped() != nil:
			total += m.GetUntyped().GetValue()
		case m.GetGauge() != nil:
			total += m.GetGauge().GetValue()
		default:
			return 0, fmt.Errorf("metric %q is a %s, not a counter", mf.GetName(), mf.GetType())
		}
	}
	return int64(total), nil
}

// LocalSampler reads an in-process counter.
type LocalSampler struct {
	c prometheus.Counter
}

// Local returns a sampler over c.
func Local(c prometheus.Counter) *LocalSampler {
	return &LocalSampler{c: c}
}

func (l *LocalSampler) Sample(context.Context) (int64, error) {
	var m dto.Metric
	if err := l.c.Write(&m); err != nil {
		return 0, fmt.Errorf("reading counter: %w", err)
	}
	return int64(m.GetCounter().GetValue()), nil
}
