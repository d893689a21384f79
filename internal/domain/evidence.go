package domain

import "time"

// PredicateResult is the outcome of one named rule predicate.
type PredicateResult struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Unmet  string `json:"unmet,omitempty"`
}

// StaticRuleResult is the evidence produced by evaluating a rule set against
// source text.
type StaticRuleResult struct {
	Category       Category          `json:"category"`
	RegionDegraded bool              `json:"region_degraded"`
	Predicates     []PredicateResult `json:"predicates"`
	// Signals are informational checks that do not gate validity on their
	// own, such as the individual alternatives of an Any predicate.
	Signals map[string]bool `json:"signals,omitempty"`
	Counts  map[string]int  `json:"counts,omitempty"`
}

// Passed reports whether every predicate held.
func (r StaticRuleResult) Passed() bool {
	for _, p := range r.Predicates {
		if !p.Passed {
			return false
		}
	}
	return true
}

// Failures returns the unmet predicates in declaration order.
func (r StaticRuleResult) Failures() []PredicateResult {
	var out []PredicateResult
	for _, p := range r.Predicates {
		if !p.Passed {
			out = append(out, p)
		}
	}
	return out
}

// Timing is one timed benchmark operation.
type Timing struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration"`
	Err      string        `json:"error,omitempty"`
}

// Millis returns the duration in fractional milliseconds, never negative.
func (t Timing) Millis() float64 {
	if t.Duration < 0 {
		return 0
	}
	return float64(t.Duration) / float64(time.Millisecond)
}

// BenchmarkResult holds the two sequential timings of an A/B experiment.
type BenchmarkResult struct {
	A Timing `json:"a"`
	B Timing `json:"b"`
}

// CounterObservation is a before/after sample of a process-lifetime counter.
type CounterObservation struct {
	Available bool   `json:"available"`
	Before    int64  `json:"before"`
	After     int64  `json:"after"`
	Err       string `json:"error,omitempty"`
}

// Growth is the number of increments observed between the two samples.
func (o CounterObservation) Growth() int64 {
	if !o.Available {
		return 0
	}
	return o.After - o.Before
}

// IntrospectionResult holds database-introspection checks, one predicate per
// inspected object.
type IntrospectionResult struct {
	Checks []PredicateResult `json:"checks"`
}
