// Package rules composes literal-pattern predicates into per-category rule
// sets and evaluates them against extracted source text.
package rules

import (
	"strings"

	"github.com/fatih/camelcase"

	"github.com/shellcon/aquacheck/internal/domain"
	"github.com/shellcon/aquacheck/internal/domain/extract"
)

// Predicate is a named condition with the message shown to the learner when
// it does not hold.
type Predicate struct {
	Name  string
	Unmet string
	Expr  Expr
}

// Signal is a named condition recorded as evidence without gating validity.
type Signal struct {
	Name string
	Expr Expr
}

// Counter is a named quantity recorded as evidence.
type Counter struct {
	Name     string
	Quantity Quantity
}

// Set is the rule set of one defect category.
type Set struct {
	Category   domain.Category
	Predicates []Predicate
	Signals    []Signal
	Counters   []Counter
}

// Evaluate runs every predicate of set against region and doc. All
// predicates are evaluated regardless of earlier failures and results keep
// declaration order.
func Evaluate(set Set, region extract.Region, doc string) domain.StaticRuleResult {
	in := Input{Region: region.Text, Document: doc}
	res := domain.StaticRuleResult{
		Category:       set.Category,
		RegionDegraded: region.Degraded,
		Predicates:     make([]domain.PredicateResult, 0, len(set.Predicates)),
	}
	for _, p := range set.Predicates {
		pr := domain.PredicateResult{Name: p.Name, Passed: p.Expr(in)}
		if !pr.Passed {
			pr.Unmet = p.Unmet
		}
		res.Predicates = append(res.Predicates, pr)
	}
	if len(set.Signals) > 0 {
		res.Signals = make(map[string]bool, len(set.Signals))
		for _, s := range set.Signals {
			res.Signals[DetailKey(s.Name)] = s.Expr(in)
		}
	}
	if len(set.Counters) > 0 {
		res.Counts = make(map[string]int, len(set.Counters))
		for _, c := range set.Counters {
			res.Counts[DetailKey(c.Name)] = c.Quantity(in)
		}
	}
	return res
}

// DetailKey converts a CamelCase predicate name into the snake_case key used
// in verdict details and log attributes: "UsesAsyncIO" -> "uses_async_io".
func DetailKey(name string) string {
	words := camelcase.Split(name)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}
