package rules

import (
	"fmt"

	"github.com/shellcon/aquacheck/internal/domain"
)

// ForCategory returns the configured static rule set for c. Concurrency has
// no static rules and yields an empty set.
func ForCategory(c domain.Category, cfg domain.Config) (Set, error) {
	switch c {
	case domain.CategoryAsyncIO:
		return AsyncIO(cfg.AsyncIO.TracingRequired()), nil
	case domain.CategoryQueryOptimization:
		return QueryOptimization(), nil
	case domain.CategoryMemoryAllocation:
		return MemoryAllocation(cfg.MemoryAllocation.MaxHeapConversions), nil
	case domain.CategoryResourceLeak:
		return ResourceLeak(), nil
	case domain.CategoryConcurrency:
		return Set{Category: c}, nil
	}
	return Set{}, fmt.Errorf("%w: %q", domain.ErrUnknownChallenge, c)
}
