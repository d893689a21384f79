package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Category identifies one planted defect class.
type Category string

const (
	CategoryAsyncIO           Category = "async_io"
	CategoryQueryOptimization Category = "query_optimization"
	CategoryMemoryAllocation  Category = "memory_allocation"
	CategoryResourceLeak      Category = "resource_leak"
	CategoryConcurrency       Category = "concurrency"
)

// ValidCategories enumerates all defect categories in challenge order.
var ValidCategories = []Category{
	CategoryAsyncIO,
	CategoryQueryOptimization,
	CategoryMemoryAllocation,
	CategoryResourceLeak,
	CategoryConcurrency,
}

// ChallengeID returns the 1-based challenge number that verifies c.
func (c Category) ChallengeID() int {
	for i, v := range ValidCategories {
		if v == c {
			return i + 1
		}
	}
	return 0
}

// CategoryForChallenge maps a challenge number to its category.
func CategoryForChallenge(id int) (Category, error) {
	if id < 1 || id > len(ValidCategories) {
		return "", fmt.Errorf("%w: %d", ErrUnknownChallenge, id)
	}
	return ValidCategories[id-1], nil
}

// ParseCategory accepts either a category name ("async_io") or a challenge
// number ("1").
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if id, err := strconv.Atoi(s); err == nil {
		return CategoryForChallenge(id)
	}
	for _, c := range ValidCategories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownChallenge, s)
}

const (
	StatusNormal   = "normal"
	StatusDegraded = "degraded"
)

// SystemComponent describes the lab component a verdict reports on.
type SystemComponent struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// Verdict is the outcome of one verification call. It is built fresh per
// call and never persisted.
type Verdict struct {
	Valid           bool            `json:"valid"`
	Message         string          `json:"message"`
	SystemComponent SystemComponent `json:"system_component"`
	Details         Details         `json:"details,omitempty"`

	// Issues lists the unmet conditions of a failing verdict in order.
	Issues []string `json:"-"`
}

// Details carries category-specific numeric and boolean evidence.
type Details map[string]any

// Component names the lab component behind a category along with the
// descriptions used for healthy and unhealthy verdicts.
type Component struct {
	Name        string
	Healthy     string
	Degraded    string
	SuccessText string
}

// Revision identifies the learner's working copy at verification time.
type Revision struct {
	Commit string `json:"commit"`
	Branch string `json:"branch,omitempty"`
	Dirty  bool   `json:"dirty"`
}

// Short returns the abbreviated commit hash.
func (r Revision) Short() string {
	if len(r.Commit) > 7 {
		return r.Commit[:7]
	}
	return r.Commit
}

// Label renders the revision as branch@short, marking uncommitted changes.
func (r Revision) Label() string {
	s := r.Short()
	if r.Branch != "" {
		s = r.Branch + "@" + s
	}
	if r.Dirty {
		s += " (modified)"
	}
	return s
}
