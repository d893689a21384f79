package rules

import "github.com/shellcon/aquacheck/internal/domain/match"

// Scope selects which text a pattern is matched against.
type Scope int

const (
	// InRegion matches against the marker-delimited region.
	InRegion Scope = iota
	// InDocument matches against the whole source document.
	InDocument
)

func (s Scope) String() string {
	if s == InDocument {
		return "document"
	}
	return "region"
}

// Input is the text a rule set is evaluated against.
type Input struct {
	Region   string
	Document string
}

func (in Input) text(s Scope) string {
	if s == InDocument {
		return in.Document
	}
	return in.Region
}

// Expr is a boolean condition over an Input.
type Expr func(Input) bool

// Quantity is an integer measurement over an Input.
type Quantity func(Input) int

// Live holds when pattern occurs on a non-commented line of scope.
func Live(scope Scope, pattern string) Expr {
	return func(in Input) bool { return match.IsLive(in.text(scope), pattern) }
}

// All holds when every expression holds. All() is true.
func All(exprs ...Expr) Expr {
	return func(in Input) bool {
		for _, e := range exprs {
			if !e(in) {
				return false
			}
		}
		return true
	}
}

// Any holds when at least one expression holds. Any() is false.
func Any(exprs ...Expr) Expr {
	return func(in Input) bool {
		for _, e := range exprs {
			if e(in) {
				return true
			}
		}
		return false
	}
}

// Not negates e.
func Not(e Expr) Expr {
	return func(in Input) bool { return !e(in) }
}

// Requires holds when every pattern is live in scope.
func Requires(scope Scope, patterns ...string) Expr {
	exprs := make([]Expr, len(patterns))
	for i, p := range patterns {
		exprs[i] = Live(scope, p)
	}
	return All(exprs...)
}

// AnyLive holds when at least one pattern is live in scope.
func AnyLive(scope Scope, patterns ...string) Expr {
	exprs := make([]Expr, len(patterns))
	for i, p := range patterns {
		exprs[i] = Live(scope, p)
	}
	return Any(exprs...)
}

// Forbids holds when none of the patterns is live in scope.
func Forbids(scope Scope, patterns ...string) Expr {
	return Not(AnyLive(scope, patterns...))
}

// CountLive counts the live lines of scope containing pattern.
func CountLive(scope Scope, pattern string) Quantity {
	return func(in Input) int { return match.CountLive(in.text(scope), pattern) }
}

// CountLiveWithout counts the live lines of scope containing pattern and
// none of excludes.
func CountLiveWithout(scope Scope, pattern string, excludes ...string) Quantity {
	return func(in Input) int { return match.CountLiveWithout(in.text(scope), pattern, excludes...) }
}

// Below holds when q is strictly less than limit.
func Below(q Quantity, limit int) Expr {
	return func(in Input) bool { return q(in) < limit }
}

// AtMost holds when q does not exceed limit.
func AtMost(q Quantity, limit int) Expr {
	return func(in Input) bool { return q(in) <= limit }
}
