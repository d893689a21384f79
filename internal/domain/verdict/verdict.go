// Package verdict turns evaluated evidence into the learner-facing result.
package verdict

import (
	"strings"

	"github.com/shellcon/aquacheck/internal/domain"
)

const (
	failurePrefix      = "Solution validation failed. Issues to address: "
	unverifiablePrefix = "Validation failed: Unable to verify implementation."
	checkFailedPrefix  = "Validation failed: Could not perform database checks for the pg_trgm extension or indexes."
)

// Build returns a passing verdict when failures is empty and otherwise a
// failing one whose message lists every unmet condition in the given order.
func Build(c domain.Component, failures []domain.PredicateResult, details domain.Details) domain.Verdict {
	if len(failures) == 0 {
		return domain.Verdict{
			Valid:           true,
			Message:         c.SuccessText,
			SystemComponent: component(c, true),
			Details:         details,
		}
	}
	msgs := make([]string, 0, len(failures))
	for _, f := range failures {
		msg := f.Unmet
		if msg == "" {
			msg = f.Name
		}
		msgs = append(msgs, msg)
	}
	return domain.Verdict{
		Valid:           false,
		Message:         failurePrefix + strings.Join(msgs, "; "),
		SystemComponent: component(c, false),
		Details:         details,
		Issues:          msgs,
	}
}

// Unverifiable reports that the source could not be read or inspected.
func Unverifiable(c domain.Component, reason string) domain.Verdict {
	return domain.Verdict{
		Valid:           false,
		Message:         withReason(unverifiablePrefix, reason),
		SystemComponent: component(c, false),
	}
}

// CheckFailed reports that the database checks could not run. It differs
// from a failed check by details.check_error.
func CheckFailed(c domain.Component, reason string) domain.Verdict {
	return domain.Verdict{
		Valid:           false,
		Message:         withReason(checkFailedPrefix, reason),
		SystemComponent: component(c, false),
		Details:         domain.Details{"check_error": true},
	}
}

func withReason(prefix, reason string) string {
	if reason = strings.TrimSpace(reason); reason == "" {
		return prefix
	}
	return prefix + " " + reason
}

func component(c domain.Component, healthy bool) domain.SystemComponent {
	if healthy {
		return domain.SystemComponent{Name: c.Name, Description: c.Healthy, Status: domain.StatusNormal}
	}
	return domain.SystemComponent{Name: c.Name, Description: c.Degraded, Status: domain.StatusDegraded}
}
