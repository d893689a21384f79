package rules

import "github.com/shellcon/aquacheck/internal/domain"

// AsyncIO checks that get_tank_readings reads its settings file without
// blocking the runtime. With tracing required, the async work must also
// run inside a tracing span.
func AsyncIO(requireTracing bool) Set {
	set := Set{
		Category: domain.CategoryAsyncIO,
		Predicates: []Predicate{
			{
				Name:  "UsesAsyncIO",
				Unmet: "Make sure you're using async file operations (e.g., tokio::fs)",
				Expr: Any(
					Live(InRegion, "tokio::fs"),
					Live(InRegion, "async_std::fs"),
					All(
						Live(InRegion, ".await"),
						AnyLive(InRegion, "read_to_string", "read_file"),
					),
				),
			},
			{
				Name:  "NoBlockingSleep",
				Unmet: "Remove the blocking sleep (thread::sleep) from the async handler",
				Expr:  Forbids(InRegion, "thread::sleep"),
			},
			{
				Name:  "NoBlockingRead",
				Unmet: "Remove blocking file reads (std::fs::read) from the async handler",
				Expr:  Forbids(InRegion, "std::fs::read"),
			},
		},
	}
	if requireTracing {
		set.Predicates = append(set.Predicates, Predicate{
			Name:  "HasSpanInstrumentation",
			Unmet: "Ensure proper tracing implementation for async operations (create an info_span! and attach it with .instrument or .in_scope)",
			Expr: All(
				AnyLive(InRegion, "info_span!", "tracing::info_span"),
				AnyLive(InRegion, ".in_scope", ".instrument"),
			),
		})
	}
	return set
}
