package rules

import "github.com/shellcon/aquacheck/internal/domain"

// A Client::new() on the same line as one of these runs once, not per request.
var lazyWrappers = []string{"Lazy::new", "get_or_init", "lazy_static!"}

// ResourceLeak checks that get_sensor_status reuses one HTTP client instead
// of constructing a new one per request. The shared client may live in a
// lazily initialised static or in the application state.
func ResourceLeak() Set {
	return Set{
		Category: domain.CategoryResourceLeak,
		Predicates: []Predicate{
			{
				Name:  "HasSharedClient",
				Unmet: "Declare a shared HTTP client once, either as a static CLIENT with once_cell/lazy_static or as a reqwest::Client in AppState",
				Expr: AnyLive(InDocument,
					"static HTTP_CLIENT",
					"static CLIENT",
					"client: reqwest::Client",
					"http_client: reqwest::Client",
				),
			},
			{
				Name:  "UsesSharedClient",
				Unmet: "Use the shared HTTP client inside get_sensor_status",
				Expr: AnyLive(InRegion,
					"&*HTTP_CLIENT",
					"HTTP_CLIENT.",
					"&*CLIENT",
					"&CLIENT",
					"CLIENT.",
					"CLIENT",
					"state.client",
					"state.http_client",
				),
			},
			{
				Name:  "NoFreshClient",
				Unmet: "Stop constructing a new reqwest client (Client::new()) on every request",
				Expr: Any(
					AtMost(CountLiveWithout(InRegion, "Client::new()", lazyWrappers...), 0),
					All(
						Live(InDocument, "client: reqwest::Client"),
						AtMost(CountLive(InDocument, "Client::new()"), 1),
					),
				),
			},
		},
		Counters: []Counter{
			{Name: "ClientConstructions", Quantity: CountLive(InRegion, "Client::new()")},
		},
	}
}
