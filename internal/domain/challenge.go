package domain

import "strconv"

// Endpoint locates the HTTP route that verifies a challenge.
type Endpoint struct {
	Service string `json:"service"`
	URL     string `json:"url"`
	Method  string `json:"method"`
}

// Solution is the learning material attached to a challenge.
type Solution struct {
	Code        string `json:"code"`
	Explanation string `json:"explanation"`
	Lecture     string `json:"lecture"`
}

// Challenge is the catalog entry for one planted defect.
type Challenge struct {
	ID                 int      `json:"id"`
	Category           Category `json:"category"`
	Name               string   `json:"name"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Hint               string   `json:"hint"`
	Service            string   `json:"service"`
	File               string   `json:"file"`
	Function           string   `json:"function"`
	Status             string   `json:"status"`
	ValidationEndpoint Endpoint `json:"validation_endpoint"`
	Solution           Solution `json:"solution"`
}

// Catalog is the challenge listing served to the lab frontend.
type Catalog struct {
	Challenges []Challenge `json:"challenges"`
	Total      int         `json:"total"`
	Solved     int         `json:"solved"`
}

func endpoint(service string, id int) Endpoint {
	return Endpoint{
		Service: service,
		URL:     "/api/challenges/" + strconv.Itoa(id) + "/validate",
		Method:  "GET",
	}
}

// Challenges returns the static catalog metadata in challenge order. The
// Solution fields are left empty; they are loaded from lecture files.
func Challenges() []Challenge {
	return []Challenge{
		{
			ID:          1,
			Category:    CategoryAsyncIO,
			Name:        "async-io",
			Title:       "The Blocking Bottleneck",
			Description: "The tank parameter validation process is using blocking I/O operations, causing performance issues during peak usage. This is causing the monitoring system to miss critical water quality changes.",
			Hint:        "The `get_tank_readings` function in `aqua-monitor` currently uses blocking I/O. Convert the blocking file operations to asynchronous ones and make sure the asynchronous work is instrumented with a tracing span attached to the task.",
			Service:     "aqua-monitor",
			File:        "src/challenges.rs",
			Function:    "get_tank_readings",
		},
		{
			ID:          2,
			Category:    CategoryQueryOptimization,
			Name:        "database-optimization",
			Title:       "The Slow Query",
			Description: "The species search functionality is extremely slow when users search for partial names. Database queries are taking too long, especially for text searches.",
			Hint:        "Look at how case-sensitivity is handled in the SQL queries. A performant fix enables a PostgreSQL extension and creates matching indexes in a new migration, and uses the case-insensitive pattern operator in the queries.",
			Service:     "species-hub",
			File:        "src/challenges.rs",
			Function:    "get_species",
		},
		{
			ID:          3,
			Category:    CategoryMemoryAllocation,
			Name:        "memory-optimization",
			Title:       "String Allocation Optimization",
			Description: "The analysis engine is using excessive memory, particularly when calculating status reports for multiple tanks. The issue seems to be with how strings are handled.",
			Hint:        "The `get_analysis_result` function is creating too many String objects. Use the enums already defined in `main.rs` and borrow fixed recommendation strings instead of allocating them.",
			Service:     "aqua-brain",
			File:        "src/challenges.rs",
			Function:    "get_analysis_result",
		},
		{
			ID:          4,
			Category:    CategoryResourceLeak,
			Name:        "resource-leak",
			Title:       "The Leaky Connection",
			Description: "The sensor status API is creating a new HTTP client for every request, causing excessive resource usage and potential memory leaks.",
			Hint:        "The `get_sensor_status` function creates a new HTTP client for each request. Initialize a `reqwest::Client` once, store it in the service's `AppState` or a lazily initialized static, and reuse it from the handler.",
			Service:     "aqua-monitor",
			File:        "src/challenges.rs",
			Function:    "get_sensor_status",
		},
		{
			ID:          5,
			Category:    CategoryConcurrency,
			Name:        "concurrency",
			Title:       "The Locked Cache",
			Description: "Tank analysis requests queue up behind each other. The analysis cache is guarded by a single global lock that is held for the whole computation.",
			Hint:        "Shorten the critical section of the tank analysis cache or switch to a structure that lets concurrent readers proceed without waiting on one another.",
			Service:     "aqua-brain",
			File:        "src/challenges.rs",
			Function:    "get_all_tank_analysis",
		},
	}
}

// ChallengeByID returns the catalog entry for id with status and endpoint
// filled in.
func ChallengeByID(id int) (Challenge, error) {
	if _, err := CategoryForChallenge(id); err != nil {
		return Challenge{}, err
	}
	c := Challenges()[id-1]
	c.Status = StatusDegraded
	c.ValidationEndpoint = endpoint(c.Service, c.ID)
	return c, nil
}

// ComponentFor returns the lab component verified by category c.
func ComponentFor(c Category) Component {
	switch c {
	case CategoryAsyncIO:
		return Component{
			Name:        "Tank Readings API",
			Healthy:     "Tank readings API is now using async I/O operations with proper tracing",
			Degraded:    "Tank readings API is experiencing high latency due to blocking I/O or improper tracing",
			SuccessText: "Solution correctly implemented! Async I/O is now being used with proper tracing.",
		}
	case CategoryQueryOptimization:
		return Component{
			Name:        "Species Database",
			Healthy:     "Species database search is now optimized",
			Degraded:    "Species database search is experiencing slowdowns or is misconfigured",
			SuccessText: "Solution correctly implemented! Database is optimized with pg_trgm and GIN indexes, and queries use ILIKE.",
		}
	case CategoryMemoryAllocation:
		return Component{
			Name:        "Analysis Engine",
			Healthy:     "Analysis engine memory usage is now optimized",
			Degraded:    "Analysis engine is experiencing high memory usage",
			SuccessText: "Solution correctly implemented! Memory usage is now optimized.",
		}
	case CategoryResourceLeak:
		return Component{
			Name:        "Sensor Status API",
			Healthy:     "Sensor status API is now resource-efficient",
			Degraded:    "Sensor status API is creating too many client instances",
			SuccessText: "Solution correctly implemented! HTTP client is now shared and resource-efficient.",
		}
	case CategoryConcurrency:
		return Component{
			Name:        "Tank Analysis Cache",
			Healthy:     "Tank analysis cache serves concurrent requests without contention",
			Degraded:    "Tank analysis cache is serializing concurrent requests behind a global lock",
			SuccessText: "Solution correctly implemented! Concurrent analysis requests are no longer serialized.",
		}
	}
	return Component{Name: string(c)}
}
