package rules

import "github.com/shellcon/aquacheck/internal/domain"

func ilikeOn(column string) Expr {
	return AnyLive(InRegion,
		"WHERE "+column+" ILIKE",
		"AND "+column+" ILIKE",
		"OR "+column+" ILIKE",
	)
}

// QueryOptimization checks that get_species searches both name columns
// case-insensitively with ILIKE so trigram indexes can serve the query.
func QueryOptimization() Set {
	return Set{
		Category: domain.CategoryQueryOptimization,
		Predicates: []Predicate{
			{
				Name:  "NameCaseInsensitive",
				Unmet: "Source code does not use ILIKE for name searches",
				Expr:  ilikeOn("name"),
			},
			{
				Name:  "ScientificNameCaseInsensitive",
				Unmet: "Source code does not use ILIKE for scientific_name searches",
				Expr:  ilikeOn("scientific_name"),
			},
			{
				Name:  "NoCaseSensitiveLike",
				Unmet: "Source code still uses LIKE instead of ILIKE for some queries",
				Expr:  Forbids(InRegion, "name LIKE "),
			},
		},
	}
}
