package rules

import (
	"fmt"

	"github.com/shellcon/aquacheck/internal/domain"
)

const heapConversion = ".to_string()"

// MemoryAllocation checks that get_analysis_result keeps heap string
// conversions below maxConversions and uses at least one allocation-free
// representation for fixed values.
func MemoryAllocation(maxConversions int) Set {
	borrowed := AnyLive(InRegion, "&str", "&'static str")
	cow := AnyLive(InRegion, "Cow::", "std::borrow::Cow")
	interning := AnyLive(InRegion, "Intern::", "internment::")
	enums := AnyLive(InRegion, "::Warning", "::Normal", "::Critical", "::Unknown")

	return Set{
		Category: domain.CategoryMemoryAllocation,
		Predicates: []Predicate{
			{
				Name:  "FewHeapConversions",
				Unmet: fmt.Sprintf("Reduce %s allocations to fewer than %d", heapConversion, maxConversions),
				Expr:  Below(CountLive(InRegion, heapConversion), maxConversions),
			},
			{
				Name:  "AvoidsStringAllocation",
				Unmet: "Use enums for fixed values, &'static str, Cow<'a, str>, or interned strings instead of creating new String objects",
				Expr:  Any(borrowed, cow, interning, enums),
			},
		},
		Signals: []Signal{
			{Name: "UsesBorrowedStr", Expr: borrowed},
			{Name: "UsesCow", Expr: cow},
			{Name: "UsesInterning", Expr: interning},
			{Name: "UsesEnums", Expr: enums},
		},
		Counters: []Counter{
			{Name: "ToStringCount", Quantity: CountLive(InRegion, heapConversion)},
		},
	}
}
