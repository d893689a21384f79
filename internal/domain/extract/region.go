package extract

import (
	"strings"

	"github.com/shellcon/aquacheck/internal/domain"
)

// Region is the slice of a source document a rule set inspects.
type Region struct {
	Text string
	// Start and End are byte offsets into the document. For a degraded
	// region they span the whole document.
	Start, End int
	// Degraded is set when the markers did not resolve and Text is the
	// whole document.
	Degraded bool
}

// FromMarkers extracts the text between the earliest start marker and the
// earliest end marker that follows it. The end marker itself is excluded.
// When no start marker is present, or no end marker follows it, the whole
// document is returned with Degraded set.
func FromMarkers(doc string, markers domain.MarkerSet) Region {
	start := earliest(doc, markers.Start, 0)
	if start < 0 {
		return whole(doc)
	}
	end := earliest(doc, markers.End, start)
	if end < 0 {
		return whole(doc)
	}
	return Region{Text: doc[start:end], Start: start, End: end}
}

// earliest returns the smallest offset at or after from where any candidate
// occurs, or -1.
func earliest(doc string, candidates []string, from int) int {
	best := -1
	for _, c := range candidates {
		if c == "" {
			continue
		}
		i := strings.Index(doc[from:], c)
		if i < 0 {
			continue
		}
		if off := from + i; best < 0 || off < best {
			best = off
		}
	}
	return best
}

func whole(doc string) Region {
	return Region{Text: doc, Start: 0, End: len(doc), Degraded: true}
}
