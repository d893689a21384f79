package extract_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shellcon/aquacheck/internal/domain"
	"github.com/shellcon/aquacheck/internal/domain/extract"
	"github.com/stretchr/testify/assert"
)

var asyncMarkers = domain.DefaultConfig().AsyncIO.Markers

func TestFromMarkers_DecoratedMarkers(t *testing.T) {
	doc := "use std::fs;\n// ⚠️ CHALLENGE #1: ASYNC I/O ⚠️\nlet x = tokio::fs::read(p).await;\n// ⚠️ END CHALLENGE CODE ⚠️\nfn other() {}\n"

	r := extract.FromMarkers(doc, asyncMarkers)

	assert.False(t, r.Degraded)
	assert.True(t, strings.HasPrefix(r.Text, "// ⚠️ CHALLENGE #1: ASYNC I/O ⚠️"))
	assert.Contains(t, r.Text, "tokio::fs::read")
	assert.NotContains(t, r.Text, "END CHALLENGE CODE")
	assert.NotContains(t, r.Text, "fn other")
	assert.True(t, utf8.ValidString(r.Text))
}

func TestFromMarkers_EarliestStartWinsAcrossCandidates(t *testing.T) {
	// "// Challenge 1" appears before the decorated marker; the earliest
	// offset wins even though it is a later candidate.
	doc := "// Challenge 1\nearly\n// ⚠️ CHALLENGE #1: ASYNC I/O ⚠️\nlate\n// END CHALLENGE CODE\n"

	r := extract.FromMarkers(doc, asyncMarkers)

	assert.False(t, r.Degraded)
	assert.Equal(t, 0, r.Start)
	assert.Contains(t, r.Text, "early")
	assert.Contains(t, r.Text, "late")
}

func TestFromMarkers_EndSearchedAfterStart(t *testing.T) {
	doc := "// END CHALLENGE CODE\nheader\n// CHALLENGE #1\nbody\n// End Challenge 1\ntrailer"

	r := extract.FromMarkers(doc, asyncMarkers)

	assert.False(t, r.Degraded)
	assert.Equal(t, "// CHALLENGE #1\nbody\n", r.Text)
}

func TestFromMarkers_EarliestEndWins(t *testing.T) {
	doc := "// CHALLENGE #1\nbody\n// End Challenge 1\nmore\n// ⚠️ END CHALLENGE CODE ⚠️\n"

	r := extract.FromMarkers(doc, asyncMarkers)

	assert.Equal(t, "// CHALLENGE #1\nbody\n", r.Text)
}

func TestFromMarkers_DegradesToWholeDocument(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no markers", "fn main() {}\n"},
		{"start only", "// CHALLENGE #1\nfn main() {}\n"},
		{"end before start", "// END CHALLENGE CODE\nfn main() {}\n// CHALLENGE #1\n"},
		{"empty document", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := extract.FromMarkers(tt.doc, asyncMarkers)
			assert.True(t, r.Degraded)
			assert.Equal(t, tt.doc, r.Text)
			assert.Equal(t, 0, r.Start)
			assert.Equal(t, len(tt.doc), r.End)
		})
	}
}

func TestFromMarkers_EmptyCandidatesIgnored(t *testing.T) {
	doc := "abc"
	r := extract.FromMarkers(doc, domain.MarkerSet{Start: []string{""}, End: []string{""}})
	assert.True(t, r.Degraded)
	assert.Equal(t, "abc", r.Text)
}

func TestFromMarkers_NonEmptyInputNeverYieldsEmptyRegion(t *testing.T) {
	docs := []string{
		"x",
		"// CHALLENGE #1",
		"// ⚠️ CHALLENGE #1: ASYNC I/O ⚠️// ⚠️ END CHALLENGE CODE ⚠️",
		"ü // End Challenge 1 // Challenge 1",
	}
	for _, doc := range docs {
		r := extract.FromMarkers(doc, asyncMarkers)
		assert.NotEmpty(t, r.Text, doc)
		assert.True(t, utf8.ValidString(r.Text), doc)
	}
}
