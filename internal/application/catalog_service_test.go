package application_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shellcon/aquacheck/internal/application"
	"github.com/shellcon/aquacheck/internal/domain"
)

func lecture(name string) string {
	return filepath.Join(workspace, labConfig().LecturesDir, name)
}

func TestSplitSolution(t *testing.T) {
	content := "```rust\nstatic CLIENT: Lazy<Client> = Lazy::new(Client::new);\nfn a() {}\n```\n\nReuse one client for every request.\n"

	code, explanation := application.SplitSolution(content)

	assert.Equal(t, "static CLIENT: Lazy<Client> = Lazy::new(Client::new);\nfn a() {}", code)
	assert.Equal(t, "Reuse one client for every request.", explanation)
}

func TestSplitSolution_EdgeCases(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		code        string
		explanation string
	}{
		{"no fence", "Just prose.", "", "Just prose."},
		{"no explanation", "```go\nx := 1\n```\n", "x := 1", "Solution explanation unavailable"},
		{"unterminated fence", "```\nx := 1\n", "x := 1", "Solution explanation unavailable"},
		{"only first block", "intro\n```\na\n```\nwhy\n```\nb\n```", "a", "why\n```\nb\n```"},
		{"tilde fence", "~~~rust\nlet a = 1;\n~~~\nTilde fences count too.", "let a = 1;", "Tilde fences count too."},
		{"backticks in prose are not a fence", "Use `Client::new()` once.\n\n```rust\nCLIENT.get(u)\n```\nDone.", "CLIENT.get(u)", "Done."},
		{"empty block", "```rust\n```\nNothing to change.", "", "Nothing to change."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, explanation := application.SplitSolution(tt.content)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.explanation, explanation)
		})
	}
}

func TestCatalog_LoadsLectures(t *testing.T) {
	files := map[string]string{
		lecture("challenge1.md"):          "# Blocking I/O\n",
		lecture("challenge1_solution.md"): "```rust\nlet s = tokio::fs::read_to_string(p).await?;\n```\nUse tokio::fs.",
	}
	svc := application.NewCatalogService(labConfig(), &fakeReader{files: files}, nil, nil)

	cat, err := svc.Catalog(context.Background(), false)
	require.NoError(t, err)

	require.Len(t, cat.Challenges, 5)
	assert.Equal(t, 5, cat.Total)
	assert.Equal(t, 0, cat.Solved)

	first := cat.Challenges[0]
	assert.Equal(t, "async-io", first.Name)
	assert.Equal(t, "# Blocking I/O\n", first.Solution.Lecture)
	assert.Equal(t, "let s = tokio::fs::read_to_string(p).await?;", first.Solution.Code)
	assert.Equal(t, "Use tokio::fs.", first.Solution.Explanation)
	assert.Equal(t, domain.StatusDegraded, first.Status)
}

func TestCatalog_MissingFilesUsePlaceholders(t *testing.T) {
	svc := application.NewCatalogService(labConfig(), &fakeReader{}, nil, nil)

	ch, err := svc.Challenge(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, "# Lecture for Challenge #2\n\nLecture content could not be loaded.", ch.Solution.Lecture)
	assert.Equal(t, "// Solution code for Challenge #2 unavailable", ch.Solution.Code)
	assert.Equal(t, "Solution explanation for Challenge #2 unavailable", ch.Solution.Explanation)
}

func TestCatalog_UnknownChallenge(t *testing.T) {
	svc := application.NewCatalogService(labConfig(), &fakeReader{}, nil, nil)
	_, err := svc.Challenge(context.Background(), 6)
	assert.ErrorIs(t, err, domain.ErrUnknownChallenge)
}

func TestCatalog_WithStatusCountsSolved(t *testing.T) {
	verifier := application.NewVerifyService(labConfig(), &fakeReader{files: labFiles()}, &fakeProbe{})
	svc := application.NewCatalogService(labConfig(), &fakeReader{}, verifier, nil)

	cat, err := svc.Catalog(context.Background(), true)
	require.NoError(t, err)

	// Every lab fixture is solved.
	assert.Equal(t, 5, cat.Solved)
	for _, ch := range cat.Challenges {
		assert.Equal(t, domain.StatusNormal, ch.Status, ch.Name)
	}
}
