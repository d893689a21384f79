package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shellcon/aquacheck/internal/adapters/inbound/cli"
	"github.com/shellcon/aquacheck/internal/domain"
)

const solvedBrain = `// ⚠️ CHALLENGE #3: STRING ALLOCATION OPTIMIZATION ⚠️
pub fn get_analysis_result(params: AnalysisParams) -> AnalysisResult {
    let status = HealthStatus::Normal;
    AnalysisResult { tank_id: params.tank_id.unwrap_or_default().to_string(), status }
}
// ⚠️ END CHALLENGE CODE ⚠️
`

const unsolvedBrain = `// ⚠️ CHALLENGE #3: STRING ALLOCATION OPTIMIZATION ⚠️
pub fn get_analysis_result(params: AnalysisParams) -> AnalysisResult {
    let status = "Normal".to_string();
    AnalysisResult { tank_id: params.tank_id.unwrap_or_default().to_string(), status }
}
// ⚠️ END CHALLENGE CODE ⚠️
`

func labWorkspace(t *testing.T, brain string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, domain.DefaultConfig().MemoryAllocation.Path)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(brain), 0644))
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "aquacheck dev")
}

func TestCommandsExist(t *testing.T) {
	for _, args := range [][]string{
		{"serve", "--help"},
		{"verify", "--help"},
		{"challenges", "--help"},
		{"lecture", "--help"},
		{"mcp", "--help"},
		{"mcp", "serve", "--help"},
	} {
		_, err := run(t, args...)
		assert.NoError(t, err, "%v", args)
	}
}

func TestVerifyCommand_JSON(t *testing.T) {
	dir := labWorkspace(t, solvedBrain)

	out, err := run(t, "verify", "3", "--json", "--workspace", dir)
	require.NoError(t, err)

	var v domain.Verdict
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.True(t, v.Valid, v.Message)
	assert.Equal(t, "Analysis Engine", v.SystemComponent.Name)
	assert.Equal(t, true, v.Details["uses_enums"])
}

func TestVerifyCommand_Rendered(t *testing.T) {
	dir := labWorkspace(t, unsolvedBrain)

	out, err := run(t, "verify", "memory_allocation", "--workspace", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Analysis Engine")
	assert.Contains(t, out, "DEGRADED")
	assert.Contains(t, out, "Issues to address")
}

func TestVerifyCommand_CheckFailsOnInvalid(t *testing.T) {
	dir := labWorkspace(t, unsolvedBrain)

	_, err := run(t, "verify", "3", "--check", "--json", "--workspace", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not solved")
}

func TestVerifyCommand_MissingSourceIsUnverifiable(t *testing.T) {
	out, err := run(t, "verify", "3", "--json", "--workspace", t.TempDir())
	require.NoError(t, err)

	var v domain.Verdict
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.False(t, v.Valid)
	assert.Contains(t, v.Message, "Unable to verify implementation")
}

func TestVerifyCommand_UnknownChallenge(t *testing.T) {
	_, err := run(t, "verify", "6", "--workspace", t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownChallenge)
}

func TestVerifyCommand_InvalidConfig(t *testing.T) {
	dir := labWorkspace(t, solvedBrain)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".aquacheck.yaml"), []byte("log_level: loud\n"), 0644))

	_, err := run(t, "verify", "3", "--workspace", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid .aquacheck.yaml")
}

func TestVerifyCommand_ExplicitConfig(t *testing.T) {
	dir := labWorkspace(t, unsolvedBrain)
	cfgPath := filepath.Join(t.TempDir(), "lab.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("memory_allocation:\n  max_heap_conversions: 1\n"), 0644))

	out, err := run(t, "verify", "3", "--json", "--workspace", dir, "--config", cfgPath)
	require.NoError(t, err)

	var v domain.Verdict
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, float64(1), v.Details["max_heap_conversions"])
}

func TestChallengesCommand_JSON(t *testing.T) {
	out, err := run(t, "challenges", "--json", "--workspace", t.TempDir())
	require.NoError(t, err)

	var cat domain.Catalog
	require.NoError(t, json.Unmarshal([]byte(out), &cat))
	assert.Equal(t, 5, cat.Total)
	assert.Equal(t, 0, cat.Solved)
	assert.Contains(t, cat.Challenges[0].Solution.Lecture, "could not be loaded")
}

func TestChallengesCommand_Rendered(t *testing.T) {
	out, err := run(t, "challenges", "--workspace", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "0 / 5 solved")
	assert.Contains(t, out, "The Leaky Connection")
}

func TestLectureCommand(t *testing.T) {
	dir := labWorkspace(t, solvedBrain)
	lectures := filepath.Join(dir, domain.DefaultConfig().LecturesDir)
	require.NoError(t, os.MkdirAll(lectures, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(lectures, "challenge3.md"),
		[]byte("# String Allocation\n\nPrefer enums over owned strings.\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(lectures, "challenge3_solution.md"),
		[]byte("```rust\nlet status = HealthStatus::Normal;\n```\nEnum variants cost nothing to copy.\n"), 0644))

	out, err := run(t, "lecture", "memory_allocation", "--style", "notty", "--workspace", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "String Allocation")
	assert.Contains(t, out, "Prefer enums over owned strings.")
	assert.NotContains(t, out, "HealthStatus::Normal")

	out, err = run(t, "lecture", "3", "--solution", "--style", "notty", "--workspace", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "HealthStatus::Normal")
	assert.Contains(t, out, "Enum variants cost nothing to copy.")
}

func TestLectureCommand_UnknownChallenge(t *testing.T) {
	_, err := run(t, "lecture", "9", "--workspace", t.TempDir())
	assert.ErrorIs(t, err, domain.ErrUnknownChallenge)
}
