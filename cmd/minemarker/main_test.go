package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/minemarker/internal/gdl"
	"github.com/vovakirdan/minemarker/internal/storage"
)

// execute runs the root command in an isolated home directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() {
		flagConfig, flagDBPath, flagScenarios, flagLogLevel = "", "", "", ""
		flagScenario, flagRecord, flagLabel = "", false, ""
		flagOut = ""
		flagLimit, flagRecent, flagClear = 10, false, false
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMarkFiles(t *testing.T) {
	dir := t.TempDir()
	field := writeFile(t, dir, "field.txt", "b..b\n")
	script := writeFile(t, dir, "script.txt", "gamma\neast gamma\n")

	out, err := execute(t, "mark", field, script)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Equal(t, "Step 1", lines[0])
	assert.Equal(t, "pass (8)", lines[len(lines)-1])
	assert.Contains(t, out, "east gamma")
}

func TestMarkScenarioAndRecord(t *testing.T) {
	db := filepath.Join(t.TempDir(), "results.db")

	out, err := execute(t, "mark", "--scenario", "04-row", "--record", "--db", db)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "pass (25)\n"))

	store, err := storage.Open(db)
	require.NoError(t, err)
	defer store.Close()

	recent, err := store.RecentResults(5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "04-row", recent[0].Label)
	assert.Equal(t, "cli", recent[0].Source)
	assert.Equal(t, 25, recent[0].Score)
}

func TestMarkErrors(t *testing.T) {
	dir := t.TempDir()
	field := writeFile(t, dir, "field.txt", "a?\n")
	script := writeFile(t, dir, "script.txt", "delta\n")

	_, err := execute(t, "mark", field, script)
	assert.ErrorContains(t, err, "field.txt:1:2")

	_, err = execute(t, "mark", field)
	assert.Error(t, err)

	_, err = execute(t, "mark", "--scenario", "99-missing")
	assert.ErrorContains(t, err, "scenario not found")
}

func TestGDLCommand(t *testing.T) {
	dir := t.TempDir()
	field := writeFile(t, dir, "field.txt", ".e.\n..a\nA..\n")

	out, err := execute(t, "gdl", field)
	require.NoError(t, err)
	assert.Contains(t, out, gdl.Separator)
	assert.Contains(t, out, "(init (ship 2 2))")

	kif := filepath.Join(dir, "field.kif")
	_, err = execute(t, "gdl", field, "--out", kif)
	require.NoError(t, err)
	data, err := os.ReadFile(kif)
	require.NoError(t, err)
	assert.Equal(t, out, string(data))
}

func TestListAndCheck(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "01-gamma")
	assert.Contains(t, out, "pass (35)")

	out, err = execute(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "ok    05-pair  pass (8)")
	assert.NotContains(t, out, "FAIL")
}

func TestCheckReportsMismatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "wrong.yaml", "id: wrong\nminefield: \"a\\n\"\nscript: \"delta\\n\"\nexpect: fail (0)\n")

	out, err := execute(t, "check", "--scenarios", dir)
	assert.Error(t, err)
	assert.Contains(t, out, "FAIL  wrong")
}

func TestResultsCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "results.db")

	out, err := execute(t, "results", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No results recorded yet.")

	_, err = execute(t, "mark", "--scenario", "03-single", "--record", "--db", db)
	require.NoError(t, err)
	_, err = execute(t, "mark", "--scenario", "01-gamma", "--record", "--db", db)
	require.NoError(t, err)

	out, err = execute(t, "results", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "03-single")
	assert.Contains(t, out, "pass (5)")

	out, err = execute(t, "results", "03-single", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Runs: 1  Passed: 100%  Best: 5")
	assert.NotContains(t, out, "01-gamma")

	out, err = execute(t, "results", "--clear", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "All results cleared.")
}
