package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestRunPrintsMetricsAndAppendsCSV(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "input.txt", "[1.0]1-PRI-1-FROM-F1-TO-F2\n")
	output := writeFile(t, dir, "output.txt", strings.Join([]string{
		"[1.0]RECEIVE-1-1",
		"[1.4]ARRIVE-F2-1",
		"[1.4]OPEN-F2-1",
		"[1.5]IN-1-F2-1",
		"[1.8]CLOSE-F2-1",
		"[2.2]OUT-S-1-F2-1",
	}, "\n"))
	csvPath := filepath.Join(dir, "results.csv")

	var stdout, stderr bytes.Buffer
	code := run([]string{"--csv_file", csvPath, input, output}, &stdout, &stderr)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "T_max_score:")
	assert.Contains(t, stdout.String(), "WT:")
	assert.Contains(t, stdout.String(), "W:")

	contents, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "case,T_max,WT,W")
}

func TestRunRequiresTwoPositionalArgs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"onlyone"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
}

func TestRunReportsMissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"/no/such/input.txt", "/no/such/output.txt"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "Validation Error:")
}
