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

func TestRunAcceptsCleanDelivery(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "input.txt", "[1.0]1-PRI-1-FROM-F1-TO-F2\n")
	output := writeFile(t, dir, "output.txt", strings.Join([]string{
		"[1.0]RECEIVE-1-1",
		"[1.0]OPEN-F1-1",
		"[1.1]IN-1-F1-1",
		"[1.4]CLOSE-F1-1",
		"[1.8]ARRIVE-F2-1",
		"[1.8]OPEN-F2-1",
		"[2.2]OUT-S-1-F2-1",
		"[2.2]CLOSE-F2-1",
	}, "\n"))

	var stdout, stderr bytes.Buffer
	code := run([]string{"--input_file", input, "--output_file", output}, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Equal(t, "Accepted\n", stdout.String())
}

func TestRunRejectsInvalidLog(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "input.txt", "")
	output := writeFile(t, dir, "output.txt", "[0.1]ARRIVE-F2-1\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{"--input_file", input, "--output_file", output}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.True(t, strings.HasPrefix(stdout.String(), "Validation Error: "))
}

func TestRunReportsMissingInputFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--input_file", "/no/such/file.txt"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "Validation Error:")
}
