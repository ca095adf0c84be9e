package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// An HCL syntax error is guaranteed to fail the loading phase inside
	// app.NewApp(), which panics on startup errors.
	invalidHCL := `
		set "i" {
			records = ["i1",
	`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "model.hcl")
	err := os.WriteFile(filePath, []byte(invalidHCL), 0600)
	require.NoError(t, err, "failed to set up test file")

	args := []string{filePath}
	out := &bytes.Buffer{}

	runErr := run(out, args)

	require.Error(t, runErr, "run() should have returned an error after recovering from a panic")

	errStr := runErr.Error()
	require.True(t, strings.Contains(errStr, "application startup panicked"), "The error message should indicate that a panic was recovered.")
}

func TestRun_GeneratesSource(t *testing.T) {
	t.Parallel()

	model := `
set "i" {
  description = "plants"
  records     = ["i1", "i2"]
}

parameter "a" {
  domain  = ["i"]
  records = { i1 = 10, i2 = 20 }
}
`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "model.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(model), 0600))

	out := &bytes.Buffer{}
	err := run(out, []string{"--log-level", "error", filePath})
	require.NoError(t, err)

	require.Contains(t, out.String(), `Set i(*) "plants" / i1, i2 /;`)
	require.Contains(t, out.String(), "Parameter a(i)")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	err := run(out, args)

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	err := run(out, args)

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
