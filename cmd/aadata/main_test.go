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

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), strings.Join(args, " "))
	return out.String()
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.csv")
	logPath := filepath.Join(dir, "file_log.log")
	require.NoError(t, os.WriteFile(in, []byte("A,B\n1,4\n2,5\n3,6\n"), 0644))

	out := run(t, "save", "--log-file", logPath, "--in", in, "--name", "data", "--format", "pickle", "--dir", dir, "--no-timestamp")
	assert.Contains(t, out, filepath.Join(dir, "data.p"))

	out = run(t, "load", "--log-file", logPath, "--name", "data", "--format", "pickle")
	assert.Equal(t, "A,B\n1,4\n2,5\n3,6\n", out)

	out = run(t, "log", "list", "--log-file", logPath)
	assert.Contains(t, out, filepath.Join(dir, "data.p"))
}

func TestVersionCommand(t *testing.T) {
	out := run(t, "version")
	assert.True(t, strings.HasPrefix(out, "aadata version "))
}
