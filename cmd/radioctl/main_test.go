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

func runCtl(t *testing.T, dir string, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	full := append([]string{
		"--snapshot", filepath.Join(dir, "state.json"),
		"--outbox", filepath.Join(dir, "outbox.json"),
		"--log-level", "error",
	}, args...)
	err := run(full, strings.NewReader(stdin), &out)
	return out.String(), err
}

func TestRadioctl_TokenAndStatus(t *testing.T) {
	dir := t.TempDir()

	out, err := runCtl(t, dir, "", "token", "squadra alpha")
	require.NoError(t, err)
	assert.Contains(t, out, "team:    SQUADRA ALPHA")
	assert.Contains(t, out, "mode=field")
	first := tokenFrom(t, out)

	// без --regenerate токен не меняется
	out, err = runCtl(t, dir, "", "token", "SQUADRA ALPHA")
	require.NoError(t, err)
	assert.Equal(t, first, tokenFrom(t, out))

	out, err = runCtl(t, dir, "", "token", "--regenerate", "SQUADRA ALPHA")
	require.NoError(t, err)
	assert.NotEqual(t, first, tokenFrom(t, out))

	out, err = runCtl(t, dir, "", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "SQUADRA BRAVO")
	assert.Contains(t, out, "IN ATTESA")

	_, err = runCtl(t, dir, "", "token", "GHOST")
	assert.Error(t, err)
}

func TestRadioctl_ExportRestoreReset(t *testing.T) {
	dir := t.TempDir()
	backup := filepath.Join(dir, "backup.json")

	_, err := runCtl(t, dir, "", "token", "SQUADRA ALPHA")
	require.NoError(t, err)

	out, err := runCtl(t, dir, "", "export", "-o", backup)
	require.NoError(t, err)
	assert.Contains(t, out, "exported")

	_, err = runCtl(t, dir, "", "reset")
	assert.ErrorIs(t, err, errUsage, "reset needs confirmation")

	_, err = runCtl(t, dir, "", "reset", "--yes")
	require.NoError(t, err)

	data, err := os.ReadFile(backup)
	require.NoError(t, err)
	out, err = runCtl(t, dir, string(data), "restore", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "snapshot restored")

	out, err = runCtl(t, dir, "", "export")
	require.NoError(t, err)
	assert.Contains(t, out, `"token"`)

	_, err = runCtl(t, dir, "not json", "restore", "-")
	assert.Error(t, err)
}

func TestRadioctl_Usage(t *testing.T) {
	dir := t.TempDir()

	_, err := runCtl(t, dir, "")
	assert.ErrorIs(t, err, errUsage)

	_, err = runCtl(t, dir, "", "dance")
	assert.ErrorIs(t, err, errUsage)

	_, err = runCtl(t, dir, "", "--help")
	assert.NoError(t, err)
}

func TestRadioctl_RetryOutboxEmpty(t *testing.T) {
	out, err := runCtl(t, t.TempDir(), "", "retry-outbox")
	require.NoError(t, err)
	assert.Contains(t, out, "flushed 0 outbox records")
}

func tokenFrom(t *testing.T, out string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if rest, ok := strings.CutPrefix(line, "token:"); ok {
			return strings.TrimSpace(rest)
		}
	}
	t.Fatalf("no token line in output:\n%s", out)
	return ""
}
