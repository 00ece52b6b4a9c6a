//go:build !windows

package printer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-lp")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestLPSender_SendsRawAndRemovesTempFile(t *testing.T) {
	outDir := t.TempDir()
	argsFile := filepath.Join(outDir, "args")
	copyFile := filepath.Join(outDir, "payload")
	t.Setenv("FAKE_LP_ARGS", argsFile)
	t.Setenv("FAKE_LP_OUT", copyFile)

	script := writeScript(t, `printf '%s\n' "$@" > "$FAKE_LP_ARGS"
cp "$5" "$FAKE_LP_OUT"
`)
	spool := t.TempDir()
	sender := &LPSender{Command: script, TempDir: spool, Logger: zaptest.NewLogger(t)}

	payload := []byte("^XA^FD\xC7\x00\x1B^FS^XZ\n")
	require.NoError(t, sender.Send(context.Background(), "Zebra_GC420t", payload))

	got, err := os.ReadFile(copyFile)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(args)), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"-d", "Zebra_GC420t", "-o", "raw"}, lines[:4])
	assert.True(t, strings.HasPrefix(filepath.Base(lines[4]), "zplpress-"))
	assert.Equal(t, ".zpl", filepath.Ext(lines[4]))

	entries, err := os.ReadDir(spool)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp file should be removed")
}

func TestLPSender_NonZeroExitReportsStderr(t *testing.T) {
	script := writeScript(t, `echo "lp: Error - The printer or class does not exist." >&2
exit 1
`)
	spool := t.TempDir()
	sender := &LPSender{Command: script, TempDir: spool}

	err := sender.Send(context.Background(), "missing", []byte("^XA^XZ\n"))
	require.Error(t, err)

	var dispatchErr *DispatchError
	require.True(t, errors.As(err, &dispatchErr))
	assert.Equal(t, "missing", dispatchErr.Printer)
	assert.Equal(t, "lp: Error - The printer or class does not exist.", dispatchErr.Stderr)
	assert.Contains(t, err.Error(), `print to "missing" failed`)

	entries, err := os.ReadDir(spool)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp file should be removed after failure")
}

func TestLPSender_MissingCommand(t *testing.T) {
	spool := t.TempDir()
	sender := &LPSender{Command: filepath.Join(t.TempDir(), "no-such-lp"), TempDir: spool}

	err := sender.Send(context.Background(), "p", []byte("x"))
	var dispatchErr *DispatchError
	require.True(t, errors.As(err, &dispatchErr))
	assert.Empty(t, dispatchErr.Stderr)
	assert.NotNil(t, dispatchErr.Unwrap())

	entries, err := os.ReadDir(spool)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLPSender_EmptyPrinter(t *testing.T) {
	sender := &LPSender{Command: "/bin/false"}
	err := sender.Send(context.Background(), "  ", []byte("x"))
	assert.ErrorIs(t, err, ErrEmptyPrinter)
}

func TestLpstatLister(t *testing.T) {
	script := writeScript(t, `cat <<'EOF'
printer Zebra_GC420t is idle.  enabled since Mon 01 Jan 2024
printer Office is idle.  enabled since Mon 01 Jan 2024
EOF
`)
	printers, err := (&LpstatLister{Command: script}).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Zebra_GC420t", "Office"}, printers)
}

func TestLpstatLister_MissingBinaryIsEmpty(t *testing.T) {
	printers, err := (&LpstatLister{Command: filepath.Join(t.TempDir(), "nope")}).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, printers)
}

func TestSpoolerUnavailableOffWindows(t *testing.T) {
	_, err := NewSpoolerSender(nil)
	assert.ErrorIs(t, err, ErrSpoolerUnavailable)
	_, err = NewSpoolerLister()
	assert.ErrorIs(t, err, ErrSpoolerUnavailable)
}

func TestDetect_FallsBackToLP(t *testing.T) {
	sender, lister := Detect(Options{LPCommand: "/usr/bin/lp", LpstatCommand: "/usr/bin/lpstat"})

	router, ok := sender.(*Router)
	require.True(t, ok)
	lp, ok := router.Local.(*LPSender)
	require.True(t, ok)
	assert.Equal(t, "/usr/bin/lp", lp.Command)
	assert.IsType(t, &NetSender{}, router.Network)

	lpstat, ok := lister.(*LpstatLister)
	require.True(t, ok)
	assert.Equal(t, "/usr/bin/lpstat", lpstat.Command)
}
