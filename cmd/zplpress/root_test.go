package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "zplpress dev")
}

func TestPrintRequiresFile(t *testing.T) {
	_, err := execute(t, "print")
	assert.ErrorContains(t, err, "accepts 1 arg(s)")
}

func TestPrintFlags(t *testing.T) {
	for _, name := range []string{"printer", "all", "batch", "dry-run"} {
		assert.NotNil(t, printCmd.Flags().Lookup(name), name)
	}
	for _, name := range []string{"config", "prefs", "verbose"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
}
