package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/cfrac"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestExpandCommand(t *testing.T) {
	out, err := execute(t, "expand", "415/93", "--output", "text")
	require.NoError(t, err)
	assert.Equal(t, "[4; 2, 6, 7]\n", out)
}

func TestReconstructCommand(t *testing.T) {
	out, err := execute(t, "reconstruct", "--output", "text", "--", "0", "-2", "-3")
	require.NoError(t, err)
	assert.Equal(t, "-3/7\n", out)
}

func TestApproximateCommand(t *testing.T) {
	out, err := execute(t, "approximate", "314159/100000", "--max-den", "100", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"num": 311`)
	assert.Contains(t, out, `"den": 99`)
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfrac.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache:\n  backend: disk\n"), 0o600))

	_, err := execute(t, "convergents", "22/7", "--output", "text", "--config", path)
	assert.Error(t, err)

	_, err = execute(t, "convergents", "22/7", "--output", "text", "--config", "")
	assert.NoError(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "cfrac version "+strings.TrimSpace(cfrac.Version)+"\n", out)
}
