// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// run executes the CLI with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// emptyConfig returns a config file path with every provider disabled.
func emptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "providers:\n  env:\n    enabled: false\n  file:\n    enabled: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestExpandCommand(t *testing.T) { //nolint:paralleltest // Modifies environment variables
	t.Setenv("ENVRESOLVE_CLI_TEST_VAR", "from-env")

	out, err := run(t, "--config", emptyConfig(t), "expand", "value=${ENVRESOLVE_CLI_TEST_VAR}")
	require.NoError(t, err)
	require.Equal(t, "value=from-env\n", out)
}

func TestExpandCommand_MissingVariable(t *testing.T) {
	t.Parallel()

	_, err := run(t, "--config", emptyConfig(t), "expand", "${ENVRESOLVE_DEFINITELY_MISSING}")
	require.Error(t, err)
	require.Contains(t, err.Error(), "ENVRESOLVE_DEFINITELY_MISSING")
}

func TestResolveCommand_PassThrough(t *testing.T) {
	t.Parallel()

	out, err := run(t, "--config", emptyConfig(t), "resolve", "plain-value")
	require.NoError(t, err)
	require.Equal(t, "plain-value\n", out)
}

func TestResolveCommand_FileProvider(t *testing.T) { //nolint:paralleltest // Reads process environment through the resolver
	dir := t.TempDir()
	secretPath := filepath.Join(dir, "token")
	require.NoError(t, os.WriteFile(secretPath, []byte("s3cr3t\n"), 0o600))

	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("providers:\n  env:\n    enabled: false\n"), 0o600))

	out, err := run(t, "--config", configPath, "resolve", "file://"+secretPath)
	require.NoError(t, err)
	require.Equal(t, "s3cr3t\n", out)
}

func TestLoadCommand(t *testing.T) { //nolint:paralleltest // Modifies environment variables
	t.Setenv("ENVRESOLVE_CLI_BASE", "base-value")

	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "A=literal\nB=${ENVRESOLVE_CLI_BASE}/suffix\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0o600))

	out, err := run(t, "--config", emptyConfig(t), "load", "--env-file", envPath)
	require.NoError(t, err)
	require.Equal(t, "A=literal\nB=base-value/suffix\n", out)
}

func TestLoadCommand_EnvFileFromConfig(t *testing.T) { //nolint:paralleltest // Modifies environment variables
	t.Setenv("ENVRESOLVE_CLI_BASE", "base-value")

	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("B=${ENVRESOLVE_CLI_BASE}/suffix\n"), 0o600))

	configPath := filepath.Join(dir, "config.yaml")
	content := "env_file: " + envPath + "\nproviders:\n  env:\n    enabled: false\n  file:\n    enabled: false\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	out, err := run(t, "--config", configPath, "load")
	require.NoError(t, err)
	require.Equal(t, "B=base-value/suffix\n", out)
}

func TestLoadCommand_NoEnvFile(t *testing.T) {
	t.Parallel()

	_, err := run(t, "--config", emptyConfig(t), "load")
	require.Error(t, err)
	require.Contains(t, err.Error(), "--env-file")
}
