// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.False(t, cfg.Enabled("akv"))
	require.True(t, cfg.Enabled("env"))
	require.True(t, cfg.Enabled("file"))
	require.False(t, cfg.Enabled("unknown"))
	require.Empty(t, cfg.EnvFile)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("full config", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
env_file: .env.production
providers:
  akv:
    enabled: true
  file:
    enabled: false
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, ".env.production", cfg.EnvFile)
		require.True(t, cfg.Enabled("akv"))
		require.False(t, cfg.Enabled("file"))
		// Unspecified schemes keep their defaults.
		require.True(t, cfg.Enabled("env"))
	})

	t.Run("missing file yields defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
	})

	t.Run("empty file yields defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := Load(writeConfig(t, ""))
		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		t.Parallel()

		_, err := Load(writeConfig(t, "enf_file: typo.env\n"))
		require.Error(t, err)
	})

	t.Run("malformed yaml rejected", func(t *testing.T) {
		t.Parallel()

		_, err := Load(writeConfig(t, "providers: [not a map\n"))
		require.Error(t, err)
	})
}

func TestDefaultPath(t *testing.T) {
	t.Parallel()

	path, err := DefaultPath()
	require.NoError(t, err)
	require.Contains(t, path, "envresolve")
	require.Contains(t, path, "config.yaml")
}
