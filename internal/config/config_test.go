// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"farmacia/cli/internal/keychain"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, Defaults(), c)
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	require.NoError(t, Save(Config{LogLevel: "info", KeyringBackend: keychain.BackendFile, Platform: "android", Mode: "development"}))

	info, err := os.Stat(filepath.Join(dir, "farmacia", "config.json"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, Config{LogLevel: "info", KeyringBackend: keychain.BackendFile, Platform: "android", Mode: "development"}, c)
}

func TestLoadFillsEmptyFields(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "farmacia"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "farmacia", "config.json"), []byte(`{"platform":"ios"}`), 0o600))

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, "warn", c.LogLevel)
	require.Equal(t, keychain.BackendAuto, c.KeyringBackend)
	require.Equal(t, "ios", c.Platform)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvPlatform, "web")
	t.Setenv(EnvKeyringBackend, "file")
	t.Setenv(EnvVerbose, "1")
	t.Setenv(EnvMode, "dev")

	c := Defaults().ApplyEnv()
	require.Equal(t, "dev", c.Mode)
	require.Equal(t, "web", c.Platform)
	require.Equal(t, keychain.BackendFile, c.KeyringBackend)
	require.Equal(t, "debug", c.LogLevel)
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(env, []byte("FARMACIA_PUSH_TOKEN=from-file\nFARMACIA_PLATFORM=ios\n"), 0o600))
	t.Setenv(EnvPlatform, "android")
	t.Setenv(EnvPushToken, "")
	os.Unsetenv(EnvPushToken)

	require.NoError(t, LoadDotEnv(env, filepath.Join(dir, "missing.env")))
	t.Cleanup(func() { os.Unsetenv(EnvPushToken) })

	require.Equal(t, "from-file", os.Getenv(EnvPushToken))
	require.Equal(t, "android", os.Getenv(EnvPlatform))
}

func TestSet(t *testing.T) {
	tests := []struct {
		key, value string
		want       string
		wantErr    bool
	}{
		{key: "log_level", value: "DEBUG", want: "debug"},
		{key: "log_level", value: "", want: "warn"},
		{key: "log_level", value: "loud", wantErr: true},
		{key: "keyring_backend", value: "file", want: keychain.BackendFile},
		{key: "keyring_backend", value: "vault", wantErr: true},
		{key: "platform", value: "IOS", want: "ios"},
		{key: "platform", value: "windows", wantErr: true},
		{key: "mode", value: "dev", want: "development"},
		{key: "mode", value: "staging", wantErr: true},
		{key: "colour", value: "red", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			c, err := Defaults().Set(tt.key, tt.value)
			if tt.wantErr {
				require.Error(t, err)
				require.Equal(t, Defaults(), c)
				return
			}
			require.NoError(t, err)
			got, err := c.Get(tt.key)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := Defaults().Get("colour")
	require.ErrorIs(t, err, ErrUnknownKey)
}
