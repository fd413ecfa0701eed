// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package xdg provides helpers to resolve XDG Base Directory paths for farmacia.
// Configuration lives under the config home, while the encrypted file keyring
// (used when no OS credential store is reachable) lives under the state home.
//
// Both directories fall back to the traditional dot-directories when the XDG
// environment variables are unset and are created with private permissions.
package xdg

import (
	"os"
	"path/filepath"
)

// AppDir is the directory name used under every XDG base.
const AppDir = "farmacia"

// ConfigDir returns the XDG config directory for farmacia.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/farmacia when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	return ensure("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the XDG state directory for farmacia.
// It falls back to ~/.local/state/farmacia when XDG_STATE_HOME is unset.
func StateDir() (string, error) {
	return ensure("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func ensure(envVar, homeRel string) (string, error) {
	base := os.Getenv(envVar)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, homeRel)
	}
	dir := filepath.Join(base, AppDir)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
