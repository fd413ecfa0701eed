// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides thread-safe key-value storage on top of the OS
// credential store for farmacia. It is the durable layer underneath the session
// credential store: the access token and the signed-in user profile live here.
//
// Native backends are preferred (macOS Keychain, Windows Credential Manager,
// Secret Service, KWallet, pass). When none is reachable, or when the file
// backend is requested explicitly, secrets are kept in an encrypted file keyring
// under the XDG state directory, unlocked with FARMACIA_KEYRING_PASSWORD or an
// interactive prompt.
package keychain

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/99designs/keyring"
	"go.uber.org/zap"

	"farmacia/cli/internal/xdg"
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "farmacia"

// Backend selections accepted by Open.
const (
	BackendAuto = "auto"
	BackendFile = "file"
)

// Manager provides centralized, thread-safe operations on one keyring namespace.
type Manager struct {
	mu   sync.RWMutex
	ring keyring.Keyring
	log  *zap.Logger
}

// Options configure Open.
type Options struct {
	// Backend is BackendAuto (default) or BackendFile.
	Backend string
	// FileDir overrides the file keyring directory; defaults to <state>/farmacia/keyring.
	FileDir string
	// FilePassword unlocks the file keyring. Empty means prompt on the terminal.
	FilePassword string
	Logger       *zap.Logger
}

// New wraps an already opened keyring. Tests pass keyring.NewArrayKeyring.
func New(ring keyring.Keyring, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{ring: ring, log: log}
}

// Open opens the keyring selected by opts.
func Open(opts Options) (*Manager, error) {
	ring, err := openRing(opts)
	if err != nil {
		return nil, err
	}
	return New(ring, opts.Logger), nil
}

// openRing opens the platform keyring, falling back to the encrypted file backend.
func openRing(opts Options) (keyring.Keyring, error) {
	dir := opts.FileDir
	if dir == "" {
		state, err := xdg.StateDir()
		if err != nil {
			return nil, fmt.Errorf("resolve keyring dir: %w", err)
		}
		dir = filepath.Join(state, "keyring")
	}

	prompt := keyring.TerminalPrompt
	if opts.FilePassword != "" {
		prompt = keyring.FixedStringPrompt(opts.FilePassword)
	}

	cfg := keyring.Config{
		ServiceName:      ServiceName,
		PassPrefix:       ServiceName,
		FileDir:          dir,
		FilePasswordFunc: prompt,
	}

	if opts.Backend == BackendFile {
		cfg.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
		return keyring.Open(cfg)
	}

	switch runtime.GOOS {
	case "darwin":
		// pass is the fallback when the Keychain refuses unsigned binaries
		cfg.AllowedBackends = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend, keyring.FileBackend}
		cfg.KeychainTrustApplication = true
	case "windows":
		cfg.WinCredPrefix = ServiceName
		cfg.AllowedBackends = []keyring.BackendType{keyring.WinCredBackend, keyring.FileBackend}
	default:
		cfg.AllowedBackends = []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		}
		cfg.LibSecretCollectionName = ServiceName
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}
	return ring, nil
}

// Set stores value under key, replacing any previous value.
func (m *Manager) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ring.Set(keyring.Item{Key: key, Data: value, Label: ServiceName + " " + key}); err != nil {
		return fmt.Errorf("keychain set %s: %w", key, err)
	}
	return nil
}

// Get returns the value under key. A missing key yields (nil, false, nil).
func (m *Manager) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, err := m.ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("keychain get %s: %w", key, err)
	}
	return it.Data, true, nil
}

// Remove deletes key. Removing a missing key is not an error.
func (m *Manager) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.remove(key)
}

func (m *Manager) remove(key string) error {
	if err := m.ring.Remove(key); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("keychain remove %s: %w", key, err)
	}
	return nil
}

// Keys lists every key in the namespace, sorted.
func (m *Manager) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys, err := m.ring.Keys()
	if err != nil {
		return nil, fmt.Errorf("keychain list: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// Wipe removes every key in the namespace. It keeps going after individual
// failures and returns them joined.
func (m *Manager) Wipe() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys, err := m.ring.Keys()
	if err != nil {
		return fmt.Errorf("keychain list: %w", err)
	}
	var errs []error
	for _, k := range keys {
		if err := m.remove(k); err != nil {
			errs = append(errs, err)
		}
	}
	m.log.Debug("keychain wiped", zap.Int("keys", len(keys)), zap.Int("failures", len(errs)))
	return errors.Join(errs...)
}
