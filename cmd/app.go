// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"go.uber.org/zap"

	"farmacia/cli/internal/auth"
	"farmacia/cli/internal/backend"
	"farmacia/cli/internal/config"
	"farmacia/cli/internal/httperrors"
	"farmacia/cli/internal/keychain"
	"farmacia/cli/internal/logging"
	"farmacia/cli/internal/manifest"
	"farmacia/cli/internal/model"
	"farmacia/cli/internal/push"
)

// errNotSignedIn is returned by commands that need a session when there is none.
var errNotSignedIn = errors.New("not signed in")

// app is everything one command invocation needs.
type app struct {
	cfg      config.Config
	log      *zap.Logger
	manifest *manifest.Manifest
	keychain *keychain.Manager
	store    *auth.Store
	api      *backend.HTTP
	push     *push.Registrar
	session  *auth.Service
}

// newApp loads configuration and wires the credential store, REST client,
// push registrar and session together.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg = cfg.ApplyEnv()
	if verbose {
		cfg.LogLevel = "debug"
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	platform := push.DefaultPlatform()
	if cfg.Platform != "" {
		if platform, err = model.ParsePlatform(cfg.Platform); err != nil {
			return nil, err
		}
	}
	m := manifest.GetEndpoints(cfg.Mode, platform)
	log.Debug("backend resolved",
		zap.String("mode", string(m.Mode)),
		zap.String("platform", string(platform)),
		zap.String("base_url", m.BaseURL))

	kc, err := keychain.Open(keychain.Options{
		Backend:      cfg.KeyringBackend,
		FilePassword: os.Getenv(config.EnvKeyringPassword),
		Logger:       log.Named("keychain"),
	})
	if err != nil {
		return nil, err
	}

	store := auth.NewStore(kc, log.Named("store"))
	api := backend.New(m, store, log.Named("http"))
	reg := push.NewRegistrar(push.EnvProvider{Var: config.EnvPushToken}, api, platform, log.Named("push"))

	opts := []auth.Option{auth.WithLogger(log.Named("session"))}
	if autoTeardown {
		opts = append(opts, auth.WithAutoTeardown())
	}

	return &app{
		cfg:      cfg,
		log:      log,
		manifest: m,
		keychain: kc,
		store:    store,
		api:      api,
		push:     reg,
		session:  auth.NewService(store, api, reg, opts...),
	}, nil
}

// Close waits for background work and flushes the logger.
func (a *app) Close() {
	a.session.Close()
	_ = a.log.Sync()
}

// requireSession restores the session and fails when nobody is signed in.
func (a *app) requireSession() (*model.UserProfile, error) {
	st := a.session.Restore()
	if !st.IsAuthenticated() {
		showNotSignedIn()
		return nil, errNotSignedIn
	}
	return st.User, nil
}

// requestFailed explains a failed request. When the server rejected the
// token, the local session is ended as well.
func (a *app) requestFailed(ctx context.Context, err error, action string) error {
	if errors.Is(err, backend.ErrUnauthorized) && a.session.Snapshot().IsAuthenticated() {
		a.session.Logout(ctx)
	}
	return httperrors.FormatNetworkError(err, action, a.manifest.Host())
}

func showNotSignedIn() {
	pterm.Println("🔒 You're not logged in yet!")
	pterm.Println("   Run 'farmacia login' to get started.")
}
