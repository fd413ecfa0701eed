// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package push registers and deactivates the device push token with the
// storefront backend. The token itself comes from an external provider (the
// platform's push service); this package only relays it. Nothing is persisted
// and nothing is retried.
package push

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"farmacia/cli/internal/model"
)

// ErrUnavailable is returned by a TokenProvider when no push token can be
// obtained on this device (permission denied, unsupported environment).
var ErrUnavailable = errors.New("push token unavailable")

// TokenProvider supplies the device push token.
type TokenProvider interface {
	PushToken(ctx context.Context) (string, error)
}

// Backend is the subset of the REST client the registrar calls.
type Backend interface {
	RegisterPushToken(ctx context.Context, token model.DeviceToken) (*model.RegisterTokenResponse, error)
	DeactivateAllTokens(ctx context.Context) error
}

// Registrar relays push tokens to the backend for one platform.
type Registrar struct {
	provider TokenProvider
	backend  Backend
	platform model.Platform
	log      *zap.Logger
}

// NewRegistrar creates a registrar. A nil provider means push is never available.
func NewRegistrar(provider TokenProvider, backend Backend, platform model.Platform, log *zap.Logger) *Registrar {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registrar{provider: provider, backend: backend, platform: platform, log: log}
}

// Register obtains the device token and registers it. It returns nil without
// calling the backend when no token is available.
func (r *Registrar) Register(ctx context.Context) error {
	if r.provider == nil {
		r.log.Debug("push registration skipped: no provider")
		return nil
	}
	token, err := r.provider.PushToken(ctx)
	if errors.Is(err, ErrUnavailable) || (err == nil && strings.TrimSpace(token) == "") {
		r.log.Debug("push registration skipped: token unavailable")
		return nil
	}
	if err != nil {
		return fmt.Errorf("obtain push token: %w", err)
	}

	resp, err := r.backend.RegisterPushToken(ctx, model.DeviceToken{Token: token, Platform: r.platform})
	if err != nil {
		return fmt.Errorf("register push token: %w", err)
	}
	r.log.Info("push token registered",
		zap.Int("device_id", resp.DeviceToken.ID),
		zap.String("platform", string(resp.DeviceToken.Platform)),
		zap.Bool("active", resp.DeviceToken.Active))
	return nil
}

// DeactivateAll disables every push token of the signed-in user.
func (r *Registrar) DeactivateAll(ctx context.Context) error {
	if err := r.backend.DeactivateAllTokens(ctx); err != nil {
		return fmt.Errorf("deactivate push tokens: %w", err)
	}
	r.log.Debug("push tokens deactivated")
	return nil
}

// EnvProvider reads the push token from an environment variable. It stands in
// for the platform push service on hosts that have none.
type EnvProvider struct {
	Var string
}

// PushToken returns the variable's value or ErrUnavailable when it is unset.
func (p EnvProvider) PushToken(context.Context) (string, error) {
	v := strings.TrimSpace(os.Getenv(p.Var))
	if v == "" {
		return "", ErrUnavailable
	}
	return v, nil
}

// DefaultPlatform maps the host OS to the push platform. Only mobile OSes get
// a mobile platform; everything else is WEB.
func DefaultPlatform() model.Platform {
	return platformFor(runtime.GOOS)
}

func platformFor(goos string) model.Platform {
	switch goos {
	case "android":
		return model.PlatformAndroid
	case "ios":
		return model.PlatformIOS
	}
	return model.PlatformWeb
}
