// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package push

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"farmacia/cli/internal/model"
)

type fakeBackend struct {
	registered  []model.DeviceToken
	deactivated int
	registerErr error
	deactErr    error
}

func (f *fakeBackend) RegisterPushToken(_ context.Context, tok model.DeviceToken) (*model.RegisterTokenResponse, error) {
	f.registered = append(f.registered, tok)
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &model.RegisterTokenResponse{Message: "ok", DeviceToken: model.RegisteredDevice{ID: 7, Platform: tok.Platform, Active: true}}, nil
}

func (f *fakeBackend) DeactivateAllTokens(context.Context) error {
	f.deactivated++
	return f.deactErr
}

type providerFunc func(ctx context.Context) (string, error)

func (f providerFunc) PushToken(ctx context.Context) (string, error) { return f(ctx) }

func TestRegisterSendsTokenAndPlatform(t *testing.T) {
	be := &fakeBackend{}
	r := NewRegistrar(providerFunc(func(context.Context) (string, error) {
		return "ExponentPushToken[abc]", nil
	}), be, model.PlatformAndroid, nil)

	require.NoError(t, r.Register(context.Background()))
	require.Equal(t, []model.DeviceToken{{Token: "ExponentPushToken[abc]", Platform: model.PlatformAndroid}}, be.registered)
}

func TestRegisterUnavailableIsNotAnError(t *testing.T) {
	tests := []struct {
		name     string
		provider TokenProvider
	}{
		{"nil provider", nil},
		{"unavailable", providerFunc(func(context.Context) (string, error) { return "", ErrUnavailable })},
		{"empty token", providerFunc(func(context.Context) (string, error) { return "  ", nil })},
		{"unset env", EnvProvider{Var: "FARMACIA_TEST_PUSH_TOKEN_UNSET"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be := &fakeBackend{}
			r := NewRegistrar(tt.provider, be, model.PlatformWeb, nil)
			require.NoError(t, r.Register(context.Background()))
			require.Empty(t, be.registered)
		})
	}
}

func TestRegisterPropagatesFailures(t *testing.T) {
	boom := errors.New("boom")

	be := &fakeBackend{registerErr: boom}
	r := NewRegistrar(envProviderFor(t, "tok"), be, model.PlatformWeb, nil)
	require.ErrorIs(t, r.Register(context.Background()), boom)

	r = NewRegistrar(providerFunc(func(context.Context) (string, error) { return "", boom }), &fakeBackend{}, model.PlatformWeb, nil)
	require.ErrorIs(t, r.Register(context.Background()), boom)
}

func TestDeactivateAll(t *testing.T) {
	be := &fakeBackend{}
	r := NewRegistrar(nil, be, model.PlatformWeb, nil)
	require.NoError(t, r.DeactivateAll(context.Background()))
	require.Equal(t, 1, be.deactivated)

	be.deactErr = errors.New("offline")
	require.ErrorIs(t, r.DeactivateAll(context.Background()), be.deactErr)
}

func TestPlatformFor(t *testing.T) {
	require.Equal(t, model.PlatformAndroid, platformFor("android"))
	require.Equal(t, model.PlatformIOS, platformFor("ios"))
	require.Equal(t, model.PlatformWeb, platformFor("linux"))
	require.Equal(t, model.PlatformWeb, platformFor("darwin"))
}

// envProviderFor sets a per-test variable and returns a provider reading it.
func envProviderFor(t *testing.T, value string) EnvProvider {
	t.Helper()
	const name = "FARMACIA_TEST_PUSH_TOKEN"
	t.Setenv(name, value)
	return EnvProvider{Var: name}
}
