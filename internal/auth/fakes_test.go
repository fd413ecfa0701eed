// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/99designs/keyring"

	"farmacia/cli/internal/backend"
	"farmacia/cli/internal/keychain"
	"farmacia/cli/internal/model"
)

// fakeAPI records calls and lets tests fire 401 notifications.
type fakeAPI struct {
	mu sync.Mutex

	loginResp *model.LoginResponse
	loginErr  error
	logoutErr error
	// logoutStall makes Logout block until its context ends.
	logoutStall bool
	// loginGate, when set, blocks Login until closed.
	loginGate chan struct{}
	// loginStarted is closed when Login is entered.
	loginStarted chan struct{}

	calls []string
	subs  []func(backend.UnauthorizedEvent)
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) Login(ctx context.Context, _ model.Credentials) (*model.LoginResponse, error) {
	f.record("login")
	if f.loginStarted != nil {
		close(f.loginStarted)
	}
	if f.loginGate != nil {
		<-f.loginGate
	}
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResp, nil
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	f.record("logout")
	if f.logoutStall {
		<-ctx.Done()
		return ctx.Err()
	}
	return f.logoutErr
}

func (f *fakeAPI) RegisterPushToken(context.Context, model.DeviceToken) (*model.RegisterTokenResponse, error) {
	return nil, errors.New("not used")
}

func (f *fakeAPI) DeactivateAllTokens(context.Context) error {
	return errors.New("not used")
}

func (f *fakeAPI) OnUnauthorized(fn func(backend.UnauthorizedEvent)) func() {
	f.mu.Lock()
	f.subs = append(f.subs, fn)
	f.mu.Unlock()
	return func() {}
}

// fire emulates the adapter: purge, then notify.
func (f *fakeAPI) fire(store *Store) {
	_ = store.Purge()
	f.mu.Lock()
	subs := append([]func(backend.UnauthorizedEvent){}, f.subs...)
	f.mu.Unlock()
	for _, fn := range subs {
		fn(backend.UnauthorizedEvent{Method: "GET", Path: "/api/carrito"})
	}
}

// fakePush records calls; register may block, fail or panic.
type fakePush struct {
	mu sync.Mutex

	registerErr   error
	registerPanic bool
	deactErr      error
	// registerGate, when set, blocks Register until closed.
	registerGate chan struct{}
	registerCtx  error

	api         *fakeAPI
	registered  int
	deactivated int
}

func (p *fakePush) Register(ctx context.Context) error {
	if p.registerGate != nil {
		<-p.registerGate
	}
	p.mu.Lock()
	p.registered++
	p.registerCtx = ctx.Err()
	p.mu.Unlock()
	if p.registerPanic {
		panic("push service crashed")
	}
	return p.registerErr
}

func (p *fakePush) DeactivateAll(context.Context) error {
	if p.api != nil {
		p.api.record("deactivate")
	}
	p.mu.Lock()
	p.deactivated++
	p.mu.Unlock()
	return p.deactErr
}

// flakyKV wraps an in-memory keychain with injectable failures.
type flakyKV struct {
	*keychain.Manager

	setErr    map[string]error
	getErr    error
	removeErr error
	// sticky keys survive Remove.
	sticky  map[string]bool
	wipeErr error
	wiped   int
}

func newMemKV() *keychain.Manager {
	return keychain.New(keyring.NewArrayKeyring(nil), nil)
}

func newFlakyKV() *flakyKV {
	return &flakyKV{Manager: newMemKV(), setErr: map[string]error{}, sticky: map[string]bool{}}
}

func (k *flakyKV) Set(key string, value []byte) error {
	if err := k.setErr[key]; err != nil {
		return err
	}
	return k.Manager.Set(key, value)
}

func (k *flakyKV) Get(key string) ([]byte, bool, error) {
	if k.getErr != nil {
		return nil, false, k.getErr
	}
	return k.Manager.Get(key)
}

func (k *flakyKV) Remove(key string) error {
	if k.removeErr != nil {
		return k.removeErr
	}
	if k.sticky[key] {
		return nil
	}
	return k.Manager.Remove(key)
}

func (k *flakyKV) Wipe() error {
	k.wiped++
	if k.wipeErr != nil {
		return k.wipeErr
	}
	k.sticky = map[string]bool{}
	return k.Manager.Wipe()
}

var ana = model.UserProfile{ID: 1, Email: "ana@example.com", FirstName: "Ana", LastName: "Pérez"}

func okLogin() *model.LoginResponse {
	u := ana
	return &model.LoginResponse{Message: "ok", AccessToken: "T", User: &u}
}
