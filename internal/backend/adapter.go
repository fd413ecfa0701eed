// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend provides the HTTP client adapter for the pharmacy storefront
// backend. Every request carries the stored bearer token when one exists. A 401
// response from any endpoint purges the stored credential and notifies
// subscribers; the adapter never touches in-memory session state itself.
//
// The package defines narrow interfaces per concern (session, catalog, cart)
// so callers and tests depend only on what they use.
package backend

import (
	"context"
	"time"

	"farmacia/cli/internal/model"
)

// API defines the session-related backend operations the CLI depends on.
// Implementations may call real HTTP endpoints or provide fakes for tests.
type API interface {
	// Login exchanges credentials for an access token and the user profile.
	Login(ctx context.Context, creds model.Credentials) (*model.LoginResponse, error)
	// Logout invalidates the current access token on the backend.
	Logout(ctx context.Context) error
	// RegisterPushToken associates a device push token with the signed-in user.
	RegisterPushToken(ctx context.Context, token model.DeviceToken) (*model.RegisterTokenResponse, error)
	// DeactivateAllTokens disables every push token of the signed-in user.
	DeactivateAllTokens(ctx context.Context) error
	// OnUnauthorized registers fn to run after any 401 response has purged the
	// stored credential. The returned func unsubscribes.
	OnUnauthorized(fn func(UnauthorizedEvent)) (cancel func())
}

// Accounts covers public account creation.
type Accounts interface {
	Register(ctx context.Context, reg model.Registration) error
}

// Catalog covers the public product catalog.
type Catalog interface {
	Products(ctx context.Context, q model.ProductQuery) ([]model.Product, error)
	Categories(ctx context.Context) ([]model.Category, error)
}

// Cart covers the signed-in user's shopping cart.
type Cart interface {
	Cart(ctx context.Context) ([]model.CartItem, error)
	AddToCart(ctx context.Context, productID, quantity int) (*model.CartItem, error)
	UpdateCartItem(ctx context.Context, itemID, quantity int) (*model.CartItem, error)
	RemoveCartItem(ctx context.Context, itemID int) error
	ClearCart(ctx context.Context) error
	Checkout(ctx context.Context) (*model.Order, error)
}

// CredentialSource is the persisted credential the adapter reads and purges.
// *auth.Store satisfies it.
type CredentialSource interface {
	Token() (token string, ok bool, err error)
	Purge() error
}

// UnauthorizedEvent describes a 401 response that caused a credential purge.
type UnauthorizedEvent struct {
	Method   string
	Path     string
	At       time.Time
	PurgeErr error
}
