// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package manifest describes where the storefront backend lives: the base URL
// for the current build mode and platform, and the REST paths the client calls.
package manifest

import (
	"net/url"
	"strings"

	"farmacia/cli/internal/model"
)

// Mode is the build mode the base URL is chosen for.
type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

// Base URLs of the storefront backend.
const (
	LocalBaseURL      = "http://localhost:3001"
	ProductionBaseURL = "https://backend-farmacia-production.up.railway.app"
)

// Manifest is the resolved backend location plus its endpoint paths.
type Manifest struct {
	Mode     Mode           `json:"mode"`
	Platform model.Platform `json:"platform"`
	BaseURL  string         `json:"base_url"`
	HTTP     HTTPEndpoints  `json:"http"`
}

// HTTPEndpoints contains REST API endpoint paths.
type HTTPEndpoints struct {
	Login             string `json:"auth_login"`        // "/api/auth/login"
	Logout            string `json:"auth_logout"`       // "/api/auth/logout"
	Register          string `json:"public_register"`   // "/api/public/register"
	RegisterPushToken string `json:"push_register"`     // "/api/notificaciones/register-token"
	DeactivateTokens  string `json:"push_deactivate"`   // "/api/notificaciones/deactivate-all"
	Products          string `json:"public_products"`   // "/api/public/productos"
	Categories        string `json:"public_categories"` // "/api/public/categorias"
	Cart              string `json:"cart"`              // "/api/carrito"
	Checkout          string `json:"cart_checkout"`     // "/api/carrito/checkout"
}

// DefaultEndpoints returns the storefront's REST paths.
func DefaultEndpoints() HTTPEndpoints {
	return HTTPEndpoints{
		Login:             "/api/auth/login",
		Logout:            "/api/auth/logout",
		Register:          "/api/public/register",
		RegisterPushToken: "/api/notificaciones/register-token",
		DeactivateTokens:  "/api/notificaciones/deactivate-all",
		Products:          "/api/public/productos",
		Categories:        "/api/public/categorias",
		Cart:              "/api/carrito",
		Checkout:          "/api/carrito/checkout",
	}
}

// BaseURLFor picks the backend: the local server only for web builds in
// development, production for everything else.
func BaseURLFor(mode Mode, platform model.Platform) string {
	if mode == ModeDevelopment && platform == model.PlatformWeb {
		return LocalBaseURL
	}
	return ProductionBaseURL
}

// Host returns the host part of the base URL, used in user-facing messages.
func (m *Manifest) Host() string {
	u, err := url.Parse(m.BaseURL)
	if err != nil || u.Host == "" {
		return strings.TrimPrefix(strings.TrimPrefix(m.BaseURL, "https://"), "http://")
	}
	return u.Host
}
