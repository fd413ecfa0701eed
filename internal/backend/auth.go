// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"farmacia/cli/internal/model"
)

// Login calls POST /api/auth/login. The response must carry a token and a user.
func (h *HTTP) Login(ctx context.Context, creds model.Credentials) (*model.LoginResponse, error) {
	var raw json.RawMessage
	if err := h.do(ctx, http.MethodPost, h.endpoints.Login, creds, &raw); err != nil {
		return nil, err
	}

	var out model.LoginResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	if out.AccessToken == "" {
		out.AccessToken = extractAccessToken(raw)
	}
	if out.AccessToken == "" {
		return nil, errors.New("login response has no access_token")
	}
	if out.User == nil {
		return nil, errors.New("login response has no user")
	}
	return &out, nil
}

// Logout calls POST /api/auth/logout with the current bearer token.
// The response body is ignored.
func (h *HTTP) Logout(ctx context.Context) error {
	return h.do(ctx, http.MethodPost, h.endpoints.Logout, nil, nil)
}

// Register calls POST /api/public/register. A 409 means the email is taken.
func (h *HTTP) Register(ctx context.Context, reg model.Registration) error {
	err := h.do(ctx, http.MethodPost, h.endpoints.Register, reg.Normalize(), nil)
	if errors.Is(err, ErrConflict) {
		return fmt.Errorf("%w: %w", ErrEmailTaken, err)
	}
	return err
}
