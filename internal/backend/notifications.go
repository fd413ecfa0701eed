// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"

	"farmacia/cli/internal/model"
)

// RegisterPushToken calls POST /api/notificaciones/register-token.
func (h *HTTP) RegisterPushToken(ctx context.Context, token model.DeviceToken) (*model.RegisterTokenResponse, error) {
	var out model.RegisterTokenResponse
	if err := h.do(ctx, http.MethodPost, h.endpoints.RegisterPushToken, token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeactivateAllTokens calls POST /api/notificaciones/deactivate-all.
func (h *HTTP) DeactivateAllTokens(ctx context.Context) error {
	return h.do(ctx, http.MethodPost, h.endpoints.DeactivateTokens, nil, nil)
}
