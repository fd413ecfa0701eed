// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"go.uber.org/zap"

	"farmacia/cli/internal/manifest"
)

// New creates the REST client for the backend described by m. creds supplies
// the bearer token and is purged whenever the server answers 401.
func New(m *manifest.Manifest, creds CredentialSource, log *zap.Logger) *HTTP {
	return newHTTP(m.BaseURL, m.HTTP, creds, log)
}
