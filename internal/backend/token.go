// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"encoding/json"
	"strings"
)

// bearer formats an Authorization header value.
func bearer(token string) string {
	return "Bearer " + token
}

// extractAccessToken extracts the access token from a login payload.
// It tries the documented field first and then the common aliases.
func extractAccessToken(raw []byte) string {
	var result map[string]any
	if err := json.Unmarshal(raw, &result); err != nil {
		return ""
	}
	for _, k := range []string{"access_token", "accessToken", "token"} {
		if v, ok := result[k].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
