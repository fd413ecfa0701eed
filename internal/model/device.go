// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package model

import (
	"fmt"
	"strings"
)

// Platform identifies the kind of device a push token belongs to.
type Platform string

const (
	PlatformAndroid Platform = "ANDROID"
	PlatformIOS     Platform = "IOS"
	PlatformWeb     Platform = "WEB"
)

// ParsePlatform accepts the platform name in any case ("web", "WEB", "ios").
func ParsePlatform(s string) (Platform, error) {
	switch p := Platform(strings.ToUpper(strings.TrimSpace(s))); p {
	case PlatformAndroid, PlatformIOS, PlatformWeb:
		return p, nil
	}
	return "", fmt.Errorf("unknown platform %q (want android, ios or web)", s)
}

// DeviceToken is the body sent when registering a push token.
type DeviceToken struct {
	Token    string   `json:"token"`
	Platform Platform `json:"platform"`
}

// RegisteredDevice is the server's record of a registered push token.
type RegisteredDevice struct {
	ID       int      `json:"id"`
	Platform Platform `json:"platform"`
	Active   bool     `json:"active"`
}

// RegisterTokenResponse is the body of a successful push token registration.
type RegisterTokenResponse struct {
	Message     string           `json:"message"`
	DeviceToken RegisteredDevice `json:"deviceToken"`
}
