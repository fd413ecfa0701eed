// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides the CLI's zap logger and helpers for secure logging.
// It includes functions for masking sensitive information in log messages and
// formatting errors for user-friendly display.
//
// Passwords, bearer tokens and push tokens must never reach logs or the
// terminal verbatim; everything derived from request or response bodies is
// passed through Mask first.
package logging

import (
	"fmt"
	"regexp"
)

var (
	rePassword  = regexp.MustCompile(`(?i)(password=)([^\s;&]+)`)
	reToken     = regexp.MustCompile(`(?i)(token=|bearer\s+)([A-Za-z0-9._~+/=-]+)`)
	reJSONField = regexp.MustCompile(`(?i)("(?:password|access_token|accessToken|token)"\s*:\s*")([^"]*)(")`)
	rePushToken = regexp.MustCompile(`(ExponentPushToken\[)([^\]]+)(\])`)
)

// Mask replaces sensitive values in the input string with "***".
func Mask(s string) string {
	out := s
	out = rePassword.ReplaceAllString(out, "$1***")
	out = reToken.ReplaceAllString(out, "$1***")
	out = reJSONField.ReplaceAllString(out, "$1***$3")
	out = rePushToken.ReplaceAllString(out, "$1***$3")
	return out
}

// PresentError formats err for the terminal as "<context>: <masked message>".
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", context, Mask(err.Error()))
}
