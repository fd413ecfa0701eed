// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCredentialsValidate(t *testing.T) {
	require.NoError(t, Credentials{Email: "ana@example.com", Password: "secret1"}.Validate())
	require.ErrorIs(t, Credentials{Email: "", Password: "secret1"}.Validate(), ErrValidation)
	require.ErrorIs(t, Credentials{Email: "ana@example.com"}.Validate(), ErrValidation)
	require.ErrorIs(t, Credentials{Email: "ana@example.com", Password: "12345"}.Validate(), ErrValidation)
}

func TestRegistrationValidate(t *testing.T) {
	ok := Registration{Email: " ana@example.com ", FirstName: "Ana", LastName: "Pérez", Password: "secret1"}
	require.NoError(t, ok.Validate())
	require.Equal(t, "ana@example.com", ok.Normalize().Email)

	blank := ok
	blank.LastName = "   "
	require.ErrorIs(t, blank.Validate(), ErrValidation)

	short := ok
	short.Password = "abc"
	require.ErrorIs(t, short.Validate(), ErrValidation)

	bad := ok
	bad.Email = "not-an-email"
	require.ErrorIs(t, bad.Validate(), ErrValidation)
}

func TestParsePlatform(t *testing.T) {
	p, err := ParsePlatform("web")
	require.NoError(t, err)
	require.Equal(t, PlatformWeb, p)

	p, err = ParsePlatform(" IOS ")
	require.NoError(t, err)
	require.Equal(t, PlatformIOS, p)

	_, err = ParsePlatform("symbian")
	require.Error(t, err)
}

func TestDisplayName(t *testing.T) {
	require.Equal(t, "Ana Pérez", UserProfile{FirstName: "Ana", LastName: "Pérez"}.DisplayName())
	require.Equal(t, "ana@example.com", UserProfile{Email: "ana@example.com"}.DisplayName())
}

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		pw    string
		score int
		label string
	}{
		{"", 0, "very weak"},
		{"abcdef", 1, "weak"},
		{"Abcdef", 2, "fair"},
		{"Abcde1", 3, "strong"},
		{"ab1", 1, "weak"},
	}
	for _, tt := range tests {
		score, label := PasswordStrength(tt.pw)
		require.Equal(t, tt.score, score, tt.pw)
		require.Equal(t, tt.label, label, tt.pw)
	}
}
