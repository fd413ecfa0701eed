// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package keychain

import (
	"errors"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/require"
)

func TestManagerRoundTrip(t *testing.T) {
	m := New(keyring.NewArrayKeyring(nil), nil)

	_, ok, err := m.Get("access_token")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, m.Set("access_token", []byte("tok-1")))
	v, ok, err := m.Get("access_token")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "tok-1", string(v))

	require.NoError(t, m.Remove("access_token"))
	require.NoError(t, m.Remove("access_token"), "removing twice is fine")

	_, ok, err = m.Get("access_token")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestManagerKeysSorted(t *testing.T) {
	m := New(keyring.NewArrayKeyring([]keyring.Item{
		{Key: "user", Data: []byte("{}")},
		{Key: "access_token", Data: []byte("t")},
	}), nil)

	keys, err := m.Keys()
	require.NoError(t, err)
	require.Equal(t, []string{"access_token", "user"}, keys)
}

func TestManagerWipe(t *testing.T) {
	m := New(keyring.NewArrayKeyring([]keyring.Item{
		{Key: "user", Data: []byte("{}")},
		{Key: "access_token", Data: []byte("t")},
		{Key: "stray", Data: []byte("x")},
	}), nil)

	require.NoError(t, m.Wipe())
	keys, err := m.Keys()
	require.NoError(t, err)
	require.Empty(t, keys)
}

type stuckRing struct {
	keyring.Keyring
}

func (stuckRing) Remove(string) error { return errors.New("locked") }

func TestManagerWipeCollectsFailures(t *testing.T) {
	m := New(stuckRing{keyring.NewArrayKeyring([]keyring.Item{
		{Key: "a", Data: []byte("1")},
		{Key: "b", Data: []byte("2")},
	})}, nil)

	err := m.Wipe()
	require.Error(t, err)
	require.Contains(t, err.Error(), "keychain remove a")
	require.Contains(t, err.Error(), "keychain remove b")
}
