// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth implements the client session: the persisted credential store
// and the Service that moves the user between signed-in and signed-out states.
//
// This file is the credential store. It keeps the access token and the signed-in
// user profile as two independent entries in a key-value layer (the OS keychain
// in production). The two writes are not atomic; readers treat a half-written
// pair as "no session".
package auth

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"farmacia/cli/internal/model"
)

// Keys under which the session is persisted.
const (
	KeyAccessToken = "access_token"
	KeyUser        = "user"
)

// KV is the durable key-value layer the store writes to.
// *keychain.Manager satisfies it.
type KV interface {
	Set(key string, value []byte) error
	Get(key string) ([]byte, bool, error)
	Remove(key string) error
	Wipe() error
}

// ClearOutcome reports how far ClearAll had to escalate.
type ClearOutcome int

const (
	// ClearedKeys means both session keys were removed and verified gone.
	ClearedKeys ClearOutcome = iota
	// ClearedStore means the targeted removal did not stick and the whole store was wiped.
	ClearedStore
	// ClearFailed means the wipe failed as well; residue may remain.
	ClearFailed
)

func (o ClearOutcome) String() string {
	switch o {
	case ClearedKeys:
		return "cleared session keys"
	case ClearedStore:
		return "wiped entire store"
	default:
		return "clear failed"
	}
}

// Store persists the session token and user profile.
type Store struct {
	kv  KV
	log *zap.Logger
}

// NewStore creates a credential store on top of kv.
func NewStore(kv KV, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{kv: kv, log: log}
}

// SaveToken writes the access token.
func (s *Store) SaveToken(token string) error {
	if err := s.kv.Set(KeyAccessToken, []byte(token)); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Token returns the stored access token. ok is false when none is stored.
func (s *Store) Token() (token string, ok bool, err error) {
	data, ok, err := s.kv.Get(KeyAccessToken)
	if err != nil {
		return "", false, fmt.Errorf("read token: %w", err)
	}
	if !ok || len(data) == 0 {
		return "", false, nil
	}
	return string(data), true, nil
}

// SaveUser writes the user profile as JSON.
func (s *Store) SaveUser(u model.UserProfile) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.kv.Set(KeyUser, b); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// User returns the stored profile, or nil when none is stored.
// Malformed JSON is reported as an error.
func (s *Store) User() (*model.UserProfile, error) {
	data, ok, err := s.kv.Get(KeyUser)
	if err != nil {
		return nil, fmt.Errorf("read user: %w", err)
	}
	if !ok || len(data) == 0 {
		return nil, nil
	}
	var u model.UserProfile
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &u, nil
}

// ClearAll removes the session and never fails the caller. It removes both keys,
// reads them back, and wipes the whole store if a removal failed or a value is
// still visible. A failing wipe is logged and swallowed.
func (s *Store) ClearAll() (outcome ClearOutcome) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("clear session panicked", zap.Any("panic", r))
			outcome = s.wipe()
		}
	}()

	residue := false
	for _, k := range []string{KeyAccessToken, KeyUser} {
		if err := s.kv.Remove(k); err != nil {
			s.log.Warn("remove session key", zap.String("key", k), zap.Error(err))
			residue = true
		}
	}
	for _, k := range []string{KeyAccessToken, KeyUser} {
		_, ok, err := s.kv.Get(k)
		if err != nil || ok {
			s.log.Warn("session key survived removal", zap.String("key", k), zap.Bool("present", ok), zap.Error(err))
			residue = true
		}
	}
	if !residue {
		s.log.Debug("session cleared")
		return ClearedKeys
	}
	return s.wipe()
}

func (s *Store) wipe() (outcome ClearOutcome) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("wipe store panicked", zap.Any("panic", r))
			outcome = ClearFailed
		}
	}()
	if err := s.kv.Wipe(); err != nil {
		s.log.Error("wipe store", zap.Error(err))
		return ClearFailed
	}
	s.log.Info("credential store wiped")
	return ClearedStore
}

// Purge removes the token and user without escalation. It is the response to a
// server-side rejection of the token.
func (s *Store) Purge() error {
	var first error
	for _, k := range []string{KeyAccessToken, KeyUser} {
		if err := s.kv.Remove(k); err != nil {
			s.log.Warn("purge session key", zap.String("key", k), zap.Error(err))
			if first == nil {
				first = err
			}
		}
	}
	return first
}
