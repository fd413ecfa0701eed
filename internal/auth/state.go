// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"farmacia/cli/internal/model"
)

// Phase is the coarse session state.
type Phase int

const (
	// PhaseInitializing means the persisted session has not been read yet.
	PhaseInitializing Phase = iota
	PhaseAuthenticated
	PhaseUnauthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseUnauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

// State is an immutable snapshot of the session.
type State struct {
	Phase Phase
	// User is set exactly when the session is authenticated.
	User      *model.UserProfile
	IsLoading bool
	// CredentialsRevoked is set when the server rejected the stored token while
	// the session still shows a user. It clears on the next Login or Logout.
	CredentialsRevoked bool
	// PushFailures counts failed background push registrations.
	PushFailures  int
	LastPushError error
}

// IsAuthenticated reports whether a user is signed in.
func (s State) IsAuthenticated() bool { return s.User != nil }

// clone copies s so the user pointer is not shared with subscribers.
func (s State) clone() State {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}
