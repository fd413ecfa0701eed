// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"farmacia/cli/internal/backend"
	apperrors "farmacia/cli/internal/errors"
	"farmacia/cli/internal/model"
)

var (
	// ErrAlreadyAuthenticated is returned by Login when a user is already signed in.
	ErrAlreadyAuthenticated = errors.New("already signed in")
	// ErrInvalidCredentials is returned by Login when the server rejects the credentials.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// DefaultPushTimeout bounds the background push registration after login.
const DefaultPushTimeout = 30 * time.Second

// Pusher registers and deactivates the device push token.
// *push.Registrar satisfies it.
type Pusher interface {
	Register(ctx context.Context) error
	DeactivateAll(ctx context.Context) error
}

// Service owns the session: it restores it from the credential store, signs
// the user in and out, and publishes every state change to subscribers.
//
// Login and Logout are serialized. The state mutex is never held across I/O.
type Service struct {
	store *Store
	be    backend.API
	push  Pusher
	log   *zap.Logger

	autoTeardown bool
	pushTimeout  time.Duration

	opMu sync.Mutex

	mu     sync.Mutex
	state  State
	subs   map[uint64]chan State
	nextID uint64

	restoreOnce sync.Once
	tasks       sync.WaitGroup

	stopUnauthorized func()
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithAutoTeardown makes a server-side token rejection end the local session
// immediately instead of only flagging it as revoked.
func WithAutoTeardown() Option {
	return func(s *Service) { s.autoTeardown = true }
}

// WithPushTimeout overrides DefaultPushTimeout.
func WithPushTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.pushTimeout = d
		}
	}
}

// NewService wires a session to its store, backend and push registrar.
// push may be nil when push notifications are not supported.
func NewService(store *Store, be backend.API, push Pusher, opts ...Option) *Service {
	s := &Service{
		store:       store,
		be:          be,
		push:        push,
		log:         zap.NewNop(),
		pushTimeout: DefaultPushTimeout,
		state:       State{Phase: PhaseInitializing, IsLoading: true},
		subs:        make(map[uint64]chan State),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.stopUnauthorized = be.OnUnauthorized(s.handleUnauthorized)
	return s
}

// Snapshot returns the current state.
func (s *Service) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe returns a channel that receives the current state immediately and
// every later change. Slow readers may miss intermediate states; the buffer
// always holds the most recent ones. cancel closes the channel.
func (s *Service) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 16)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	ch <- s.state.clone()
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			close(ch)
			s.mu.Unlock()
		})
	}
}

// update applies fn under the state lock and publishes the result when fn
// reports a change.
func (s *Service) update(fn func(*State) bool) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !fn(&s.state) {
		return s.state.clone()
	}
	snap := s.state.clone()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			// drop the oldest queued state so the newest always lands
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
	return snap
}

func (s *Service) setLoading(v bool) {
	s.update(func(st *State) bool {
		st.IsLoading = v
		return true
	})
}

// Restore reads the persisted session once. Later calls return the current
// state without touching the store. A read failure or a corrupt profile clears
// the store and leaves the session signed out.
func (s *Service) Restore() State {
	s.restoreOnce.Do(s.restore)
	return s.Snapshot()
}

func (s *Service) restore() {
	_, hasToken, err := s.store.Token()
	var user *model.UserProfile
	if err == nil {
		user, err = s.store.User()
	}

	switch {
	case err != nil:
		s.log.Warn("stored session unreadable, clearing", zap.Error(err))
		s.store.ClearAll()
		user = nil
	case hasToken && user != nil:
		s.log.Debug("session restored", zap.Int("user_id", user.ID))
	default:
		user = nil
	}

	s.update(func(st *State) bool {
		st.User = user
		st.IsLoading = false
		if user != nil {
			st.Phase = PhaseAuthenticated
		} else {
			st.Phase = PhaseUnauthenticated
		}
		return true
	})
}

// Login signs in with creds. On success the token and profile are persisted,
// the session becomes authenticated and push registration starts in the
// background; its outcome never affects the result.
func (s *Service) Login(ctx context.Context, creds model.Credentials) (*model.UserProfile, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if s.Restore().IsAuthenticated() {
		return nil, ErrAlreadyAuthenticated
	}

	s.setLoading(true)
	resp, err := s.be.Login(ctx, creds)
	if err != nil {
		s.setLoading(false)
		if errors.Is(err, backend.ErrUnauthorized) {
			err = fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		}
		s.log.Debug("login failed", zap.Error(err))
		return nil, apperrors.Wrap(apperrors.LoginFailed, "sign in", err)
	}

	user := *resp.User
	if err := s.persist(resp.AccessToken, user); err != nil {
		s.log.Error("persist session", zap.Error(err))
		s.store.ClearAll()
		s.setLoading(false)
		return nil, apperrors.Wrap(apperrors.PersistFailed, "save session", err)
	}

	s.update(func(st *State) bool {
		u := user
		st.Phase = PhaseAuthenticated
		st.User = &u
		st.IsLoading = false
		st.CredentialsRevoked = false
		return true
	})
	s.log.Info("signed in", zap.Int("user_id", user.ID))

	s.registerPushDetached(ctx)
	return &user, nil
}

func (s *Service) persist(token string, user model.UserProfile) error {
	if err := s.store.SaveToken(token); err != nil {
		return err
	}
	return s.store.SaveUser(user)
}

// registerPushDetached runs push registration on its own goroutine, outliving
// ctx's cancellation but bounded by the push timeout.
func (s *Service) registerPushDetached(ctx context.Context) {
	if s.push == nil {
		return
	}
	detached := context.WithoutCancel(ctx)

	s.tasks.Add(1)
	go func() {
		defer s.tasks.Done()

		ctx, cancel := context.WithTimeout(detached, s.pushTimeout)
		defer cancel()

		err := guard(func() error { return s.push.Register(ctx) })
		if err == nil {
			return
		}
		s.log.Warn("push registration failed", zap.Error(err))
		s.update(func(st *State) bool {
			st.PushFailures++
			st.LastPushError = err
			return true
		})
	}()
}

// Wait blocks until background tasks started by Login have finished.
func (s *Service) Wait() {
	s.tasks.Wait()
}

// Logout signs out. Push deactivation and the remote logout are attempted only
// for an authenticated session whose credential the server has not already
// rejected. Each failure is recorded without stopping the sequence. The local
// credential is always cleared last.
func (s *Service) Logout(ctx context.Context) LogoutReport {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	snap := s.Restore()
	s.setLoading(true)

	// Without a usable token the server steps can only draw more 401s.
	var skipReason string
	switch {
	case !snap.IsAuthenticated():
		skipReason = "not signed in"
	case snap.CredentialsRevoked:
		skipReason = "credential already revoked by server"
	}

	var report LogoutReport
	switch {
	case skipReason != "":
		report.skip(StepDeactivatePush, skipReason)
	case s.push == nil:
		report.skip(StepDeactivatePush, "push not supported")
	default:
		report.record(StepDeactivatePush, guard(func() error { return s.push.DeactivateAll(ctx) }))
	}

	if skipReason != "" {
		report.skip(StepRemoteLogout, skipReason)
	} else {
		report.record(StepRemoteLogout, guard(func() error { return s.be.Logout(ctx) }))
	}

	report.Clear = s.store.ClearAll()
	var clearErr error
	if report.Clear == ClearFailed {
		clearErr = errors.New("credential store could not be fully cleared")
	}
	report.record(StepClearLocal, clearErr)

	for _, st := range report.Failed() {
		s.log.Warn("logout step failed", zap.String("step", string(st.Step)), zap.Error(st.Err))
	}

	s.update(func(st *State) bool {
		st.Phase = PhaseUnauthenticated
		st.User = nil
		st.IsLoading = false
		st.CredentialsRevoked = false
		return true
	})
	return report
}

// handleUnauthorized reacts to the adapter purging a rejected credential.
func (s *Service) handleUnauthorized(ev backend.UnauthorizedEvent) {
	if !s.autoTeardown {
		s.update(func(st *State) bool {
			if st.User == nil || st.CredentialsRevoked {
				return false
			}
			st.CredentialsRevoked = true
			return true
		})
		s.log.Info("stored credential revoked by server", zap.String("path", ev.Path))
		return
	}

	if !s.Snapshot().IsAuthenticated() {
		return
	}
	s.store.ClearAll()
	s.update(func(st *State) bool {
		if st.User == nil {
			return false
		}
		st.Phase = PhaseUnauthenticated
		st.User = nil
		st.CredentialsRevoked = false
		return true
	})
	s.log.Info("session ended after server rejected credential", zap.String("path", ev.Path))
}

// Close detaches from the backend's 401 notifications and waits for
// background tasks.
func (s *Service) Close() {
	if s.stopUnauthorized != nil {
		s.stopUnauthorized()
	}
	s.Wait()
}

// guard runs fn, turning a panic into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
