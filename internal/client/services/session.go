// Package services contains application services for the moviedb client.
// This file defines the session service: local registration and login,
// logout, the current identity and the device-local session hint.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/moviedb/internal/client/forms"
	"github.com/dmitrijs2005/moviedb/internal/client/models"
	"github.com/dmitrijs2005/moviedb/internal/client/storage"
	"github.com/dmitrijs2005/moviedb/internal/common"
	"github.com/dmitrijs2005/moviedb/internal/cryptox"
	"github.com/dmitrijs2005/moviedb/internal/logging"
)

// NoPasswordRecoveryNotice is shown before registration.
const NoPasswordRecoveryNotice = "Note: there is no password recovery. If you forget your password you will need to register a new account."

// State is the lifecycle stage of a SessionService.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateAuthenticated
	StateUnauthenticated
	// StateUnavailable is terminal: the store could not be initialized.
	StateUnavailable
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateUnavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// IdentityListener is called after every identity change, with the new user
// on login/register and with nil on logout. Listeners run synchronously in
// the goroutine that caused the change.
type IdentityListener func(ctx context.Context, user *models.User)

// SessionService owns the current identity. Create it with NewSessionService
// and call Initialize before anything else.
type SessionService struct {
	store  storage.Store
	hints  storage.HintStore
	logger logging.Logger

	hashPassword   func(string) (string, error)
	verifyPassword func(encoded, password string) bool

	initMu sync.Mutex

	mu        sync.RWMutex
	state     State
	initErr   error
	user      *models.User
	listeners []IdentityListener
}

// NewSessionService constructs a SessionService over store and hints, which
// are usually the same engine.
func NewSessionService(store storage.Store, hints storage.HintStore, logger logging.Logger) *SessionService {
	return &SessionService{
		store:          store,
		hints:          hints,
		logger:         logger,
		hashPassword:   cryptox.HashPassword,
		verifyPassword: cryptox.VerifyPassword,
	}
}

// Initialize opens the store and starts unauthenticated. A stored session
// hint is discarded, never restored. Calling it again is a no-op, except
// after a failure, which is reported again.
func (s *SessionService) Initialize(ctx context.Context) error {
	s.initMu.Lock()
	defer s.initMu.Unlock()

	s.mu.Lock()
	switch s.state {
	case StateUninitialized:
		s.state = StateInitializing
	case StateUnavailable:
		err := s.initErr
		s.mu.Unlock()
		return err
	default:
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	if err := s.store.Initialize(ctx); err != nil {
		if !errors.Is(err, common.ErrStorageUnavailable) {
			err = fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
		}
		s.logger.Error(ctx, "local store initialization failed", "error", err)

		s.mu.Lock()
		s.state = StateUnavailable
		s.initErr = err
		s.mu.Unlock()
		return err
	}

	s.discardHint(ctx)

	s.mu.Lock()
	s.state = StateUnauthenticated
	s.mu.Unlock()
	return nil
}

func (s *SessionService) discardHint(ctx context.Context) {
	userID, ok, err := s.hints.GetHint(ctx)
	if err != nil {
		s.logger.Warn(ctx, "failed to read session hint", "error", err)
		return
	}
	if !ok {
		return
	}

	s.logger.Info(ctx, "discarding stored session", "user_id", userID)
	if err := s.hints.DeleteHint(ctx); err != nil {
		s.logger.Warn(ctx, "failed to delete session hint", "error", err)
	}
}

// ready reports whether the store may be used.
func (s *SessionService) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch s.state {
	case StateAuthenticated, StateUnauthenticated:
		return nil
	case StateUnavailable:
		return s.initErr
	default:
		return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, common.ErrNotInitialized)
	}
}

// Login authenticates against the local store. An unknown username and a
// wrong password fail the same way, with common.ErrInvalidCredentials.
func (s *SessionService) Login(ctx context.Context, username, password string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := forms.Validate(forms.Login{Username: username, Password: password}); err != nil {
		return err
	}

	u, err := s.store.FindUserByUsername(ctx, username)
	if err != nil {
		s.logger.Error(ctx, "login lookup failed", "username", username, "error", err)
		return common.ErrLoginFailed
	}
	if u == nil || !s.verifyPassword(u.PasswordHash, password) {
		s.logger.Info(ctx, "login rejected", "username", username)
		return common.ErrInvalidCredentials
	}

	s.signIn(ctx, u)
	s.logger.Info(ctx, "user logged in", "user_id", u.ID)
	return nil
}

// Register validates form, creates the account and signs it in. Username
// and email clashes are reported as *common.ConflictError, username first.
func (s *SessionService) Register(ctx context.Context, form forms.Registration) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := forms.Validate(form); err != nil {
		return err
	}

	existing, err := s.store.FindUserByUsername(ctx, form.Username)
	if err != nil {
		s.logger.Error(ctx, "registration lookup failed", "field", "username", "error", err)
		return common.ErrRegistrationFailed
	}
	if existing != nil {
		return &common.ConflictError{Field: "username"}
	}

	existing, err = s.store.FindUserByEmail(ctx, form.Email)
	if err != nil {
		s.logger.Error(ctx, "registration lookup failed", "field", "email", "error", err)
		return common.ErrRegistrationFailed
	}
	if existing != nil {
		return &common.ConflictError{Field: "email"}
	}

	hash, err := s.hashPassword(form.Password)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return common.ErrRegistrationFailed
	}

	u, err := s.store.CreateUser(ctx, form.Username, form.Email, hash)
	if err != nil {
		var conflict *common.ConflictError
		if errors.As(err, &conflict) {
			return conflict
		}
		s.logger.Error(ctx, "create user failed", "username", form.Username, "error", err)
		return common.ErrRegistrationFailed
	}

	s.signIn(ctx, u)
	s.logger.Info(ctx, "user registered", "user_id", u.ID)
	return nil
}

func (s *SessionService) signIn(ctx context.Context, u *models.User) {
	current := *u

	s.mu.Lock()
	s.user = &current
	s.state = StateAuthenticated
	listeners := append([]IdentityListener(nil), s.listeners...)
	s.mu.Unlock()

	if err := s.hints.SetHint(ctx, current.ID); err != nil {
		s.logger.Warn(ctx, "failed to write session hint", "user_id", current.ID, "error", err)
	}

	for _, fn := range listeners {
		cp := current
		fn(ctx, &cp)
	}
}

// Logout forgets the current identity. It never fails; hint removal
// problems are only logged.
func (s *SessionService) Logout(ctx context.Context) {
	s.mu.Lock()
	if s.state != StateAuthenticated {
		s.mu.Unlock()
		return
	}
	userID := s.user.ID
	s.user = nil
	s.state = StateUnauthenticated
	listeners := append([]IdentityListener(nil), s.listeners...)
	s.mu.Unlock()

	if err := s.hints.DeleteHint(ctx); err != nil {
		s.logger.Warn(ctx, "failed to delete session hint", "error", err)
	}

	for _, fn := range listeners {
		fn(ctx, nil)
	}
	s.logger.Info(ctx, "user logged out", "user_id", userID)
}

// CurrentUser returns a copy of the signed-in user, or nil.
func (s *SessionService) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *SessionService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == StateAuthenticated
}

func (s *SessionService) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Loading reports whether Initialize is in progress.
func (s *SessionService) Loading() bool {
	return s.State() == StateInitializing
}

// Subscribe registers fn for identity changes.
func (s *SessionService) Subscribe(fn IdentityListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}
