package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/msclient/internal/client/client"
	"github.com/dmitrijs2005/msclient/internal/client/models"
	"github.com/dmitrijs2005/msclient/internal/client/session"
	"github.com/dmitrijs2005/msclient/internal/logging"
)

// SessionStore persists the session between runs. *session.Store
// implements it.
type SessionStore interface {
	Load(ctx context.Context) (models.Session, error)
	Save(ctx context.Context, s models.Session) error
	Clear(ctx context.Context) error
}

// AuthService owns the client session.
//
// Contract:
//   - Load: restore the saved session; unreadable storage starts anonymous.
//   - Login: exchange credentials for a token, persist it, then refresh the
//     identity. A failed login leaves the session untouched.
//   - RefreshIdentity: fetch the current user's email; no-op when anonymous.
//     If the stored token has been removed or corrupted the session is
//     cleared.
//   - Logout: forget the session locally. No network call is made.
//
// Login and Logout are ordered by start time: a Login whose reply arrives
// after a newer Login or Logout began is dropped with ErrSuperseded.
type AuthService interface {
	Load(ctx context.Context) error
	Login(ctx context.Context, email, password string) error
	RefreshIdentity(ctx context.Context) error
	Logout(ctx context.Context) error
	IsAuthenticated() bool
	Session() models.Session
	TokenExpiry() (time.Time, bool)
}

type authService struct {
	api    client.Client
	store  SessionStore
	logger logging.Logger

	mu         sync.Mutex
	state      models.Session
	generation uint64
}

func NewAuthService(api client.Client, store SessionStore, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &authService{api: api, store: store, logger: logger}
}

func (a *authService) Load(ctx context.Context) error {
	sess, err := a.store.Load(ctx)
	switch {
	case errors.Is(err, session.ErrMalformedStorage) && sess.Token != "":
		a.logger.Warn(ctx, "stored identity is unreadable, keeping token", "error", err)
		sess.UserEmail = ""
		if sErr := a.store.Save(ctx, sess); sErr != nil {
			a.logger.Warn(ctx, "failed to rewrite unreadable session", "error", sErr)
		}
	case errors.Is(err, session.ErrMalformedStorage):
		a.logger.Warn(ctx, "stored session is unreadable, starting signed out", "error", err)
		if cErr := a.store.Clear(ctx); cErr != nil {
			a.logger.Warn(ctx, "failed to discard unreadable session", "error", cErr)
		}
		sess = models.Session{}
	case err != nil:
		a.logger.Error(ctx, "failed to load session", "error", err)
		return fmt.Errorf("load session: %w", err)
	}

	a.mu.Lock()
	a.state = sess
	a.mu.Unlock()

	if sess.Authenticated() {
		a.logger.Info(ctx, "session restored", "email", sess.UserEmail)
	}
	return nil
}

func (a *authService) Login(ctx context.Context, email, password string) error {
	a.mu.Lock()
	a.generation++
	gen := a.generation
	a.mu.Unlock()

	resp, err := a.api.Login(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		err = classifyLoginError(err)
		a.logger.Error(ctx, "login failed", "email", email, "error", err)
		return err
	}

	if err := a.commitLogin(ctx, gen, resp.AuthToken); err != nil {
		return err
	}
	a.logger.Info(ctx, "logged in", "email", email)

	if err := a.RefreshIdentity(ctx); err != nil {
		a.logger.Warn(ctx, "logged in but identity is unknown", "error", err)
	}
	return nil
}

func (a *authService) commitLogin(ctx context.Context, gen uint64, token string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if gen != a.generation {
		a.logger.Warn(ctx, "discarding stale login reply")
		return ErrSuperseded
	}

	next := models.Session{Token: token}
	if err := a.store.Save(ctx, next); err != nil {
		a.logger.Error(ctx, "failed to persist session", "error", err)
		return fmt.Errorf("persist session: %w", err)
	}
	a.state = next
	return nil
}

func (a *authService) RefreshIdentity(ctx context.Context) error {
	a.mu.Lock()
	token := a.state.Token
	a.mu.Unlock()

	if token == "" {
		return nil
	}

	user, err := a.api.GetCurrentUser(ctx)
	if err != nil {
		if errors.Is(err, client.ErrAuthRequired) {
			a.invalidate(ctx, token)
		}
		a.logger.Error(ctx, "failed to refresh identity", "error", err)
		return fmt.Errorf("refresh identity: %w", err)
	}
	if user.Email == "" {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if token != a.state.Token {
		return ErrSuperseded
	}

	next := a.state
	next.UserEmail = user.Email
	if err := a.store.Save(ctx, next); err != nil {
		a.logger.Error(ctx, "failed to persist session", "error", err)
		return fmt.Errorf("persist session: %w", err)
	}
	a.state = next
	return nil
}

// invalidate forgets a session whose stored token is gone or unreadable.
// It does nothing if the session changed since token was read.
func (a *authService) invalidate(ctx context.Context, token string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state.Token != token {
		return
	}
	a.generation++
	a.state = models.Session{}
	a.logger.Warn(ctx, "stored token is gone, session cleared")

	if err := a.store.Clear(ctx); err != nil {
		a.logger.Warn(ctx, "failed to discard invalid session", "error", err)
	}
}

// Logout clears memory first, so the session is gone even if storage
// cannot be cleared.
func (a *authService) Logout(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.generation++
	a.state = models.Session{}

	if err := a.store.Clear(ctx); err != nil {
		a.logger.Error(ctx, "failed to clear stored session", "error", err)
		return fmt.Errorf("clear session: %w", err)
	}
	a.logger.Info(ctx, "logged out")
	return nil
}

func (a *authService) IsAuthenticated() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.Authenticated()
}

func (a *authService) Session() models.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *authService) TokenExpiry() (time.Time, bool) {
	return session.TokenExpiry(a.Session().Token)
}

func classifyLoginError(err error) error {
	switch {
	case client.IsStatus(err, http.StatusBadRequest),
		client.IsStatus(err, http.StatusUnauthorized),
		client.IsStatus(err, http.StatusForbidden):
		return fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	default:
		return fmt.Errorf("login: %w", err)
	}
}
