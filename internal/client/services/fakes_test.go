package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/msclient/internal/client/client"
	"github.com/dmitrijs2005/msclient/internal/client/models"
)

// ---- fake client ----

type fakeClient struct {
	mu sync.Mutex

	LoginFn   func(ctx context.Context, c models.Credentials) (*models.LoginResponse, error)
	MeFn      func(ctx context.Context) (*models.UserData, error)
	ProfileFn func(ctx context.Context, name string) (*models.Profile, error)

	LoginCalls int
	MeCalls    int
	LastCreds  models.Credentials
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Login(ctx context.Context, c models.Credentials) (*models.LoginResponse, error) {
	f.mu.Lock()
	f.LoginCalls++
	f.LastCreds = c
	fn := f.LoginFn
	f.mu.Unlock()
	if fn == nil {
		return nil, errors.New("unexpected Login")
	}
	return fn(ctx, c)
}

func (f *fakeClient) GetCurrentUser(ctx context.Context) (*models.UserData, error) {
	f.mu.Lock()
	f.MeCalls++
	fn := f.MeFn
	f.mu.Unlock()
	if fn == nil {
		return nil, errors.New("unexpected GetCurrentUser")
	}
	return fn(ctx)
}

func (f *fakeClient) GetProfile(ctx context.Context, name string) (*models.Profile, error) {
	if f.ProfileFn == nil {
		return nil, errors.New("unexpected GetProfile")
	}
	return f.ProfileFn(ctx, name)
}

func loginReturns(token string) func(context.Context, models.Credentials) (*models.LoginResponse, error) {
	return func(context.Context, models.Credentials) (*models.LoginResponse, error) {
		return &models.LoginResponse{AuthToken: token}, nil
	}
}

func meReturns(email string) func(context.Context) (*models.UserData, error) {
	return func(context.Context) (*models.UserData, error) {
		return &models.UserData{Email: email}, nil
	}
}

// ---- fake store ----

type fakeStore struct {
	mu sync.Mutex

	saved    models.Session
	LoadErr  error
	SaveErr  error
	ClearErr error

	Saves  int
	Clears int
}

func (s *fakeStore) Load(context.Context) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved, s.LoadErr
}

func (s *fakeStore) Save(_ context.Context, sess models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Saves++
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.saved = sess
	return nil
}

func (s *fakeStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Clears++
	s.saved = models.Session{}
	return s.ClearErr
}

func (s *fakeStore) Saved() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved
}
