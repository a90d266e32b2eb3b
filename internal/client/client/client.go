package client

import (
	"context"

	"github.com/dmitrijs2005/msclient/internal/client/models"
)

// TokenSource yields the bearer token for protected calls. Lookup failures
// are reported as ok == false, never as an error.
type TokenSource interface {
	Token(ctx context.Context) (token string, ok bool)
}

// Client is the typed surface of the Model Society API.
type Client interface {
	GetProfile(ctx context.Context, name string) (*models.Profile, error)
	Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error)
	GetCurrentUser(ctx context.Context) (*models.UserData, error)
}
