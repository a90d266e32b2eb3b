package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/msclient/internal/client/models"
)

const (
	profilePathFmt = "/api/members/%s/profile"
	authPath       = "/api/auth"
	mePath         = "/api/me"
)

// GetProfile fetches a member's public profile. Public; no token is sent.
func (c *HTTPClient) GetProfile(ctx context.Context, name string) (*models.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: member name is required", ErrInvalidRequest)
	}

	var p models.Profile
	if err := c.FetchPublic(ctx, fmt.Sprintf(profilePathFmt, url.PathEscape(name)), RequestOptions{}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Login exchanges credentials for an auth token. It is public and, being a
// POST, never retried.
func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	opts := RequestOptions{Method: http.MethodPost, Body: creds}
	if err := c.FetchPublic(ctx, authPath, opts, &resp); err != nil {
		return nil, err
	}
	if resp.AuthToken == "" {
		return nil, fmt.Errorf("%w: empty authToken", ErrMalformedResponse)
	}
	return &resp, nil
}

// GetCurrentUser fetches the identity behind the current token.
func (c *HTTPClient) GetCurrentUser(ctx context.Context) (*models.UserData, error) {
	var u models.UserData
	if err := c.FetchProtected(ctx, mePath, RequestOptions{}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
