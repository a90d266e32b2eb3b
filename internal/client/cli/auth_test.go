package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/msclient/internal/client/client"
	"github.com/dmitrijs2005/msclient/internal/client/models"
	"github.com/dmitrijs2005/msclient/internal/client/services"
)

func stubInputs(t *testing.T, email string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return email, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

// ---- fake auth service ----

type fakeAuth struct {
	state models.Session

	loginEmail string
	loginPass  string
	loginErr   error
	loginSets  models.Session

	refreshErr   error
	refreshEmail string
	refreshCalls int

	logoutCalled bool
	logoutErr    error

	expiry   time.Time
	expiryOK bool
}

var _ services.AuthService = (*fakeAuth)(nil)

func (f *fakeAuth) Load(context.Context) error { return nil }
func (f *fakeAuth) Login(_ context.Context, email, password string) error {
	f.loginEmail, f.loginPass = email, password
	if f.loginErr != nil {
		return f.loginErr
	}
	f.state = f.loginSets
	return nil
}
func (f *fakeAuth) RefreshIdentity(context.Context) error {
	f.refreshCalls++
	if f.refreshErr != nil {
		return f.refreshErr
	}
	if f.refreshEmail != "" {
		f.state.UserEmail = f.refreshEmail
	}
	return nil
}
func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled = true
	f.state = models.Session{}
	return f.logoutErr
}
func (f *fakeAuth) IsAuthenticated() bool          { return f.state.Token != "" }
func (f *fakeAuth) Session() models.Session        { return f.state }
func (f *fakeAuth) TokenExpiry() (time.Time, bool) { return f.expiry, f.expiryOK }

func newTestApp(auth services.AuthService) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{authService: auth, out: &out, reader: rdr("")}, &out
}

func TestLogin_Success(t *testing.T) {
	f := &fakeAuth{loginSets: models.Session{Token: "T1", UserEmail: "a@b.com"}}
	a, out := newTestApp(f)

	pw := []byte("pw")
	stubInputs(t, "a@b.com", pw)

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, "a@b.com", f.loginEmail)
	assert.Equal(t, "pw", f.loginPass)
	assert.Contains(t, out.String(), "Logged in as a@b.com")
	assert.Equal(t, []byte{0, 0}, pw, "password must be wiped")
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"invalid credentials", fmt.Errorf("%w: %w", services.ErrInvalidCredentials, &client.HTTPError{Status: 401}), "invalid email or password"},
		{"unavailable", fmt.Errorf("login: %w", client.ErrUnavailable), "Server unavailable"},
		{"other", errors.New("boom"), "Login unsuccessful: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeAuth{loginErr: tt.err}
			a, out := newTestApp(f)
			stubInputs(t, "a@b.com", []byte("bad"))

			err := a.Login(context.Background())
			require.ErrorIs(t, err, tt.err)
			assert.Contains(t, out.String(), tt.want)
			assert.False(t, a.isLoggedIn())
		})
	}
}

func TestLogin_PromptError(t *testing.T) {
	f := &fakeAuth{}
	a, _ := newTestApp(f)

	origST := getSimpleText
	getSimpleText = func(*bufio.Reader, string, io.Writer) (string, error) { return "", io.EOF }
	t.Cleanup(func() { getSimpleText = origST })

	require.ErrorIs(t, a.Login(context.Background()), io.EOF)
	assert.Empty(t, f.loginEmail)
}

func TestLogout(t *testing.T) {
	f := &fakeAuth{state: models.Session{Token: "T1"}}
	a, out := newTestApp(f)

	require.NoError(t, a.Logout(context.Background()))
	assert.True(t, f.logoutCalled)
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Logged out")
}

func TestLogout_ErrorPropagates(t *testing.T) {
	f := &fakeAuth{logoutErr: errors.New("clean-fail")}
	a, _ := newTestApp(f)
	require.Error(t, a.Logout(context.Background()))
}

func TestWhoAmI(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		f := &fakeAuth{}
		a, out := newTestApp(f)
		require.NoError(t, a.WhoAmI(context.Background()))
		assert.Contains(t, out.String(), "Not logged in")
		assert.Zero(t, f.refreshCalls)
	})

	t.Run("refreshes", func(t *testing.T) {
		f := &fakeAuth{state: models.Session{Token: "T1"}, refreshEmail: "a@b.com"}
		a, out := newTestApp(f)
		require.NoError(t, a.WhoAmI(context.Background()))
		assert.Equal(t, "a@b.com\n", out.String())
	})

	t.Run("expired", func(t *testing.T) {
		f := &fakeAuth{state: models.Session{Token: "T1"}, refreshErr: &client.HTTPError{Status: http.StatusUnauthorized}}
		a, out := newTestApp(f)
		require.Error(t, a.WhoAmI(context.Background()))
		assert.Contains(t, out.String(), "Session expired")
	})
}

func TestStatus(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		a, out := newTestApp(&fakeAuth{})
		require.NoError(t, a.Status(context.Background()))
		assert.Equal(t, "Status: anonymous\n", out.String())
	})

	t.Run("authenticated with expiry", func(t *testing.T) {
		exp := time.Now().Add(-time.Minute)
		f := &fakeAuth{
			state:    models.Session{Token: "T1", UserEmail: "a@b.com"},
			expiry:   exp,
			expiryOK: true,
		}
		a, out := newTestApp(f)
		require.NoError(t, a.Status(context.Background()))
		assert.Contains(t, out.String(), "Status: authenticated")
		assert.Contains(t, out.String(), "Email: a@b.com")
		assert.Contains(t, out.String(), "(expired)")
	})
}

func TestGetStatus(t *testing.T) {
	a, _ := newTestApp(&fakeAuth{})
	assert.Equal(t, "", a.getStatus())

	a, _ = newTestApp(&fakeAuth{state: models.Session{Token: "T1"}})
	assert.Equal(t, "(logged in) ", a.getStatus())

	a, _ = newTestApp(&fakeAuth{state: models.Session{Token: "T1", UserEmail: "a@b.com"}})
	assert.Equal(t, "(a@b.com) ", a.getStatus())
}

func TestTokenExpiryFromRealJWT(t *testing.T) {
	// end-to-end formatting of a JWT-backed expiry
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)}).SignedString([]byte("k"))
	require.NoError(t, err)

	f := &fakeAuth{state: models.Session{Token: tok}, expiry: exp, expiryOK: true}
	a, out := newTestApp(f)
	require.NoError(t, a.Status(context.Background()))
	assert.Contains(t, out.String(), exp.Local().Format(time.RFC3339))
	assert.NotContains(t, out.String(), "(expired)")
}
