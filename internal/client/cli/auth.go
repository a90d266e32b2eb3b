package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/msclient/internal/client/client"
	"github.com/dmitrijs2005/msclient/internal/client/services"
	"github.com/dmitrijs2005/msclient/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for an email and hidden password and authenticates.
//
// The password byte slice is wiped before returning. The outcome is printed;
// the service error, if any, is returned for callers that care.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, email, string(password)); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			fmt.Fprintln(a.out, "Login unsuccessful: invalid email or password")
		case errors.Is(err, client.ErrUnavailable):
			fmt.Fprintln(a.out, "Server unavailable, try again later")
		default:
			fmt.Fprintf(a.out, "Login unsuccessful: %v\n", err)
		}
		return err
	}

	if sess := a.authService.Session(); sess.UserEmail != "" {
		fmt.Fprintf(a.out, "Logged in as %s\n", sess.UserEmail)
	} else {
		fmt.Fprintln(a.out, "Logged in")
	}
	return nil
}

// Logout forgets the session. Memory is cleared even if storage fails.
func (a *App) Logout(ctx context.Context) error {
	err := a.authService.Logout(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Logged out, but the saved session could not be removed: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI refreshes the identity from the API and prints it.
func (a *App) WhoAmI(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	if err := a.authService.RefreshIdentity(ctx); err != nil {
		if client.IsStatus(err, http.StatusUnauthorized) {
			fmt.Fprintln(a.out, "Session expired, please log in again")
		} else {
			fmt.Fprintf(a.out, "Could not refresh identity: %v\n", err)
		}
		return err
	}

	email := a.authService.Session().UserEmail
	if email == "" {
		email = "(unknown)"
	}
	fmt.Fprintln(a.out, email)
	return nil
}

// Status prints the local session state. It makes no network call.
func (a *App) Status(_ context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Status: anonymous")
		return nil
	}

	fmt.Fprintln(a.out, "Status: authenticated")
	if email := a.authService.Session().UserEmail; email != "" {
		fmt.Fprintf(a.out, "Email: %s\n", email)
	}
	if exp, ok := a.authService.TokenExpiry(); ok {
		note := ""
		if time.Now().After(exp) {
			note = " (expired)"
		}
		fmt.Fprintf(a.out, "Token expires: %s%s\n", exp.Local().Format(time.RFC3339), note)
	}
	return nil
}
