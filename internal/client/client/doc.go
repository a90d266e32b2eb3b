// Package client is the request gateway to the Model Society HTTP API.
//
// # Overview
//
// The package provides:
//  1. The Client interface with the typed endpoints: GetProfile (public),
//     Login (public, issues the token) and GetCurrentUser (protected).
//  2. HTTPClient, the net/http implementation. FetchPublic and
//     FetchProtected are the generic building blocks; FetchProtected reads
//     the bearer token from a TokenSource and fails closed without one.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Timeouts and retries
//
// Every attempt is bounded by the http.Client timeout and by the caller's
// context. Transport errors and 429/502/503/504 replies are retried with
// exponential backoff according to RetryPolicy, for idempotent methods
// only. Other non-2xx replies fail immediately.
//
// # Error Handling
//
// Sentinel errors matched with errors.Is: ErrAuthRequired, ErrUnavailable,
// ErrMalformedResponse, ErrInvalidRequest. Non-2xx replies are *HTTPError,
// matched with errors.As or IsStatus.
package client
