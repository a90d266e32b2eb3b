// Package common contains constants and small helpers shared by the client
// packages.
package common

const (
	// AuthorizationHeader carries the bearer token on protected requests.
	AuthorizationHeader = "Authorization"

	// BearerScheme prefixes the token value in AuthorizationHeader.
	BearerScheme = "Bearer"

	// RequestIDHeader correlates a logical request across retry attempts.
	RequestIDHeader = "X-Request-ID"

	// TokenStorageKey is the storage key of the {"token": "..."} blob that
	// the request gateway reads the bearer token from.
	TokenStorageKey = "auth"
)
