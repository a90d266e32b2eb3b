// Package models holds the client-side data shapes exchanged with the API
// and kept in the local session store.
package models

// Session is the client-held authentication record. Empty strings mean
// absent; UserEmail is only meaningful while Token is set.
type Session struct {
	Token     string
	UserEmail string
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}
