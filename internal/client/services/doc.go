// Package services holds the client's application services: the
// authentication service that owns the session, and the public profile
// lookup.
package services
