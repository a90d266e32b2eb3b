// Package session persists the client session in the local metadata table.
//
// Two keys are written together in one transaction:
//
//	auth     {"token": "..."}                     read by the request gateway
//	session  {"token": "...", "userEmail": "..."} read at start-up
//
// The name of the second key is configurable. A blob that cannot be decoded
// is treated as absent by Token and reported as ErrMalformedStorage by Load.
package session
