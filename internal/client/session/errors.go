package session

import "errors"

var ErrMalformedStorage = errors.New("malformed session storage")
