// Package metadata is the key/value table behind the persisted session.
package metadata

import (
	"context"
)

// Repository stores opaque blobs by key.
//
// Get reports absence with ok == false rather than an error, so callers can
// tell "never written" apart from a storage failure.
type Repository interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
