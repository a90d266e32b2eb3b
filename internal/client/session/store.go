package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/msclient/internal/client/models"
	"github.com/dmitrijs2005/msclient/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/msclient/internal/common"
	"github.com/dmitrijs2005/msclient/internal/dbx"
	"github.com/dmitrijs2005/msclient/internal/logging"
)

const DefaultName = "session"

type authBlob struct {
	Token *string `json:"token"`
}

type sessionBlob struct {
	Token     *string `json:"token"`
	UserEmail *string `json:"userEmail"`
}

// Store reads and writes the persisted session. It also serves as the
// gateway's token source.
type Store struct {
	db     *sql.DB
	repo   metadata.Repository
	name   string
	logger logging.Logger
}

// NewStore returns a store over db. An empty name, or one that would collide
// with the auth key, falls back to DefaultName.
func NewStore(db *sql.DB, name string, logger logging.Logger) *Store {
	if name == "" || name == common.TokenStorageKey {
		name = DefaultName
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Store{
		db:     db,
		repo:   metadata.NewSQLiteRepository(db),
		name:   name,
		logger: logger,
	}
}

func (s *Store) Name() string { return s.name }

// Token returns the persisted bearer token. Storage failures and undecodable
// blobs are logged and reported as "no token".
func (s *Store) Token(ctx context.Context) (string, bool) {
	raw, ok, err := s.repo.Get(ctx, common.TokenStorageKey)
	if err != nil {
		s.logger.Warn(ctx, "token storage unreadable", "error", err)
		return "", false
	}
	if !ok {
		return "", false
	}

	token, err := DecodeToken(raw)
	if err != nil {
		s.logger.Warn(ctx, "ignoring malformed token blob", "error", err)
		return "", false
	}
	return token, token != ""
}

// DecodeToken extracts the token from an auth blob. A null or missing token
// decodes to "".
func DecodeToken(raw []byte) (string, error) {
	var b authBlob
	if err := json.Unmarshal(raw, &b); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedStorage, err)
	}
	if b.Token == nil {
		return "", nil
	}
	return *b.Token, nil
}

// Load restores the last saved session. Nothing saved yields an empty
// session. Both malformed blobs are reported as ErrMalformedStorage: a bad
// auth blob yields the empty session, a bad session blob still yields the
// token from the auth blob, without an email.
func (s *Store) Load(ctx context.Context) (models.Session, error) {
	raw, ok, err := s.repo.Get(ctx, common.TokenStorageKey)
	if err != nil {
		return models.Session{}, fmt.Errorf("load token: %w", err)
	}
	if !ok {
		return models.Session{}, nil
	}
	token, err := DecodeToken(raw)
	if err != nil {
		return models.Session{}, err
	}
	if token == "" {
		return models.Session{}, nil
	}

	sess := models.Session{Token: token}

	raw, ok, err = s.repo.Get(ctx, s.name)
	if err != nil {
		return models.Session{}, fmt.Errorf("load %s: %w", s.name, err)
	}
	if !ok {
		return sess, nil
	}

	var b sessionBlob
	if err := json.Unmarshal(raw, &b); err != nil {
		return sess, fmt.Errorf("%w: %s: %v", ErrMalformedStorage, s.name, err)
	}
	if b.UserEmail != nil {
		sess.UserEmail = *b.UserEmail
	}
	return sess, nil
}

// Save writes both blobs atomically. A session without a token is stored
// as no session at all.
func (s *Store) Save(ctx context.Context, sess models.Session) error {
	if sess.Token == "" {
		return s.Clear(ctx)
	}

	auth, err := json.Marshal(authBlob{Token: &sess.Token})
	if err != nil {
		return fmt.Errorf("encode auth: %w", err)
	}

	full := sessionBlob{Token: &sess.Token}
	if sess.UserEmail != "" {
		full.UserEmail = &sess.UserEmail
	}
	blob, err := json.Marshal(full)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.name, err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.TokenStorageKey, auth); err != nil {
			return err
		}
		return repo.Set(ctx, s.name, blob)
	})
}

// Clear removes both blobs. Clearing an empty store is not an error.
func (s *Store) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, common.TokenStorageKey); err != nil {
			return err
		}
		return repo.Delete(ctx, s.name)
	})
}
