package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/attendance/internal/client/models"
	"github.com/dmitrijs2005/attendance/internal/client/repositories/kv"
	"github.com/dmitrijs2005/attendance/internal/client/storage"
	"github.com/dmitrijs2005/attendance/internal/cryptox"
	"github.com/dmitrijs2005/attendance/internal/dbx"
	"github.com/dmitrijs2005/attendance/internal/filex"
)

// Storage keys.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// File names inside the data directory.
const (
	DatabaseFile = "session.db"
	KeyFile      = "session.key"
)

type Store struct {
	db   *sql.DB
	repo kv.Repository
	key  []byte
}

// NewStore wraps an already migrated database. key seals the token.
func NewStore(db *sql.DB, key []byte) *Store {
	return &Store{db: db, repo: kv.NewSQLiteRepository(db), key: key}
}

// Open prepares dataDir, opens the session database in it and loads (or
// creates) the device key.
func Open(ctx context.Context, dataDir string) (*Store, error) {
	dir, err := filex.EnsureDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	key, err := cryptox.LoadOrCreateKey(filepath.Join(dir, KeyFile))
	if err != nil {
		return nil, fmt.Errorf("device key: %w", err)
	}

	db, err := storage.InitDatabase(ctx, filepath.Join(dir, DatabaseFile))
	if err != nil {
		return nil, fmt.Errorf("session database: %w", err)
	}

	return NewStore(db, key), nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Token returns the stored token, or "" when there is none.
func (s *Store) Token(ctx context.Context) (string, error) {
	sealed, err := s.repo.Get(ctx, KeyToken)
	if err != nil {
		return "", err
	}
	if sealed == nil {
		return "", nil
	}

	plain, err := cryptox.Open(s.key, sealed)
	if err != nil {
		return "", fmt.Errorf("unseal token: %w", err)
	}
	return string(plain), nil
}

func (s *Store) SetToken(ctx context.Context, token string) error {
	return setToken(ctx, s.repo, s.key, token)
}

func (s *Store) RemoveToken(ctx context.Context) error {
	return s.repo.Delete(ctx, KeyToken)
}

// User returns the stored profile, or nil when there is none.
func (s *Store) User(ctx context.Context) (*models.User, error) {
	raw, err := s.repo.Get(ctx, KeyUser)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &u, nil
}

func (s *Store) SetUser(ctx context.Context, user models.User) error {
	return setUser(ctx, s.repo, user)
}

func (s *Store) RemoveUser(ctx context.Context) error {
	return s.repo.Delete(ctx, KeyUser)
}

// Save writes token and user in one transaction.
func (s *Store) Save(ctx context.Context, token string, user models.User) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)
		if err := setToken(ctx, repo, s.key, token); err != nil {
			return err
		}
		return setUser(ctx, repo, user)
	})
}

// Clear removes both token and user. The database holds nothing but the
// session, so the whole table goes.
func (s *Store) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

func setToken(ctx context.Context, repo kv.Repository, key []byte, token string) error {
	sealed, err := cryptox.Seal(key, []byte(token))
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}
	return repo.Set(ctx, KeyToken, sealed)
}

func setUser(ctx context.Context, repo kv.Repository, user models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return repo.Set(ctx, KeyUser, raw)
}
