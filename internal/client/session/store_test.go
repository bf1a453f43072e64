package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/attendance/internal/client/models"
	"github.com/dmitrijs2005/attendance/internal/client/storage"
	"github.com/dmitrijs2005/attendance/internal/cryptox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := storage.InitDatabase(context.Background(), filepath.Join(t.TempDir(), DatabaseFile))
	require.NoError(t, err)
	s := NewStore(db, cryptox.NewKey())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

var alice = models.User{ID: 1, Username: "alice", Email: "alice@example.org", IsManager: true}

func TestStore_EmptyReturnsAbsent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	token, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	user, err := s.User(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestStore_SaveThenRead(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "tok-123", alice))

	token, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)

	user, err := s.User(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, alice, *user)
}

func TestStore_TokenIsSealedAtRest(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetToken(ctx, "plain-token"))

	raw, err := s.repo.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "plain-token")
}

func TestStore_IndividualSetAndRemove(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetToken(ctx, "t"))
	require.NoError(t, s.SetUser(ctx, alice))

	require.NoError(t, s.RemoveToken(ctx))
	token, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	user, err := s.User(ctx)
	require.NoError(t, err)
	assert.NotNil(t, user, "removing the token must not touch the user")

	require.NoError(t, s.RemoveUser(ctx))
	user, err = s.User(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestStore_Clear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "t", alice))
	require.NoError(t, s.Clear(ctx))

	token, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	user, err := s.User(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestStore_CorruptUserIsAnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.repo.Set(ctx, KeyUser, []byte("{not json")))

	_, err := s.User(ctx)
	require.ErrorContains(t, err, "decode user")
}

func TestStore_ClosedDatabasePropagatesErrors(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Close())

	_, err := s.Token(ctx)
	require.Error(t, err)
	require.Error(t, s.Save(ctx, "t", alice))
}

func TestOpen_SurvivesRestart(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	ctx := context.Background()

	s, err := Open(ctx, dir)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "persisted", alice))
	require.NoError(t, s.Close())

	_, err = os.Stat(filepath.Join(dir, KeyFile))
	require.NoError(t, err)

	s, err = Open(ctx, dir)
	require.NoError(t, err)
	defer s.Close()

	token, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted", token)
}
