package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aipilotbyjd/n8njdfront/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveWritesBothStores(t *testing.T) {
	store := NewStore(t.TempDir())

	err := store.Save(Session{
		Token: "tok-123",
		User:  &models.User{ID: 1, Name: "Ada", Email: "ada@example.com"},
	})
	require.NoError(t, err)

	token, err := os.ReadFile(filepath.Join(store.home, "token"))
	require.NoError(t, err)
	assert.Equal(t, "tok-123", string(token))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", loaded.Token)
	require.NotNil(t, loaded.User)
	assert.Equal(t, "Ada", loaded.User.Name)
}

func TestStore_SaveRejectsEmptyToken(t *testing.T) {
	store := NewStore(t.TempDir())

	err := store.Save(Session{})
	assert.Error(t, err)
}

func TestStore_ClearRemovesBothStores(t *testing.T) {
	store := NewStore(t.TempDir())

	require.NoError(t, store.Save(Session{Token: "tok"}))
	require.NoError(t, store.Clear())

	assert.Empty(t, store.Token())
	assert.False(t, store.Authenticated())

	_, err := os.Stat(filepath.Join(store.home, "token"))
	assert.True(t, os.IsNotExist(err))
}

func TestStore_ClearWithoutSession(t *testing.T) {
	store := NewStore(t.TempDir())

	assert.NoError(t, store.Clear())
}

func TestStore_LoadMissing(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_ExpiredTokenReadsAsAbsent(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save(Session{Token: "tok"}))

	store.now = func() time.Time { return time.Now().Add(TokenTTL + time.Minute) }

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
	assert.False(t, store.Authenticated())
}

func TestStore_TokenSingleReadPath(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save(Session{Token: "bearer-me"}))

	assert.Equal(t, "bearer-me", store.Token())
	assert.True(t, store.Authenticated())
}
