package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/userhub/internal/models"
	"github.com/iudanet/userhub/internal/server/storage"
)

func setupTestStorage(t *testing.T) *Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := New(context.Background(), dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func TestBoltUserStorage_CreateUser(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	user := &models.User{
		Username:     "alice123",
		PasswordHash: "hash123",
	}

	err := s.CreateUser(ctx, user)
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	retrieved, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, retrieved.ID)
	assert.Equal(t, "alice123", retrieved.Username)
	assert.Equal(t, "hash123", retrieved.PasswordHash)
	assert.False(t, retrieved.IsDeleted)
}

func TestBoltUserStorage_CreateUser_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	require.NoError(t, s.CreateUser(ctx, &models.User{Username: "alice123", PasswordHash: "hash1"}))

	// Индекс username проверяется в той же write-транзакции
	err := s.CreateUser(ctx, &models.User{Username: "alice123", PasswordHash: "hash2"})
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
}

func TestBoltUserStorage_GetUserByUsername(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	user := &models.User{Username: "alice123", PasswordHash: "hash1"}
	require.NoError(t, s.CreateUser(ctx, user))

	retrieved, err := s.GetUserByUsername(ctx, "alice123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, retrieved.ID)

	// Поиск чувствителен к регистру
	_, err = s.GetUserByUsername(ctx, "Alice123")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	_, err = s.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestBoltUserStorage_ListActiveUsers(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	users, err := s.ListActiveUsers(ctx)
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)

	alice := &models.User{Username: "alice123", PasswordHash: "hash1"}
	bob := &models.User{Username: "bob456", PasswordHash: "hash2"}
	require.NoError(t, s.CreateUser(ctx, alice))
	require.NoError(t, s.CreateUser(ctx, bob))
	require.NoError(t, s.SoftDeleteUser(ctx, bob.ID))

	users, err = s.ListActiveUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice123", users[0].Username)
}

func TestBoltUserStorage_SoftDeleteUser(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	user := &models.User{Username: "alice123", PasswordHash: "hash1"}
	require.NoError(t, s.CreateUser(ctx, user))

	require.NoError(t, s.SoftDeleteUser(ctx, user.ID))

	retrieved, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, retrieved.IsDeleted)

	// Имя остается занятым
	err = s.CreateUser(ctx, &models.User{Username: "alice123", PasswordHash: "hash2"})
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)

	err = s.SoftDeleteUser(ctx, "no-such-id")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestBoltUserStorage_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := New(ctx, dbPath)
	require.NoError(t, err)

	user := &models.User{Username: "alice123", PasswordHash: "hash1"}
	require.NoError(t, s.CreateUser(ctx, user))
	require.NoError(t, s.Close())

	reopened, err := New(ctx, dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	retrieved, err := reopened.GetUserByUsername(ctx, "alice123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, retrieved.ID)
}
