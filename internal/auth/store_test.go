package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJinPro/SVOD/internal/config"
)

func TestFileStore_Lifecycle(t *testing.T) {
	storage := config.NewLocalStorage(t.TempDir())
	store := NewFileStore(storage)

	_, ok := store.Get()
	assert.False(t, ok, "no token before login")

	store.Set("abc.def.ghi")
	tok, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, "abc.def.ghi", tok)

	// a second store over the same storage sees the same token (survives restart)
	again := NewFileStore(storage)
	tok, ok = again.Get()
	require.True(t, ok)
	assert.Equal(t, "abc.def.ghi", tok)

	store.Clear()
	_, ok = again.Get()
	assert.False(t, ok)
}

func TestFileStore_BrokenStorageReadsAsAbsent(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	store := NewFileStore(config.NewLocalStorage(filepath.Join(blocker, "state")))
	assert.NotPanics(t, func() {
		store.Set("tok")
		store.Clear()
	})
	_, ok := store.Get()
	assert.False(t, ok)
}

func TestFileStore_BlankTokenIsAbsent(t *testing.T) {
	storage := config.NewLocalStorage(t.TempDir())
	storage.Set(TokenKey, "  \n")
	_, ok := NewFileStore(storage).Get()
	assert.False(t, ok)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore("")
	_, ok := store.Get()
	assert.False(t, ok)

	store.Set("t1")
	tok, ok := store.Get()
	assert.True(t, ok)
	assert.Equal(t, "t1", tok)

	store.Clear()
	_, ok = store.Get()
	assert.False(t, ok)
}

func TestInspect(t *testing.T) {
	exp := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "u-1",
		"role": "admin",
		"iat":  exp.Add(-8 * time.Hour).Unix(),
		"exp":  exp.Unix(),
	})
	signed, err := token.SignedString([]byte("any-secret"))
	require.NoError(t, err)

	info, err := Inspect(signed)
	require.NoError(t, err)
	assert.Equal(t, "u-1", info.Subject)
	assert.Equal(t, "admin", info.Role)
	assert.True(t, info.ExpiresAt.Equal(exp))
	assert.False(t, info.Expired(exp.Add(-time.Minute)))
	assert.True(t, info.Expired(exp))

	_, err = Inspect("not-a-token")
	assert.Error(t, err)
}
