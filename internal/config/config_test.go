package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	store := NewLocalStorage(filepath.Join(t.TempDir(), "state"))

	_, ok := store.Get("k")
	assert.False(t, ok)

	store.Set("k", "value")
	v, ok := store.Get("k")
	require.True(t, ok)
	assert.Equal(t, "value", v)

	store.Remove("k")
	_, ok = store.Get("k")
	assert.False(t, ok)

	// removing twice is a no-op
	store.Remove("k")
}

func TestLocalStorage_UnwritableDirIsSilent(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	// the "directory" is a regular file, so every operation fails
	store := NewLocalStorage(filepath.Join(blocker, "state"))
	store.Set("k", "v")
	_, ok := store.Get("k")
	assert.False(t, ok)
	store.Remove("k")
}

func TestLocalStorage_NilAndEmpty(t *testing.T) {
	var nilStore *LocalStorage
	nilStore.Set("k", "v")
	_, ok := nilStore.Get("k")
	assert.False(t, ok)

	empty := NewLocalStorage("")
	empty.Set("k", "v")
	_, ok = empty.Get("k")
	assert.False(t, ok)
}

func TestLoadSettings(t *testing.T) {
	t.Run("absent uses defaults", func(t *testing.T) {
		store := NewLocalStorage(t.TempDir())
		assert.Equal(t, DefaultSettings(), LoadSettings(store))
	})

	t.Run("corrupt uses defaults", func(t *testing.T) {
		store := NewLocalStorage(t.TempDir())
		store.Set(SettingsKey, "{not json")
		assert.Equal(t, DefaultSettings(), LoadSettings(store))
	})

	t.Run("partial keeps missing defaults", func(t *testing.T) {
		store := NewLocalStorage(t.TempDir())
		store.Set(SettingsKey, `{"timeout":5,"apiUrl":"http://10.1.1.1:8000/api/v1"}`)
		s := LoadSettings(store)
		assert.Equal(t, 5, s.Timeout)
		assert.Equal(t, "http://10.1.1.1:8000/api/v1", s.APIURL)
		assert.Equal(t, 60, s.SessionTimeout)
		assert.True(t, s.AutoRefresh)
	})

	t.Run("save then load", func(t *testing.T) {
		store := NewLocalStorage(t.TempDir())
		s := DefaultSettings()
		s.RefreshInterval = 10
		s.EmailNotifications = true
		SaveSettings(store, s)
		assert.Equal(t, s, LoadSettings(store))
	})
}

func TestSettings_Durations(t *testing.T) {
	s := DefaultSettings()
	assert.Zero(t, s.RequestTimeout(), "no client timeout by default")
	assert.Equal(t, 30*time.Second, s.RefreshEvery())

	s.Timeout = 15
	assert.Equal(t, 15*time.Second, s.RequestTimeout())

	s.Timeout = -1
	s.AutoRefresh = false
	assert.Zero(t, s.RequestTimeout())
	assert.Zero(t, s.RefreshEvery())
}

func TestSidebarCollapsed(t *testing.T) {
	store := NewLocalStorage(t.TempDir())
	assert.False(t, SidebarCollapsed(store))

	SetSidebarCollapsed(store, true)
	assert.True(t, SidebarCollapsed(store))

	SetSidebarCollapsed(store, false)
	assert.False(t, SidebarCollapsed(store))
}

func TestStateDir(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set(KeyStateDir, "/tmp/svod-state")
	assert.Equal(t, "/tmp/svod-state", StateDir())
}

func TestSaveValue_WritesConfigFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfgFile := filepath.Join(t.TempDir(), "svod.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("origin: http://10.0.0.5:8080\n"), 0o600))
	InitConfig(cfgFile)
	assert.Equal(t, "http://10.0.0.5:8080", viper.GetString(KeyOrigin))

	require.NoError(t, SaveValue(KeyAPIBaseURL, "http://10.0.0.5:9000/api/v1"))

	b, err := os.ReadFile(cfgFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), "api_base_url: http://10.0.0.5:9000/api/v1")
}
