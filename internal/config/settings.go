package config

import (
	"encoding/json"
	"time"
)

// Fixed storage keys for persisted client state.
const (
	SettingsKey         = "svod_settings"
	SidebarCollapsedKey = "svod_sidebar_collapsed"
)

// Settings is the user preference blob edited by `settings set`.
type Settings struct {
	APIURL             string `json:"apiUrl" yaml:"apiUrl"`
	Timeout            int    `json:"timeout" yaml:"timeout"` // seconds, 0 = transport default
	PushNotifications  bool   `json:"pushNotifications" yaml:"pushNotifications"`
	SoundAlerts        bool   `json:"soundAlerts" yaml:"soundAlerts"`
	EmailNotifications bool   `json:"emailNotifications" yaml:"emailNotifications"`
	SessionTimeout     int    `json:"sessionTimeout" yaml:"sessionTimeout"` // minutes
	AutoLogout         bool   `json:"autoLogout" yaml:"autoLogout"`
	RefreshInterval    int    `json:"refreshInterval" yaml:"refreshInterval"` // seconds
	AutoRefresh        bool   `json:"autoRefresh" yaml:"autoRefresh"`
}

func DefaultSettings() Settings {
	return Settings{
		PushNotifications: true,
		SoundAlerts:       true,
		SessionTimeout:    60,
		AutoLogout:        true,
		RefreshInterval:   30,
		AutoRefresh:       true,
	}
}

// RequestTimeout converts the timeout setting for the HTTP client. The
// default of 0 leaves ordinary calls without a client-side limit.
func (s Settings) RequestTimeout() time.Duration {
	if s.Timeout <= 0 {
		return 0
	}
	return time.Duration(s.Timeout) * time.Second
}

// RefreshEvery is the console auto-refresh period, 0 when disabled.
func (s Settings) RefreshEvery() time.Duration {
	if !s.AutoRefresh || s.RefreshInterval <= 0 {
		return 0
	}
	return time.Duration(s.RefreshInterval) * time.Second
}

// LoadSettings returns the stored settings, or defaults when the blob is
// absent or cannot be parsed. Fields missing from the blob keep their defaults.
func LoadSettings(store *LocalStorage) Settings {
	s := DefaultSettings()
	raw, ok := store.Get(SettingsKey)
	if !ok {
		return s
	}
	parsed := DefaultSettings()
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		store.log.WithError(err).Debug("settings blob unreadable, using defaults")
		return s
	}
	return parsed
}

func SaveSettings(store *LocalStorage, s Settings) {
	b, err := json.Marshal(s)
	if err != nil {
		return
	}
	store.Set(SettingsKey, string(b))
}

// SidebarCollapsed reads the console side panel flag ("1" = collapsed).
func SidebarCollapsed(store *LocalStorage) bool {
	v, ok := store.Get(SidebarCollapsedKey)
	return ok && v == "1"
}

func SetSidebarCollapsed(store *LocalStorage, collapsed bool) {
	v := "0"
	if collapsed {
		v = "1"
	}
	store.Set(SidebarCollapsedKey, v)
}
