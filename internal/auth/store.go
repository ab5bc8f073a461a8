package auth

import (
	"strings"
	"sync"

	"github.com/MrJinPro/SVOD/internal/config"
)

// TokenKey is the fixed storage key of the bearer credential.
const TokenKey = "svod_access_token"

// TokenStore persists one bearer credential for the whole process.
// Implementations never fail: storage problems read as "no token".
type TokenStore interface {
	Get() (string, bool)
	Set(token string)
	Clear()
}

// FileStore keeps the token in client-local storage so it survives restarts.
type FileStore struct {
	storage *config.LocalStorage
}

func NewFileStore(storage *config.LocalStorage) *FileStore {
	return &FileStore{storage: storage}
}

func (s *FileStore) Get() (string, bool) {
	tok, ok := s.storage.Get(TokenKey)
	tok = strings.TrimSpace(tok)
	if !ok || tok == "" {
		return "", false
	}
	return tok, true
}

func (s *FileStore) Set(token string) {
	s.storage.Set(TokenKey, token)
}

func (s *FileStore) Clear() {
	s.storage.Remove(TokenKey)
}

// MemoryStore is a process-local TokenStore, used by the exporter service.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *MemoryStore) Set(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *MemoryStore) Clear() {
	s.Set("")
}
