package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// LocalStorage is client-local persistent key/value storage, one file per key.
// Every operation is best-effort: failures are logged at debug level and
// reported as absence, never returned to the caller.
type LocalStorage struct {
	dir string
	log logrus.FieldLogger
}

func NewLocalStorage(dir string) *LocalStorage {
	return &LocalStorage{
		dir: dir,
		log: logrus.WithField("component", "local-storage"),
	}
}

func (s *LocalStorage) path(key string) string {
	return filepath.Join(s.dir, filepath.Base(key))
}

// Get returns the stored value and whether it was present and readable.
func (s *LocalStorage) Get(key string) (string, bool) {
	if s == nil || s.dir == "" {
		return "", false
	}
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.WithError(err).WithField("key", key).Debug("read failed")
		}
		return "", false
	}
	return strings.TrimRight(string(b), "\n"), true
}

func (s *LocalStorage) Set(key, value string) {
	if s == nil || s.dir == "" {
		return
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		s.log.WithError(err).Debug("state dir unavailable")
		return
	}
	if err := os.WriteFile(s.path(key), []byte(value), 0o600); err != nil {
		s.log.WithError(err).WithField("key", key).Debug("write failed")
	}
}

func (s *LocalStorage) Remove(key string) {
	if s == nil || s.dir == "" {
		return
	}
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.WithError(err).WithField("key", key).Debug("remove failed")
	}
}
