package tokenstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// FileStore persists the credential pair as a JSON document on disk so a
// restarted process retains its session. The file holds exactly two keys,
// "access_token" and "refresh_token", and is written with mode 0600.
//
// Reads are fail-silent: a missing, unreadable, or corrupt file reports "no
// credentials" rather than an error, and the caller proceeds unauthenticated.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a file-backed store at path. The parent directory is
// created on the first Write, not here.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Read loads the stored pair from disk.
func (s *FileStore) Read() (Credentials, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return Credentials{}, false
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, false
	}
	return creds, creds.Present()
}

// Write replaces the stored pair on disk. The file is written to a temporary
// name and renamed into place so a concurrent Read never observes a partial
// document.
func (s *FileStore) Write(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "create credentials directory")
	}

	data, err := json.Marshal(creds)
	if err != nil {
		return errors.Wrap(err, "encode credentials")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "write credentials file")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "replace credentials file")
	}
	return nil
}

// Clear removes the credentials file. A file that is already gone is fine.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove credentials file")
	}
	return nil
}
