package storefakes

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/ashidadhich33-source/MY-erp-sub000/tokenstore"
)

var _ tokenstore.Store = (*FakeStore)(nil)

// FakeStore is an in-memory Store that records every operation so tests can
// assert who touched the credentials and how often.
type FakeStore struct {
	lock  sync.RWMutex
	creds tokenstore.Credentials

	Reads      int
	Writes     int
	Clears     int
	FailWrites bool // When set, Write returns an error
	FailReads  bool // When set, Read reports no credentials
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

// Seed installs a credential pair without counting as a Write.
func (s *FakeStore) Seed(creds tokenstore.Credentials) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.creds = creds
}

func (s *FakeStore) Read() (tokenstore.Credentials, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Reads++
	if s.FailReads {
		return tokenstore.Credentials{}, false
	}
	return s.creds, s.creds.Present()
}

func (s *FakeStore) Write(creds tokenstore.Credentials) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Writes++
	if s.FailWrites {
		return errors.New("store unavailable")
	}
	s.creds = creds
	return nil
}

func (s *FakeStore) Clear() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Clears++
	s.creds = tokenstore.Credentials{}
	return nil
}
