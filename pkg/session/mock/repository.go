package sessionmock

import (
	"context"
	"io/fs"
	"sync"

	"github.com/erikrubstein/monarch-api/pkg/clienterr"
	"github.com/erikrubstein/monarch-api/pkg/session"
)

// Store is an in-memory session.Store with injectable per-method errors,
// mirroring the contract of the file backend.
type Store struct {
	mu      sync.Mutex
	Stored  *session.Session
	Saves   int
	Loads   int
	Deletes int

	saveErr, loadErr, deleteErr error
}

func NewInMemStore(saveErr, loadErr, deleteErr error) *Store {
	return &Store{
		saveErr:   saveErr,
		loadErr:   loadErr,
		deleteErr: deleteErr,
	}
}

func (s *Store) Save(ctx context.Context, sess session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Saves++
	if s.saveErr != nil {
		return s.saveErr
	}

	clone := sess.Clone()
	s.Stored = &clone
	return nil
}

func (s *Store) Load(ctx context.Context) (session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Loads++
	if s.loadErr != nil {
		return session.Session{}, s.loadErr
	}

	if s.Stored == nil {
		return session.Session{}, clienterr.Storage("reading session file", fs.ErrNotExist)
	}

	return s.Stored.Clone(), nil
}

func (s *Store) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Deletes++
	if s.deleteErr != nil {
		return s.deleteErr
	}

	s.Stored = nil
	return nil
}
