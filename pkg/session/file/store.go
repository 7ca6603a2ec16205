package sessionfile

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/erikrubstein/monarch-api/pkg/clienterr"
	"github.com/erikrubstein/monarch-api/pkg/session"
)

// Store keeps the session record in a single JSON file. Writes go through a
// temporary file in the same directory followed by a rename, so a process
// killed mid-write never leaves a corrupt record at the configured path.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the configured file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Save(ctx context.Context, sess session.Session) error {
	if !sess.Valid() {
		return clienterr.Storage("refusing to save an incomplete session", nil)
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return clienterr.Storage("encoding session", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return clienterr.Storage("creating session directory", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-")
	if err != nil {
		return clienterr.Storage("creating temporary session file", err)
	}

	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return clienterr.Storage("writing session file", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return clienterr.Storage("closing session file", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		_ = os.Remove(tmpName)
		return clienterr.Storage("restricting session file permissions", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return clienterr.Storage("replacing session file", err)
	}

	return nil
}

func (s *Store) Load(ctx context.Context) (session.Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return session.Session{}, clienterr.Storage("reading session file", err)
	}

	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return session.Session{}, clienterr.Storage("decoding session file", err)
	}

	if !sess.Valid() {
		return session.Session{}, clienterr.Storage("session file is missing required fields", nil)
	}

	return sess, nil
}

func (s *Store) Delete(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return clienterr.Storage("removing session file", err)
	}
	return nil
}
