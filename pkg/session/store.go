package session

import "context"

// Store persists one session record at one durable location. Every call
// round-trips through the backing storage; nothing is cached in memory.
type Store interface {
	// Save serializes the session, overwriting any existing record.
	Save(ctx context.Context, s Session) error

	// Load reads the stored session. Absence is an error; callers that
	// treat a missing record as "no saved session" test the cause with
	// errors.Is(err, fs.ErrNotExist).
	Load(ctx context.Context) (Session, error)

	// Delete removes the stored session. Deleting a record that does not
	// exist succeeds silently.
	Delete(ctx context.Context) error
}
