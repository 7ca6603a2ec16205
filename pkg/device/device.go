package device

import (
	"context"

	"github.com/google/uuid"

	"github.com/erikrubstein/monarch-api/pkg/session"
)

// The service uses a per-installation device identifier to recognise a
// returning client and skip repeat secondary verification. The identifier
// rides along in the persisted session, so it survives re-logins for as
// long as the session record does.

// Resolve returns the device identifier to present on the next credential
// exchange: the one recorded in a previously saved session when one decodes,
// otherwise a freshly generated UUID.
func Resolve(ctx context.Context, store session.Store) string {
	if store != nil {
		if saved, err := store.Load(ctx); err == nil && saved.DeviceUUID != "" {
			return saved.DeviceUUID
		}
	}
	return uuid.NewString()
}
