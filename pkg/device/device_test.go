package device_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erikrubstein/monarch-api/pkg/device"
	"github.com/erikrubstein/monarch-api/pkg/session"
	sessionmock "github.com/erikrubstein/monarch-api/pkg/session/mock"
)

func TestResolve(t *testing.T) {
	const savedUUID = "fffa1c45-d83b-4ecf-a72c-1bb372f839f6"

	withSaved := sessionmock.NewInMemStore(nil, nil, nil)
	require.NoError(t, withSaved.Save(t.Context(), session.Session{
		Token:      "token-value",
		DeviceUUID: savedUUID,
	}))

	tests := []struct {
		name      string
		store     session.Store
		wantSaved bool
	}{
		{
			name:      "Reuses the identifier from a saved session",
			store:     withSaved,
			wantSaved: true,
		},
		{
			name:  "Generates when nothing is saved",
			store: sessionmock.NewInMemStore(nil, nil, nil),
		},
		{
			name:  "Generates when the store cannot be read",
			store: sessionmock.NewInMemStore(nil, errors.New("disk gone"), nil),
		},
		{
			name:  "Generates without a store",
			store: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := device.Resolve(t.Context(), tt.store)

			if tt.wantSaved {
				assert.Equal(t, savedUUID, got)
				return
			}
			assert.NoError(t, uuid.Validate(got), "generated identifier must be a UUID")
			assert.NotEqual(t, savedUUID, got)
		})
	}
}

func TestResolve_StableAcrossLogins(t *testing.T) {
	store := sessionmock.NewInMemStore(nil, nil, nil)
	require.NoError(t, store.Save(t.Context(), session.Session{
		Token:      "token-value",
		DeviceUUID: "11111111-2222-3333-4444-555555555555",
	}))

	first := device.Resolve(t.Context(), store)
	second := device.Resolve(t.Context(), store)
	assert.Equal(t, first, second, "a saved session must keep the identifier stable")
}
