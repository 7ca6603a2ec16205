package business

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erikrubstein/monarch-api/pkg/clienterr"
)

func TestRefreshMain(t *testing.T) {
	service := newFakeService(t)
	service.data["Common_ForceRefreshAccountsMutation"] = map[string]any{
		"forceRefreshAccounts": map[string]any{"success": true, "errors": nil},
	}
	service.data["ForceRefreshAccountsQuery"] = map[string]any{
		"accounts": []any{
			map[string]any{"id": "1", "hasSyncOrRecentRefreshRequest": false},
		},
	}
	cfg := testConfig(t, service.URL)
	seedSession(t, cfg)

	err := RefreshMain(t.Context(), cfg, time.Second, time.Millisecond)
	require.NoError(t, err)
}

func TestRefreshMain_Declined(t *testing.T) {
	service := newFakeService(t)
	service.data["Common_ForceRefreshAccountsMutation"] = map[string]any{
		"forceRefreshAccounts": map[string]any{"success": false, "errors": nil},
	}
	cfg := testConfig(t, service.URL)
	seedSession(t, cfg)

	err := RefreshMain(t.Context(), cfg, time.Second, time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, clienterr.ErrRequestFailed)
}
