package monarch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erikrubstein/monarch-api/pkg/clienterr"
)

func TestDeleteAccount_Result(t *testing.T) {
	c, exec := newCatalogClient()
	exec.ReturnFor("Common_DeleteAccount", map[string]any{
		"deleteAccount": map[string]any{"deleted": true, "errors": nil},
	})

	result, err := c.DeleteAccount(t.Context(), "170123456789012345")
	require.NoError(t, err)

	payload, ok := result["deleteAccount"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, payload["deleted"])
	assert.Nil(t, payload["errors"])
}

func TestRequestAccountsRefresh(t *testing.T) {
	tests := []struct {
		name   string
		result map[string]any
		want   bool
	}{
		{
			name:   "Accepted",
			result: map[string]any{"forceRefreshAccounts": map[string]any{"success": true, "errors": nil}},
			want:   true,
		},
		{
			name:   "Declined",
			result: map[string]any{"forceRefreshAccounts": map[string]any{"success": false}},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, exec := newCatalogClient()
			exec.ReturnFor("Common_ForceRefreshAccountsMutation", tt.result)

			got, err := c.RequestAccountsRefresh(t.Context(), []string{"acct-1"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsAccountsRefreshComplete(t *testing.T) {
	status := map[string]any{
		"accounts": []map[string]any{
			{"id": "acct-1", "hasSyncOrRecentRefreshRequest": false},
			{"id": "acct-2", "hasSyncOrRecentRefreshRequest": true},
			{"id": "acct-3", "hasSyncOrRecentRefreshRequest": false},
		},
	}

	tests := []struct {
		name       string
		accountIDs []string
		want       bool
	}{
		{name: "Any pending account blocks the household", accountIDs: nil, want: false},
		{name: "Pending account in the subset", accountIDs: []string{"acct-1", "acct-2"}, want: false},
		{name: "Subset without pending accounts", accountIDs: []string{"acct-1", "acct-3"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, exec := newCatalogClient()
			exec.ReturnFor("ForceRefreshAccountsQuery", status)

			got, err := c.IsAccountsRefreshComplete(t.Context(), tt.accountIDs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequestAccountsRefreshAndWait(t *testing.T) {
	t.Run("Finishes once no refresh is pending", func(t *testing.T) {
		c, exec := newCatalogClient()
		exec.ReturnFor("Common_ForceRefreshAccountsMutation", map[string]any{
			"forceRefreshAccounts": map[string]any{"success": true},
		})
		exec.ReturnFor("ForceRefreshAccountsQuery", map[string]any{
			"accounts": []map[string]any{{"id": "acct-1", "hasSyncOrRecentRefreshRequest": false}},
		})

		err := c.RequestAccountsRefreshAndWait(t.Context(), []string{"acct-1"}, time.Second, time.Millisecond)
		assert.NoError(t, err)
	})

	t.Run("A declined request fails without polling", func(t *testing.T) {
		c, exec := newCatalogClient()
		exec.ReturnFor("Common_ForceRefreshAccountsMutation", map[string]any{
			"forceRefreshAccounts": map[string]any{"success": false},
		})

		err := c.RequestAccountsRefreshAndWait(t.Context(), nil, time.Second, time.Millisecond)
		assert.ErrorIs(t, err, clienterr.ErrRequestFailed)
		assert.Equal(t, 1, exec.CallCount())
	})

	t.Run("Gives up when the refresh never settles", func(t *testing.T) {
		c, exec := newCatalogClient()
		exec.ReturnFor("Common_ForceRefreshAccountsMutation", map[string]any{
			"forceRefreshAccounts": map[string]any{"success": true},
		})
		exec.ReturnFor("ForceRefreshAccountsQuery", map[string]any{
			"accounts": []map[string]any{{"id": "acct-1", "hasSyncOrRecentRefreshRequest": true}},
		})

		err := c.RequestAccountsRefreshAndWait(t.Context(), nil, 30*time.Millisecond, 5*time.Millisecond)
		assert.ErrorIs(t, err, clienterr.ErrRequestFailed)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
