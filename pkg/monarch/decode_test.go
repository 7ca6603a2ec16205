package monarch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	result := map[string]any{
		"subscription": map[string]any{
			"id":                    "sub-1",
			"isOnFreeTrial":         false,
			"hasPremiumEntitlement": true,
		},
		"accounts": []any{
			map[string]any{"id": "acct-1", "displayBalance": 1204.55},
			map[string]any{"id": "acct-2", "displayBalance": float64(-300)},
		},
	}

	var payload struct {
		Subscription struct {
			ID                    string `json:"id"`
			IsOnFreeTrial         bool   `json:"isOnFreeTrial"`
			HasPremiumEntitlement bool   `json:"hasPremiumEntitlement"`
		} `json:"subscription"`
		Accounts []struct {
			ID             string  `json:"id"`
			DisplayBalance float64 `json:"displayBalance"`
		} `json:"accounts"`
	}
	require.NoError(t, Decode(result, &payload))

	assert.Equal(t, "sub-1", payload.Subscription.ID)
	assert.True(t, payload.Subscription.HasPremiumEntitlement)
	require.Len(t, payload.Accounts, 2)
	assert.Equal(t, "acct-1", payload.Accounts[0].ID)
	assert.InDelta(t, 1204.55, payload.Accounts[0].DisplayBalance, 0.001)
	assert.InDelta(t, -300, payload.Accounts[1].DisplayBalance, 0.001)
}

func TestDecode_Mismatch(t *testing.T) {
	var payload struct {
		Count int `json:"count"`
	}

	err := Decode(map[string]any{"count": "not a number"}, &payload)
	assert.Error(t, err)
}
