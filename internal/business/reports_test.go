package business

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erikrubstein/monarch-api/pkg/clienterr"
)

func TestAccountsMain(t *testing.T) {
	service := newFakeService(t)
	service.data["GetAccounts"] = map[string]any{
		"accounts": []any{
			map[string]any{"id": "170123456789012345", "displayName": "Checking"},
		},
	}
	cfg := testConfig(t, service.URL)
	seedSession(t, cfg)
	out := captureOutput(t)

	err := AccountsMain(t.Context(), cfg)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"accounts": [{"id": "170123456789012345", "displayName": "Checking"}]
	}`, out.String())
}

func TestAccountsMain_NoSession(t *testing.T) {
	service := newFakeService(t)
	cfg := testConfig(t, service.URL)

	err := AccountsMain(t.Context(), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, clienterr.ErrStorage)
	assert.Contains(t, err.Error(), "run the login command first")
}

func TestTransactionsMain(t *testing.T) {
	service := newFakeService(t)
	service.data["GetTransactionsList"] = map[string]any{
		"allTransactions": map[string]any{
			"totalCount": 1,
			"results": []any{
				map[string]any{"id": "9001", "amount": -42.5, "date": "2026-08-01"},
			},
		},
	}
	cfg := testConfig(t, service.URL)
	seedSession(t, cfg)
	out := captureOutput(t)

	err := TransactionsMain(t.Context(), cfg, TransactionsOptions{Limit: 5, Search: "coffee"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), `"totalCount": 1`)
	assert.Contains(t, out.String(), `"date": "2026-08-01"`)
}

func TestTransactionsMain_BadDateRange(t *testing.T) {
	service := newFakeService(t)
	cfg := testConfig(t, service.URL)
	seedSession(t, cfg)

	err := TransactionsMain(t.Context(), cfg, TransactionsOptions{StartDate: "2026-08-01"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both StartDate and EndDate")
}

func TestBudgetsMain(t *testing.T) {
	service := newFakeService(t)
	service.data["Common_GetJointPlanningData"] = map[string]any{
		"budgetData": map[string]any{"monthlyAmountsByCategory": []any{}},
	}
	cfg := testConfig(t, service.URL)
	seedSession(t, cfg)
	out := captureOutput(t)

	err := BudgetsMain(t.Context(), cfg)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "monthlyAmountsByCategory")
}

func TestCashflowMain(t *testing.T) {
	service := newFakeService(t)
	service.data["Web_GetCashFlowPage"] = map[string]any{
		"summary": []any{
			map[string]any{"summary": map[string]any{"sumIncome": 5000.0, "sumExpense": -3200.0}},
		},
	}
	cfg := testConfig(t, service.URL)
	seedSession(t, cfg)
	out := captureOutput(t)

	err := CashflowMain(t.Context(), cfg)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "sumIncome")
}
