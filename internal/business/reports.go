package business

import (
	"context"
	"fmt"

	"github.com/erikrubstein/monarch-api/internal/config"
	"github.com/erikrubstein/monarch-api/pkg/monarch"
)

// AccountsMain prints all accounts of the household as JSON.
func AccountsMain(ctx context.Context, cfg *config.Config) error {
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	if err := loadSavedSession(ctx, client); err != nil {
		return err
	}

	result, err := client.GetAccounts(ctx)
	if err != nil {
		return fmt.Errorf("fetching accounts: %w", err)
	}

	return printJSON(result)
}

// TransactionsOptions are the flag-settable knobs of the transactions
// command.
type TransactionsOptions struct {
	Limit     int
	Offset    int
	Search    string
	StartDate string
	EndDate   string
}

// TransactionsMain prints a page of transactions as JSON, newest first.
func TransactionsMain(ctx context.Context, cfg *config.Config, opts TransactionsOptions) error {
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	if err := loadSavedSession(ctx, client); err != nil {
		return err
	}

	result, err := client.GetTransactions(ctx, monarch.TransactionsQuery{
		Limit:     opts.Limit,
		Offset:    opts.Offset,
		Search:    opts.Search,
		StartDate: opts.StartDate,
		EndDate:   opts.EndDate,
	})
	if err != nil {
		return fmt.Errorf("fetching transactions: %w", err)
	}

	return printJSON(result)
}

// BudgetsMain prints the budgets around the current month as JSON.
func BudgetsMain(ctx context.Context, cfg *config.Config) error {
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	if err := loadSavedSession(ctx, client); err != nil {
		return err
	}

	result, err := client.GetBudgets(ctx, "", "")
	if err != nil {
		return fmt.Errorf("fetching budgets: %w", err)
	}

	return printJSON(result)
}

// CashflowMain prints the cashflow summary of the current month as JSON.
func CashflowMain(ctx context.Context, cfg *config.Config) error {
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	if err := loadSavedSession(ctx, client); err != nil {
		return err
	}

	result, err := client.GetCashflowSummary(ctx, monarch.CashflowQuery{})
	if err != nil {
		return fmt.Errorf("fetching the cashflow summary: %w", err)
	}

	return printJSON(result)
}
