package monarch

import (
	"context"
	"time"

	"github.com/erikrubstein/monarch-api/pkg/graphql"
)

const getCashflowDocument = `query Web_GetCashFlowPage($filters: TransactionFilterInput) {
  byCategory: aggregates(filters: $filters, groupBy: ["category"]) {
    groupBy {
      category {
        id
        name
        icon
        group {
          id
          type
          __typename
        }
        __typename
      }
      __typename
    }
    summary {
      sum
      __typename
    }
    __typename
  }
  byCategoryGroup: aggregates(filters: $filters, groupBy: ["categoryGroup"]) {
    groupBy {
      categoryGroup {
        id
        name
        type
        __typename
      }
      __typename
    }
    summary {
      sum
      __typename
    }
    __typename
  }
  byMerchant: aggregates(filters: $filters, groupBy: ["merchant"]) {
    groupBy {
      merchant {
        id
        name
        logoUrl
        __typename
      }
      __typename
    }
    summary {
      sumIncome
      sumExpense
      __typename
    }
    __typename
  }
  summary: aggregates(filters: $filters, fillEmptyValues: true) {
    summary {
      sumIncome
      sumExpense
      savings
      savingsRate
      __typename
    }
    __typename
  }
}`

const getCashflowSummaryDocument = `query Web_GetCashFlowPage($filters: TransactionFilterInput) {
  summary: aggregates(filters: $filters, fillEmptyValues: true) {
    summary {
      sumIncome
      sumExpense
      savings
      savingsRate
      __typename
    }
    __typename
  }
}`

// CashflowQuery bounds the cashflow aggregates. Empty dates mean the
// current calendar month.
type CashflowQuery struct {
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
}

func (q CashflowQuery) filters() map[string]any {
	startDate, endDate := q.StartDate, q.EndDate
	if startDate == "" {
		now := time.Now()
		startDate = monthStart(now)
		endDate = monthEnd(now)
	}

	return map[string]any{
		"search":     "",
		"categories": []string{},
		"accounts":   []string{},
		"tags":       []string{},
		"startDate":  startDate,
		"endDate":    endDate,
	}
}

// GetCashflow returns income and spending aggregated by category, category
// group, and merchant over the window.
func (c *Client) GetCashflow(ctx context.Context, q CashflowQuery) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Web_GetCashFlowPage",
		Document:  getCashflowDocument,
		Variables: map[string]any{"filters": q.filters()},
	})
}

// GetCashflowSummary returns just the headline numbers: income, expenses,
// savings and savings rate over the window.
func (c *Client) GetCashflowSummary(ctx context.Context, q CashflowQuery) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Web_GetCashFlowPage",
		Document:  getCashflowSummaryDocument,
		Variables: map[string]any{"filters": q.filters()},
	})
}
