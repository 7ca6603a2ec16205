package monarch

import (
	"context"
	"time"

	"github.com/erikrubstein/monarch-api/pkg/graphql"
)

const getRecurringTransactionsDocument = `query Web_GetUpcomingRecurringTransactionItems($startDate: Date!, $endDate: Date!, $filters: RecurringTransactionFilter) {
  recurringTransactionItems(startDate: $startDate, endDate: $endDate, filters: $filters) {
    stream {
      id
      frequency
      amount
      isApproximate
      merchant {
        id
        name
        logoUrl
        __typename
      }
      __typename
    }
    date
    isPast
    transactionId
    amount
    amountDiff
    category {
      id
      name
      __typename
    }
    account {
      id
      displayName
      logoUrl
      __typename
    }
    __typename
  }
}`

// GetRecurringTransactions returns the expected subscription and bill
// items in the window. Empty dates mean the current calendar month.
func (c *Client) GetRecurringTransactions(ctx context.Context, startDate, endDate string) (map[string]any, error) {
	if startDate == "" {
		now := time.Now()
		startDate = monthStart(now)
		endDate = monthEnd(now)
	}

	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Web_GetUpcomingRecurringTransactionItems",
		Document:  getRecurringTransactionsDocument,
		Variables: map[string]any{"startDate": startDate, "endDate": endDate},
	})
}
