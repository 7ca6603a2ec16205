package monarch

import (
	"context"
	"fmt"

	"github.com/erikrubstein/monarch-api/pkg/graphql"
)

const getTransactionsDocument = `query GetTransactionsList($offset: Int, $limit: Int, $filters: TransactionFilterInput, $orderBy: TransactionOrdering) {
  allTransactions(filters: $filters) {
    totalCount
    results(offset: $offset, limit: $limit, orderBy: $orderBy) {
      id
      ...TransactionOverviewFields
      __typename
    }
    __typename
  }
  transactionRules {
    id
    __typename
  }
}
fragment TransactionOverviewFields on Transaction {
  id
  amount
  pending
  date
  hideFromReports
  plaidName
  notes
  isRecurring
  reviewStatus
  needsReview
  attachments {
    id
    extension
    filename
    originalAssetUrl
    publicId
    sizeBytes
    __typename
  }
  isSplitTransaction
  createdAt
  updatedAt
  category {
    id
    name
    __typename
  }
  merchant {
    name
    id
    transactionsCount
    __typename
  }
  account {
    id
    displayName
    __typename
  }
  tags {
    id
    name
    color
    order
    __typename
  }
  __typename
}`

const getTransactionsSummaryDocument = `query GetTransactionsPage($filters: TransactionFilterInput) {
  aggregates(filters: $filters) {
    summary {
      ...TransactionsSummaryFields
      __typename
    }
    __typename
  }
}
fragment TransactionsSummaryFields on TransactionsSummary {
  avg
  count
  max
  maxExpense
  sum
  sumIncome
  sumExpense
  first
  last
  __typename
}`

const getTransactionDetailsDocument = `query GetTransactionDrawer($id: UUID!, $redirectPosted: Boolean) {
  getTransaction(id: $id, redirectPosted: $redirectPosted) {
    id
    amount
    pending
    isRecurring
    date
    originalDate
    hideFromReports
    needsReview
    reviewedAt
    reviewedByUser {
      id
      name
      __typename
    }
    plaidName
    notes
    hasSplitTransactions
    isSplitTransaction
    isManual
    splitTransactions {
      id
      ...TransactionDrawerSplitMessageFields
      __typename
    }
    originalTransaction {
      id
      ...OriginalTransactionFields
      __typename
    }
    attachments {
      id
      publicId
      extension
      sizeBytes
      filename
      originalAssetUrl
      __typename
    }
    account {
      id
      displayName
      __typename
    }
    category {
      id
      name
      __typename
    }
    goal {
      id
      __typename
    }
    merchant {
      id
      name
      transactionCount
      logoUrl
      recurringTransactionStream {
        id
        __typename
      }
      __typename
    }
    tags {
      id
      name
      color
      order
      __typename
    }
    __typename
  }
  myHousehold {
    users {
      id
      name
      __typename
    }
    __typename
  }
}
fragment TransactionDrawerSplitMessageFields on Transaction {
  id
  amount
  merchant {
    id
    name
    __typename
  }
  category {
    id
    name
    __typename
  }
  __typename
}
fragment OriginalTransactionFields on Transaction {
  id
  date
  amount
  merchant {
    id
    name
    __typename
  }
  __typename
}`

const createTransactionDocument = `mutation Common_CreateTransactionMutation($input: CreateTransactionMutationInput!) {
  createTransaction(input: $input) {
    errors {
      ...PayloadErrorFields
      __typename
    }
    transaction {
      id
      __typename
    }
    __typename
  }
}
fragment PayloadErrorFields on PayloadError {
  fieldErrors {
    field
    messages
    __typename
  }
  message
  code
  __typename
}`

const deleteTransactionDocument = `mutation Common_DeleteTransactionMutation($input: DeleteTransactionMutationInput!) {
  deleteTransaction(input: $input) {
    deleted
    errors {
      ...PayloadErrorFields
      __typename
    }
    __typename
  }
}
fragment PayloadErrorFields on PayloadError {
  fieldErrors {
    field
    messages
    __typename
  }
  message
  code
  __typename
}`

const updateTransactionDocument = `mutation Web_TransactionDrawerUpdateTransaction($input: UpdateTransactionMutationInput!) {
  updateTransaction(input: $input) {
    transaction {
      id
      amount
      pending
      date
      hideFromReports
      needsReview
      reviewedAt
      reviewedByUser {
        id
        __typename
      }
      plaidName
      notes
      isRecurring
      category {
        id
        __typename
      }
      goal {
        id
        __typename
      }
      merchant {
        id
        name
        __typename
      }
      __typename
    }
    errors {
      ...PayloadErrorFields
      __typename
    }
    __typename
  }
}
fragment PayloadErrorFields on PayloadError {
  fieldErrors {
    field
    messages
    __typename
  }
  message
  code
  __typename
}`

const getTransactionSplitsDocument = `query TransactionSplitQuery($id: UUID!) {
  getTransaction(id: $id) {
    id
    amount
    category {
      id
      name
      __typename
    }
    merchant {
      id
      name
      __typename
    }
    splitTransactions {
      id
      merchant {
        id
        name
        __typename
      }
      category {
        id
        name
        __typename
      }
      amount
      notes
      __typename
    }
    __typename
  }
}`

const updateTransactionSplitsDocument = `mutation Common_SplitTransactionMutation($input: UpdateTransactionSplitMutationInput!) {
  updateTransactionSplit(input: $input) {
    errors {
      ...PayloadErrorFields
      __typename
    }
    transaction {
      id
      hasSplitTransactions
      splitTransactions {
        id
        merchant {
          id
          name
          __typename
        }
        amount
        notes
        __typename
      }
      __typename
    }
    __typename
  }
}
fragment PayloadErrorFields on PayloadError {
  fieldErrors {
    field
    messages
    __typename
  }
  message
  code
  __typename
}`

// TransactionsQuery bounds and filters GetTransactions. The zero value
// means the newest hundred transactions across all accounts.
type TransactionsQuery struct {
	Limit       int    // page size, 100 when zero
	Offset      int    // rows to skip
	StartDate   string // YYYY-MM-DD, both dates or neither
	EndDate     string // YYYY-MM-DD
	Search      string // free-text search
	CategoryIDs []string
	AccountIDs  []string
	TagIDs      []string
}

// GetTransactions returns a page of transactions, newest first.
func (c *Client) GetTransactions(ctx context.Context, q TransactionsQuery) (map[string]any, error) {
	if (q.StartDate == "") != (q.EndDate == "") {
		return nil, fmt.Errorf("transactions query needs both StartDate and EndDate or neither")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}

	filters := map[string]any{
		"search":     q.Search,
		"categories": stringList(q.CategoryIDs),
		"accounts":   stringList(q.AccountIDs),
		"tags":       stringList(q.TagIDs),
	}
	if q.StartDate != "" {
		filters["startDate"] = q.StartDate
		filters["endDate"] = q.EndDate
	}

	return c.exec.Execute(ctx, graphql.Operation{
		Name:     "GetTransactionsList",
		Document: getTransactionsDocument,
		Variables: map[string]any{
			"offset":  q.Offset,
			"limit":   limit,
			"orderBy": "date",
			"filters": filters,
		},
	})
}

// GetTransactionsSummary returns household-wide aggregates over all
// transactions.
func (c *Client) GetTransactionsSummary(ctx context.Context) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:     "GetTransactionsPage",
		Document: getTransactionsSummaryDocument,
		Variables: map[string]any{
			"filters": map[string]any{
				"search":     "",
				"categories": []string{},
				"accounts":   []string{},
				"tags":       []string{},
			},
		},
	})
}

func (c *Client) GetTransactionDetails(ctx context.Context, transactionID string) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "GetTransactionDrawer",
		Document:  getTransactionDetailsDocument,
		Variables: map[string]any{"id": transactionID, "redirectPosted": true},
	})
}

// TransactionInput describes a manually entered transaction.
type TransactionInput struct {
	Date          string  // YYYY-MM-DD
	AccountID     string
	Amount        float64 // negative for expenses
	MerchantName  string
	CategoryID    string
	Notes         string
	UpdateBalance bool // adjust the account balance by Amount
}

func (c *Client) CreateTransaction(ctx context.Context, input TransactionInput) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:     "Common_CreateTransactionMutation",
		Document: createTransactionDocument,
		Variables: map[string]any{
			"input": map[string]any{
				"date":                input.Date,
				"accountId":           input.AccountID,
				"amount":              input.Amount,
				"merchantName":        input.MerchantName,
				"categoryId":          input.CategoryID,
				"notes":               input.Notes,
				"shouldUpdateBalance": input.UpdateBalance,
			},
		},
	})
}

func (c *Client) DeleteTransaction(ctx context.Context, transactionID string) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Common_DeleteTransactionMutation",
		Document:  deleteTransactionDocument,
		Variables: map[string]any{"input": map[string]any{"transactionId": transactionID}},
	})
}

// UpdateTransaction applies changes to one transaction. changes uses the
// service's field names (e.g. "amount", "categoryId", "notes",
// "hideFromReports") and travels verbatim next to the id.
func (c *Client) UpdateTransaction(ctx context.Context, transactionID string, changes map[string]any) (map[string]any, error) {
	input := map[string]any{"id": transactionID}
	for k, v := range changes {
		input[k] = v
	}

	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Web_TransactionDrawerUpdateTransaction",
		Document:  updateTransactionDocument,
		Variables: map[string]any{"input": input},
	})
}

func (c *Client) GetTransactionSplits(ctx context.Context, transactionID string) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "TransactionSplitQuery",
		Document:  getTransactionSplitsDocument,
		Variables: map[string]any{"id": transactionID},
	})
}

// TransactionSplit is one part of a split transaction. The split amounts
// must sum to the original transaction's amount.
type TransactionSplit struct {
	MerchantName string
	Amount       float64
	CategoryID   string
	Notes        string
}

// UpdateTransactionSplits replaces the splits of a transaction. An empty
// splits removes the split entirely.
func (c *Client) UpdateTransactionSplits(ctx context.Context, transactionID string, splits []TransactionSplit) (map[string]any, error) {
	splitData := make([]map[string]any, 0, len(splits))
	for _, split := range splits {
		splitData = append(splitData, map[string]any{
			"merchantName": split.MerchantName,
			"amount":       split.Amount,
			"categoryId":   split.CategoryID,
			"notes":        split.Notes,
		})
	}

	return c.exec.Execute(ctx, graphql.Operation{
		Name:     "Common_SplitTransactionMutation",
		Document: updateTransactionSplitsDocument,
		Variables: map[string]any{
			"input": map[string]any{
				"transactionId": transactionID,
				"splitData":     splitData,
			},
		},
	})
}

// stringList keeps empty slices as empty JSON arrays rather than nulls.
func stringList(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
