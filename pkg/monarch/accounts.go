package monarch

import (
	"context"
	"fmt"
	"time"

	"github.com/erikrubstein/monarch-api/pkg/clienterr"
	"github.com/erikrubstein/monarch-api/pkg/graphql"
)

const getAccountsDocument = `query GetAccounts {
  accounts {
    ...AccountFields
    __typename
  }
  householdPreferences {
    id
    accountGroupOrder
    __typename
  }
}
fragment AccountFields on Account {
  id
  displayName
  syncDisabled
  deactivatedAt
  isHidden
  isAsset
  mask
  createdAt
  updatedAt
  displayLastUpdatedAt
  currentBalance
  displayBalance
  includeInNetWorth
  hideFromList
  hideTransactionsFromReports
  includeBalanceInNetWorth
  includeInGoalBalance
  dataProvider
  dataProviderAccountId
  isManual
  transactionsCount
  holdingsCount
  manualInvestmentsTrackingMethod
  order
  icon
  logoUrl
  type {
    name
    display
    __typename
  }
  subtype {
    name
    display
    __typename
  }
  credential {
    id
    updateRequired
    disconnectedFromDataProviderAt
    dataProvider
    institution {
      id
      plaidInstitutionId
      name
      status
      __typename
    }
    __typename
  }
  institution {
    id
    name
    primaryColor
    url
    __typename
  }
  __typename
}`

const getAccountTypeOptionsDocument = `query GetAccountTypeOptions {
  accountTypeOptions {
    type {
      name
      display
      group
      possibleSubtypes {
        display
        name
        __typename
      }
      __typename
    }
    subtype {
      name
      display
      __typename
    }
    __typename
  }
}`

const getAccountRecentBalancesDocument = `query GetAccountRecentBalances($startDate: Date!) {
  accounts {
    id
    recentBalances(startDate: $startDate)
    __typename
  }
}`

const getAccountSnapshotsByTypeDocument = `query GetSnapshotsByAccountType($startDate: Date!, $timeframe: Timeframe!) {
  snapshotsByAccountType(startDate: $startDate, timeframe: $timeframe) {
    accountType
    month
    balance
    __typename
  }
  accountTypes {
    name
    group
    __typename
  }
}`

const getAggregateSnapshotsDocument = `query GetAggregateSnapshots($filters: AggregateSnapshotFilters) {
  aggregateSnapshots(filters: $filters) {
    date
    balance
    __typename
  }
}`

const createManualAccountDocument = `mutation Web_CreateManualAccount($input: CreateManualAccountMutationInput!) {
  createManualAccount(input: $input) {
    account {
      id
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

const updateAccountDocument = `mutation Common_UpdateAccount($input: UpdateAccountMutationInput!) {
  updateAccount(input: $input) {
    account {
      ...AccountFields
      __typename
    }
    errors {
      ...PayloadErrorFields
      __typename
    }
    __typename
  }
}
fragment AccountFields on Account {
  id
  displayName
  displayBalance
  isHidden
  includeInNetWorth
  order
  __typename
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

const deleteAccountDocument = `mutation Common_DeleteAccount($id: UUID!) {
  deleteAccount(id: $id) {
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

const getAccountHoldingsDocument = `query Web_GetHoldings($input: PortfolioInput) {
  portfolio(input: $input) {
    aggregateHoldings {
      edges {
        node {
          id
          quantity
          basis
          totalValue
          securityPriceChangeDollars
          securityPriceChangePercent
          lastSyncedAt
          holdings {
            id
            type
            typeDisplay
            name
            ticker
            closingPrice
            closingPriceUpdatedAt
            quantity
            value
            account {
              id
              displayName
              __typename
            }
            __typename
          }
          security {
            id
            name
            ticker
            currentPrice
            currentPriceUpdatedAt
            closingPrice
            type
            typeDisplay
            __typename
          }
          __typename
        }
        __typename
      }
      __typename
    }
    __typename
  }
}`

const requestAccountsRefreshDocument = `mutation Common_ForceRefreshAccountsMutation($input: ForceRefreshAccountsInput!) {
  forceRefreshAccounts(input: $input) {
    success
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

const accountsRefreshStatusDocument = `query ForceRefreshAccountsQuery {
  accounts {
    id
    hasSyncOrRecentRefreshRequest
    __typename
  }
}`

// GetAccounts returns every account in the household together with the
// preferred account group ordering.
func (c *Client) GetAccounts(ctx context.Context) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "GetAccounts",
		Document:  getAccountsDocument,
		Variables: map[string]any{},
	})
}

func (c *Client) GetAccountTypeOptions(ctx context.Context) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "GetAccountTypeOptions",
		Document:  getAccountTypeOptionsDocument,
		Variables: map[string]any{},
	})
}

// GetAccountRecentBalances returns per-account daily balances since
// startDate (YYYY-MM-DD). An empty startDate means the last 31 days.
func (c *Client) GetAccountRecentBalances(ctx context.Context, startDate string) (map[string]any, error) {
	if startDate == "" {
		startDate = time.Now().AddDate(0, 0, -31).Format(dateLayout)
	}

	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "GetAccountRecentBalances",
		Document:  getAccountRecentBalancesDocument,
		Variables: map[string]any{"startDate": startDate},
	})
}

// GetAccountSnapshotsByType returns balance snapshots grouped by account
// type. timeframe must be "year" or "month".
func (c *Client) GetAccountSnapshotsByType(ctx context.Context, startDate, timeframe string) (map[string]any, error) {
	if timeframe != "year" && timeframe != "month" {
		return nil, fmt.Errorf("timeframe must be %q or %q, got %q", "year", "month", timeframe)
	}

	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "GetSnapshotsByAccountType",
		Document:  getAccountSnapshotsByTypeDocument,
		Variables: map[string]any{"startDate": startDate, "timeframe": timeframe},
	})
}

// AggregateSnapshotsQuery bounds GetAggregateSnapshots. Empty fields are
// sent as nulls, which the service reads as "unbounded".
type AggregateSnapshotsQuery struct {
	StartDate   string // YYYY-MM-DD
	EndDate     string // YYYY-MM-DD
	AccountType string // e.g. "brokerage", "depository"
}

func (c *Client) GetAggregateSnapshots(ctx context.Context, q AggregateSnapshotsQuery) (map[string]any, error) {
	filters := map[string]any{
		"startDate":   nullableString(q.StartDate),
		"endDate":     nullableString(q.EndDate),
		"accountType": nullableString(q.AccountType),
	}

	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "GetAggregateSnapshots",
		Document:  getAggregateSnapshotsDocument,
		Variables: map[string]any{"filters": filters},
	})
}

// ManualAccountInput describes an account tracked by hand, without an
// institution connection.
type ManualAccountInput struct {
	Type              string  // account type name, from GetAccountTypeOptions
	Subtype           string  // account subtype name
	Name              string  // display name
	Balance           float64 // opening balance
	IncludeInNetWorth bool
}

func (c *Client) CreateManualAccount(ctx context.Context, input ManualAccountInput) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:     "Web_CreateManualAccount",
		Document: createManualAccountDocument,
		Variables: map[string]any{
			"input": map[string]any{
				"type":              input.Type,
				"subtype":           input.Subtype,
				"name":              input.Name,
				"displayBalance":    input.Balance,
				"includeInNetWorth": input.IncludeInNetWorth,
			},
		},
	})
}

// UpdateAccount applies changes to one account. changes uses the service's
// field names (e.g. "name", "displayBalance", "isHidden") and travels
// verbatim next to the id.
func (c *Client) UpdateAccount(ctx context.Context, accountID string, changes map[string]any) (map[string]any, error) {
	input := map[string]any{"id": accountID}
	for k, v := range changes {
		input[k] = v
	}

	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Common_UpdateAccount",
		Document:  updateAccountDocument,
		Variables: map[string]any{"input": input},
	})
}

func (c *Client) DeleteAccount(ctx context.Context, accountID string) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Common_DeleteAccount",
		Document:  deleteAccountDocument,
		Variables: map[string]any{"id": accountID},
	})
}

// GetAccountHoldings returns the investment positions of one account.
func (c *Client) GetAccountHoldings(ctx context.Context, accountID string) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Web_GetHoldings",
		Document:  getAccountHoldingsDocument,
		Variables: map[string]any{"input": map[string]any{"accountId": accountID}},
	})
}

// RequestAccountsRefresh asks the service to pull fresh data for the given
// accounts and reports whether the request was accepted. The refresh itself
// runs asynchronously on the service side.
func (c *Client) RequestAccountsRefresh(ctx context.Context, accountIDs []string) (bool, error) {
	result, err := c.exec.Execute(ctx, graphql.Operation{
		Name:      "Common_ForceRefreshAccountsMutation",
		Document:  requestAccountsRefreshDocument,
		Variables: map[string]any{"input": map[string]any{"accountIds": accountIDs}},
	})
	if err != nil {
		return false, err
	}

	var payload struct {
		ForceRefreshAccounts struct {
			Success bool `json:"success"`
		} `json:"forceRefreshAccounts"`
	}
	if err := Decode(result, &payload); err != nil {
		return false, err
	}

	return payload.ForceRefreshAccounts.Success, nil
}

// IsAccountsRefreshComplete reports whether no refresh is pending for the
// given accounts. A nil accountIDs means every account in the household.
func (c *Client) IsAccountsRefreshComplete(ctx context.Context, accountIDs []string) (bool, error) {
	result, err := c.exec.Execute(ctx, graphql.Operation{
		Name:      "ForceRefreshAccountsQuery",
		Document:  accountsRefreshStatusDocument,
		Variables: map[string]any{},
	})
	if err != nil {
		return false, err
	}

	var payload struct {
		Accounts []struct {
			ID      string `json:"id"`
			Pending bool   `json:"hasSyncOrRecentRefreshRequest"`
		} `json:"accounts"`
	}
	if err := Decode(result, &payload); err != nil {
		return false, err
	}

	relevant := func(id string) bool {
		if len(accountIDs) == 0 {
			return true
		}
		for _, want := range accountIDs {
			if id == want {
				return true
			}
		}
		return false
	}

	for _, account := range payload.Accounts {
		if relevant(account.ID) && account.Pending {
			return false, nil
		}
	}

	return true, nil
}

// RequestAccountsRefreshAndWait requests a refresh and polls until it
// finishes or timeout elapses. Zero timeout and interval mean five minutes
// and ten seconds.
func (c *Client) RequestAccountsRefreshAndWait(ctx context.Context, accountIDs []string, timeout, interval time.Duration) error {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	if interval <= 0 {
		interval = 10 * time.Second
	}

	accepted, err := c.RequestAccountsRefresh(ctx, accountIDs)
	if err != nil {
		return err
	}
	if !accepted {
		return clienterr.RequestFailed("Common_ForceRefreshAccountsMutation", "the service did not accept the refresh request", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return clienterr.RequestFailed("ForceRefreshAccountsQuery", "waiting for the refresh to finish", ctx.Err())
		case <-ticker.C:
			done, err := c.IsAccountsRefreshComplete(ctx, accountIDs)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
