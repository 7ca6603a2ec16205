package monarch

import (
	"context"

	"github.com/erikrubstein/monarch-api/pkg/graphql"
)

// Retail sync links order history pulled from a shopping site (through the
// service's browser extension) to bank transactions, so a single card
// charge can be split into the items behind it.

const createRetailSyncDocument = `mutation Common_CreateRetailSync($input: CreateRetailSyncInput!) {
  createRetailSync(input: $input) {
    retailSync {
      id
      vendor
      status
      createdAt
      __typename
    }
    errors {
      message
      __typename
    }
    __typename
  }
}`

const getRetailSyncDocument = `query Common_RetailSyncQuery($syncId: UUID!) {
  retailSync(syncId: $syncId) {
    id
    vendor
    status
    ordersCount
    matchedCount
    createdAt
    completedAt
    __typename
  }
}`

const getRetailSyncsWithTotalDocument = `query Common_RetailSyncsQueryWithTotal($filters: RetailSyncFilterInput, $offset: Int, $limit: Int, $includeTotalCount: Boolean!) {
  retailSyncs(filters: $filters, offset: $offset, limit: $limit) {
    totalCount @include(if: $includeTotalCount)
    results {
      id
      vendor
      status
      ordersCount
      matchedCount
      createdAt
      completedAt
      __typename
    }
    __typename
  }
}`

const startRetailSyncDocument = `mutation Common_StartRetailSync($syncId: UUID!) {
  startRetailSync(syncId: $syncId) {
    retailSync {
      id
      status
      __typename
    }
    errors {
      message
      __typename
    }
    __typename
  }
}`

const completeRetailSyncDocument = `mutation Common_CompleteRetailSync($syncId: UUID!) {
  completeRetailSync(syncId: $syncId) {
    retailSync {
      id
      status
      completedAt
      __typename
    }
    errors {
      message
      __typename
    }
    __typename
  }
}`

const deleteRetailSyncDocument = `mutation Common_DeleteRetailSync($syncId: UUID!) {
  deleteRetailSync(syncId: $syncId) {
    deleted
    errors {
      message
      __typename
    }
    __typename
  }
}`

const matchRetailTransactionDocument = `mutation Common_MatchRetailTransaction($retailTransactionId: UUID!, $transactionId: UUID!) {
  matchRetailTransaction(retailTransactionId: $retailTransactionId, transactionId: $transactionId) {
    retailTransaction {
      id
      matchedTransaction {
        id
        __typename
      }
      __typename
    }
    errors {
      message
      __typename
    }
    __typename
  }
}`

const updateRetailOrderDocument = `mutation Common_UpdateRetailOrder($input: UpdateRetailOrderInput!) {
  updateRetailOrder(input: $input) {
    retailOrder {
      id
      merchantName
      __typename
    }
    errors {
      message
      __typename
    }
    __typename
  }
}`

const updateRetailVendorSettingsDocument = `mutation Common_UpdateRetailVendorSettings($input: UpdateRetailVendorSettingsInput!) {
  updateRetailVendorSettings(input: $input) {
    settings {
      vendor
      shouldCategorizeAndSplitTransactions
      __typename
    }
    errors {
      message
      __typename
    }
    __typename
  }
}`

const getRetailExtensionSettingsDocument = `query Common_GetRetailExtensionSettings {
  retailExtensionSettings {
    vendor
    shouldCategorizeAndSplitTransactions
    __typename
  }
}`

const getDismissedRetailSyncBannerDocument = `query Web_GetUserDismissedRetailSyncBanner {
  userProfile {
    id
    dismissedRetailSyncBanner
    dismissedRetailSyncTargetBannerAt
    __typename
  }
}`

const updateDismissedRetailSyncBannerDocument = `mutation Web_UpdateDismissedRetailSyncBanner($dismissedRetailSyncBanner: Boolean, $dismissedRetailSyncTargetBannerAt: DateTime) {
  updateUserProfile(
    input: {dismissedRetailSyncBanner: $dismissedRetailSyncBanner, dismissedRetailSyncTargetBannerAt: $dismissedRetailSyncTargetBannerAt}
  ) {
    userProfile {
      id
      dismissedRetailSyncBanner
      dismissedRetailSyncTargetBannerAt
      __typename
    }
    __typename
  }
}`

const getUserHasConfiguredExtensionDocument = `query Web_GetUserHasConfiguredExtension {
  userProfile {
    id
    hasConfiguredRetailExtension
    __typename
  }
}`

// CreateRetailSync opens a sync run for one vendor. input uses the
// service's field names, at minimum {"vendor": "amazon"}.
func (c *Client) CreateRetailSync(ctx context.Context, input map[string]any) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Common_CreateRetailSync",
		Document:  createRetailSyncDocument,
		Variables: map[string]any{"input": input},
	})
}

func (c *Client) GetRetailSync(ctx context.Context, syncID string) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Common_RetailSyncQuery",
		Document:  getRetailSyncDocument,
		Variables: map[string]any{"syncId": syncID},
	})
}

// RetailSyncsQuery pages through past sync runs. Filters uses the service's
// field names (e.g. {"status": "completed"}); nil means unfiltered.
type RetailSyncsQuery struct {
	Filters           map[string]any
	Offset            int
	Limit             int
	IncludeTotalCount bool
}

func (c *Client) GetRetailSyncsWithTotal(ctx context.Context, q RetailSyncsQuery) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:     "Common_RetailSyncsQueryWithTotal",
		Document: getRetailSyncsWithTotalDocument,
		Variables: map[string]any{
			"filters":           q.Filters,
			"offset":            q.Offset,
			"limit":             q.Limit,
			"includeTotalCount": q.IncludeTotalCount,
		},
	})
}

func (c *Client) StartRetailSync(ctx context.Context, syncID string) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Common_StartRetailSync",
		Document:  startRetailSyncDocument,
		Variables: map[string]any{"syncId": syncID},
	})
}

func (c *Client) CompleteRetailSync(ctx context.Context, syncID string) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Common_CompleteRetailSync",
		Document:  completeRetailSyncDocument,
		Variables: map[string]any{"syncId": syncID},
	})
}

func (c *Client) DeleteRetailSync(ctx context.Context, syncID string) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Common_DeleteRetailSync",
		Document:  deleteRetailSyncDocument,
		Variables: map[string]any{"syncId": syncID},
	})
}

// MatchRetailTransaction pairs a synced retail order with the bank
// transaction that paid for it.
func (c *Client) MatchRetailTransaction(ctx context.Context, retailTransactionID, transactionID string) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:     "Common_MatchRetailTransaction",
		Document: matchRetailTransactionDocument,
		Variables: map[string]any{
			"retailTransactionId": retailTransactionID,
			"transactionId":       transactionID,
		},
	})
}

// UpdateRetailOrder edits a synced order. input uses the service's field
// names and must carry the order "id".
func (c *Client) UpdateRetailOrder(ctx context.Context, input map[string]any) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Common_UpdateRetailOrder",
		Document:  updateRetailOrderDocument,
		Variables: map[string]any{"input": input},
	})
}

// UpdateRetailVendorSettings changes per-vendor sync behavior. input uses
// the service's field names and must carry the "vendor".
func (c *Client) UpdateRetailVendorSettings(ctx context.Context, input map[string]any) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Common_UpdateRetailVendorSettings",
		Document:  updateRetailVendorSettingsDocument,
		Variables: map[string]any{"input": input},
	})
}

func (c *Client) GetRetailExtensionSettings(ctx context.Context) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Common_GetRetailExtensionSettings",
		Document:  getRetailExtensionSettingsDocument,
		Variables: map[string]any{},
	})
}

func (c *Client) GetUserDismissedRetailSyncBanner(ctx context.Context) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Web_GetUserDismissedRetailSyncBanner",
		Document:  getDismissedRetailSyncBannerDocument,
		Variables: map[string]any{},
	})
}

// UpdateDismissedRetailSyncBanner records that the user dismissed the sync
// banner. targetBannerAt is an RFC 3339 timestamp, empty to leave unset.
func (c *Client) UpdateDismissedRetailSyncBanner(ctx context.Context, dismissed bool, targetBannerAt string) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:     "Web_UpdateDismissedRetailSyncBanner",
		Document: updateDismissedRetailSyncBannerDocument,
		Variables: map[string]any{
			"dismissedRetailSyncBanner":         dismissed,
			"dismissedRetailSyncTargetBannerAt": targetBannerAt,
		},
	})
}

func (c *Client) GetUserHasConfiguredExtension(ctx context.Context) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Web_GetUserHasConfiguredExtension",
		Document:  getUserHasConfiguredExtensionDocument,
		Variables: map[string]any{},
	})
}
