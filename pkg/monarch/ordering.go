package monarch

import (
	"context"

	"github.com/erikrubstein/monarch-api/pkg/graphql"
)

// The service keeps separate ordering mutations for its web and mobile
// surfaces. Both are exposed here; they take the same positions, zero-based
// within the parent container.

const updateAccountOrderDocument = `mutation Web_UpdateAccountOrder($input: UpdateAccountOrderInput!) {
  updateAccountOrder(input: $input) {
    account {
      id
      order
      __typename
    }
    errors {
      message
      __typename
    }
    __typename
  }
}`

const updateAccountGroupOrderDocument = `mutation Common_UpdateAccountGroupOrder($input: UpdateAccountGroupOrderInput!) {
  updateAccountGroupOrder(input: $input) {
    householdPreferences {
      id
      accountGroupOrder
      __typename
    }
    errors {
      message
      __typename
    }
    __typename
  }
}`

const updateCategoryOrderWebDocument = `mutation Web_UpdateCategoryOrder($id: UUID!, $categoryGroupId: UUID!, $order: Int!) {
  updateCategoryOrder(id: $id, categoryGroupId: $categoryGroupId, order: $order) {
    category {
      id
      order
      group {
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

const updateCategoryOrderMobileDocument = `mutation Mobile_UpdateCategoryOrderMutation($id: UUID!, $categoryGroupId: UUID!, $order: Int!) {
  updateCategoryOrder(id: $id, categoryGroupId: $categoryGroupId, order: $order) {
    category {
      id
      order
      __typename
    }
    errors {
      message
      __typename
    }
    __typename
  }
}`

const updateCategoryGroupOrderWebDocument = `mutation Web_UpdateCategoryGroupOrder($id: UUID!, $order: Int!) {
  updateCategoryGroupOrder(id: $id, order: $order) {
    categoryGroup {
      id
      order
      __typename
    }
    errors {
      message
      __typename
    }
    __typename
  }
}`

const updateCategoryGroupOrderMobileDocument = `mutation Mobile_UpdateCategoryGroupOrderMutation($id: UUID!, $order: Int!) {
  updateCategoryGroupOrder(id: $id, order: $order) {
    categoryGroup {
      id
      order
      __typename
    }
    errors {
      message
      __typename
    }
    __typename
  }
}`

const updateTagOrderDocument = `mutation Common_UpdateTransactionTagOrder($tagId: UUID!, $order: Int!) {
  updateTransactionTagOrder(tagId: $tagId, order: $order) {
    householdTransactionTags {
      id
      order
      __typename
    }
    errors {
      message
      __typename
    }
    __typename
  }
}`

const updateRuleOrderDocument = `mutation Web_UpdateRuleOrderMutation($id: ID!, $order: Int!) {
  updateTransactionRuleOrderV2(id: $id, order: $order) {
    transactionRules {
      id
      order
      __typename
    }
    errors {
      message
      __typename
    }
    __typename
  }
}`

func (c *Client) UpdateAccountOrder(ctx context.Context, accountID string, order int) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Web_UpdateAccountOrder",
		Document:  updateAccountOrderDocument,
		Variables: map[string]any{"input": map[string]any{"id": accountID, "order": order}},
	})
}

// UpdateAccountGroupOrder reorders whole account groups, e.g.
// []string{"asset", "liability"}.
func (c *Client) UpdateAccountGroupOrder(ctx context.Context, order []string) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Common_UpdateAccountGroupOrder",
		Document:  updateAccountGroupOrderDocument,
		Variables: map[string]any{"input": map[string]any{"order": stringList(order)}},
	})
}

func (c *Client) UpdateCategoryOrderWeb(ctx context.Context, categoryID, categoryGroupID string, order int) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:     "Web_UpdateCategoryOrder",
		Document: updateCategoryOrderWebDocument,
		Variables: map[string]any{
			"id":              categoryID,
			"categoryGroupId": categoryGroupID,
			"order":           order,
		},
	})
}

func (c *Client) UpdateCategoryOrderMobile(ctx context.Context, categoryID, categoryGroupID string, order int) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:     "Mobile_UpdateCategoryOrderMutation",
		Document: updateCategoryOrderMobileDocument,
		Variables: map[string]any{
			"id":              categoryID,
			"categoryGroupId": categoryGroupID,
			"order":           order,
		},
	})
}

func (c *Client) UpdateCategoryGroupOrderWeb(ctx context.Context, categoryGroupID string, order int) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Web_UpdateCategoryGroupOrder",
		Document:  updateCategoryGroupOrderWebDocument,
		Variables: map[string]any{"id": categoryGroupID, "order": order},
	})
}

func (c *Client) UpdateCategoryGroupOrderMobile(ctx context.Context, categoryGroupID string, order int) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Mobile_UpdateCategoryGroupOrderMutation",
		Document:  updateCategoryGroupOrderMobileDocument,
		Variables: map[string]any{"id": categoryGroupID, "order": order},
	})
}

func (c *Client) UpdateTransactionTagOrder(ctx context.Context, tagID string, order int) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Common_UpdateTransactionTagOrder",
		Document:  updateTagOrderDocument,
		Variables: map[string]any{"tagId": tagID, "order": order},
	})
}

func (c *Client) UpdateTransactionRuleOrder(ctx context.Context, ruleID string, order int) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Web_UpdateRuleOrderMutation",
		Document:  updateRuleOrderDocument,
		Variables: map[string]any{"id": ruleID, "order": order},
	})
}
