package monarch

import (
	"context"

	"github.com/erikrubstein/monarch-api/pkg/graphql"
)

const getCategoriesDocument = `query GetCategories {
  categories {
    ...CategoryFields
    __typename
  }
}
fragment CategoryFields on Category {
  id
  order
  name
  icon
  systemCategory
  isSystemCategory
  isDisabled
  updatedAt
  createdAt
  group {
    id
    name
    type
    __typename
  }
  __typename
}`

const createCategoryDocument = `mutation Web_CreateCategory($input: CreateCategoryInput!) {
  createCategory(input: $input) {
    errors {
      ...PayloadErrorFields
      __typename
    }
    category {
      id
      ...CategoryFormFields
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
}
fragment CategoryFormFields on Category {
  id
  order
  name
  icon
  systemCategory
  systemCategoryDisplayName
  budgetVariability
  isSystemCategory
  isDisabled
  group {
    id
    type
    groupLevelBudgetingEnabled
    __typename
  }
  rolloverPeriod {
    id
    startMonth
    startingBalance
    __typename
  }
  __typename
}`

const deleteCategoryDocument = `mutation Web_DeleteCategory($id: UUID!, $moveToCategoryId: UUID) {
  deleteCategory(id: $id, moveToCategoryId: $moveToCategoryId) {
    errors {
      ...PayloadErrorFields
      __typename
    }
    deleted
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

const getCategoryGroupsDocument = `query ManageGetCategoryGroups {
  categoryGroups {
    id
    name
    order
    type
    updatedAt
    createdAt
    __typename
  }
}`

func (c *Client) GetTransactionCategories(ctx context.Context) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "GetCategories",
		Document:  getCategoriesDocument,
		Variables: map[string]any{},
	})
}

// CategoryInput describes a new transaction category inside an existing
// group. Rollover fields only travel when RolloverEnabled is set.
type CategoryInput struct {
	GroupID            string
	Name               string
	Icon               string // emoji, defaults to a question mark
	RolloverEnabled    bool
	RolloverStartMonth string // YYYY-MM-DD, first of a month
}

func (c *Client) CreateTransactionCategory(ctx context.Context, input CategoryInput) (map[string]any, error) {
	icon := input.Icon
	if icon == "" {
		icon = "❓"
	}

	payload := map[string]any{
		"group": input.GroupID,
		"name":  input.Name,
		"icon":  icon,
	}
	if input.RolloverEnabled {
		payload["rolloverEnabled"] = true
		payload["rolloverType"] = "monthly"
		payload["rolloverStartMonth"] = input.RolloverStartMonth
	}

	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Web_CreateCategory",
		Document:  createCategoryDocument,
		Variables: map[string]any{"input": payload},
	})
}

// DeleteTransactionCategory removes a category. Transactions keep working:
// the service reassigns them to its default uncategorized bucket.
func (c *Client) DeleteTransactionCategory(ctx context.Context, categoryID string) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Web_DeleteCategory",
		Document:  deleteCategoryDocument,
		Variables: map[string]any{"id": categoryID},
	})
}

func (c *Client) GetTransactionCategoryGroups(ctx context.Context) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "ManageGetCategoryGroups",
		Document:  getCategoryGroupsDocument,
		Variables: map[string]any{},
	})
}
