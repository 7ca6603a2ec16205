package monarch

import (
	"context"

	"github.com/erikrubstein/monarch-api/pkg/graphql"
)

const getTagsDocument = `query GetHouseholdTransactionTags($search: String, $limit: Int, $bulkParams: BulkTransactionDataParams) {
  householdTransactionTags(search: $search, limit: $limit, bulkParams: $bulkParams) {
    id
    name
    color
    order
    transactionCount
    __typename
  }
}`

const createTagDocument = `mutation Common_CreateTransactionTag($input: CreateTransactionTagInput!) {
  createTransactionTag(input: $input) {
    tag {
      id
      name
      color
      order
      transactionCount
      __typename
    }
    errors {
      message
      __typename
    }
    __typename
  }
}`

const setTagsDocument = `mutation Web_SetTransactionTags($input: SetTransactionTagsInput!) {
  setTransactionTags(input: $input) {
    errors {
      ...PayloadErrorFields
      __typename
    }
    transaction {
      id
      tags {
        id
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

func (c *Client) GetTransactionTags(ctx context.Context) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "GetHouseholdTransactionTags",
		Document:  getTagsDocument,
		Variables: map[string]any{},
	})
}

// CreateTransactionTag creates a tag. color is a hex value like "#19D2A5".
func (c *Client) CreateTransactionTag(ctx context.Context, name, color string) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Common_CreateTransactionTag",
		Document:  createTagDocument,
		Variables: map[string]any{"input": map[string]any{"name": name, "color": color}},
	})
}

// SetTransactionTags replaces the tag set of one transaction. An empty
// tagIDs clears it.
func (c *Client) SetTransactionTags(ctx context.Context, transactionID string, tagIDs []string) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:     "Web_SetTransactionTags",
		Document: setTagsDocument,
		Variables: map[string]any{
			"input": map[string]any{
				"transactionId": transactionID,
				"tagIds":        stringList(tagIDs),
			},
		},
	})
}
