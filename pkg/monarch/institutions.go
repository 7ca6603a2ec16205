package monarch

import (
	"context"

	"github.com/erikrubstein/monarch-api/pkg/graphql"
)

const getInstitutionsDocument = `query Web_GetInstitutionSettings {
  credentials {
    id
    ...CredentialSettingsCardFields
    __typename
  }
  accounts(filters: {includeDeleted: true}) {
    id
    displayName
    subtype {
      display
      __typename
    }
    mask
    credential {
      id
      __typename
    }
    deletedAt
    __typename
  }
  subscription {
    isOnFreeTrial
    hasPremiumEntitlement
    __typename
  }
}
fragment CredentialSettingsCardFields on Credential {
  id
  updateRequired
  disconnectedFromDataProviderAt
  displayLastUpdatedAt
  dataProvider
  institution {
    id
    name
    logo
    url
    __typename
  }
  __typename
}`

// GetInstitutions returns the connected institutions together with the
// accounts hanging off each connection.
func (c *Client) GetInstitutions(ctx context.Context) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Web_GetInstitutionSettings",
		Document:  getInstitutionsDocument,
		Variables: map[string]any{},
	})
}
