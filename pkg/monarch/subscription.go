package monarch

import (
	"context"

	"github.com/erikrubstein/monarch-api/pkg/graphql"
)

const getSubscriptionDetailsDocument = `query GetSubscriptionDetails {
  subscription {
    id
    paymentSource
    referralCode
    isOnFreeTrial
    hasPremiumEntitlement
    __typename
  }
}`

const getMeDocument = `query Common_GetMe {
  me {
    id
    email
    name
    timezone
    hasMfaOn
    externalAuthProviderNames
    profilePictureUrl
    __typename
  }
}`

const cancelSponsorshipDocument = `mutation Web_BillingSettingsCancelSponsorship($input: CancelSubscriptionSponsorshipInput!) {
  cancelSubscriptionSponsorship(input: $input) {
    canceled
    errors {
      message
      __typename
    }
    __typename
  }
}`

// GetSubscriptionDetails returns the billing state of the account. It is
// also the cheapest authenticated operation the service has, which makes
// it the saved-session probe.
func (c *Client) GetSubscriptionDetails(ctx context.Context) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "GetSubscriptionDetails",
		Document:  getSubscriptionDetailsDocument,
		Variables: map[string]any{},
	})
}

// GetMe returns the profile of the logged-in user.
func (c *Client) GetMe(ctx context.Context) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Common_GetMe",
		Document:  getMeDocument,
		Variables: map[string]any{},
	})
}

func (c *Client) CancelSubscriptionSponsorship(ctx context.Context, sponsorshipID string) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Web_BillingSettingsCancelSponsorship",
		Document:  cancelSponsorshipDocument,
		Variables: map[string]any{"input": map[string]any{"subscriptionSponsorshipId": sponsorshipID}},
	})
}
