package monarch

import "strings"

// DefaultBaseURL is the production service endpoint. Both the credential
// exchange and the GraphQL operations live under it.
const DefaultBaseURL = "https://api.monarchmoney.com"

const (
	loginPath   = "/auth/login/"
	graphqlPath = "/graphql"
)

func loginURL(base string) string {
	return strings.TrimSuffix(base, "/") + loginPath
}

func graphqlURL(base string) string {
	return strings.TrimSuffix(base, "/") + graphqlPath
}
