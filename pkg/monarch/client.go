package monarch

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/erikrubstein/monarch-api/pkg/auth"
	"github.com/erikrubstein/monarch-api/pkg/clienterr"
	"github.com/erikrubstein/monarch-api/pkg/graphql"
	"github.com/erikrubstein/monarch-api/pkg/session"
	sessionfile "github.com/erikrubstein/monarch-api/pkg/session/file"
)

// Config carries the construction knobs for a Client. The zero value is
// usable: production endpoint, session file under the user's home
// directory, default HTTP client and retry policy, no interactive prompting.
type Config struct {
	BaseURL       string                  // service base URL, DefaultBaseURL when empty
	SessionFile   string                  // session file path, $HOME/.monarch/session.json when empty
	Store         session.Store           // overrides SessionFile when set
	HTTPClient    *http.Client            // shared by the credential exchange and the transport
	MaxAttempts   int                     // transport attempts per operation, including the first
	RetryInterval time.Duration           // initial backoff interval between attempts
	Prompter      auth.CredentialPrompter // enables InteractiveLogin when set
}

// Client is the facade over the whole stack: one Authenticator, one GraphQL
// transport, one session store. Domain operations hang off it as one thin
// wrapper per named operation; every wrapper builds the variables from its
// typed arguments and hands them to the transport verbatim.
type Client struct {
	exec       graphql.Executor
	gql        *graphql.Client
	auth       *auth.Authenticator
	store      session.Store
	httpClient *http.Client
	gqlURL     string
}

// New builds a Client from cfg. The only failure mode is being unable to
// resolve the default session file location.
func New(cfg Config) (*Client, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	store := cfg.Store
	if store == nil {
		path := cfg.SessionFile
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, clienterr.Storage("resolving the home directory for the session file", err)
			}
			path = filepath.Join(home, ".monarch", "session.json")
		}
		store = sessionfile.NewStore(path)
	}

	gql := graphql.NewClient(graphqlURL(base), cfg.HTTPClient, cfg.MaxAttempts, cfg.RetryInterval)

	c := &Client{
		exec:       gql,
		gql:        gql,
		store:      store,
		httpClient: cfg.HTTPClient,
		gqlURL:     graphqlURL(base),
	}
	c.auth = auth.New(store, c, cfg.Prompter, loginURL(base), cfg.HTTPClient)

	return c, nil
}

// Login establishes a session per req and attaches it to the transport, so
// every subsequent operation call is authenticated. An MFA-required error
// leaves the client unauthenticated; complete the login with SubmitMFACode.
func (c *Client) Login(ctx context.Context, req auth.Request) error {
	sess, err := c.auth.Login(ctx, req)
	if err != nil {
		return err
	}
	c.gql.SetSession(&sess)

	return nil
}

// InteractiveLogin is Login with missing credentials and one-time codes
// collected through the configured prompter.
func (c *Client) InteractiveLogin(ctx context.Context, req auth.Request) error {
	sess, err := c.auth.InteractiveLogin(ctx, req)
	if err != nil {
		return err
	}
	c.gql.SetSession(&sess)

	return nil
}

// SubmitMFACode completes a login halted by an MFA challenge and attaches
// the resulting session to the transport.
func (c *Client) SubmitMFACode(ctx context.Context, req auth.Request, code string) error {
	sess, err := c.auth.SubmitMFACode(ctx, req, code)
	if err != nil {
		return err
	}
	c.gql.SetSession(&sess)

	return nil
}

// LoadSession attaches the persisted session to the transport without
// contacting the service. Whether it is still accepted shows up on the
// first operation call.
func (c *Client) LoadSession(ctx context.Context) error {
	sess, err := c.store.Load(ctx)
	if err != nil {
		return err
	}
	c.gql.SetSession(&sess)

	return nil
}

// SaveSession persists the currently attached session.
func (c *Client) SaveSession(ctx context.Context) error {
	sess := c.gql.Session()
	if sess == nil {
		return clienterr.Storage("no session is attached", nil)
	}

	return c.store.Save(ctx, *sess)
}

// Logout detaches the session from the transport and erases the persisted
// record. It never contacts the service.
func (c *Client) Logout(ctx context.Context) error {
	c.gql.ClearSession()

	return c.auth.DeleteSession(ctx)
}

// Session returns the currently attached session, nil when unauthenticated.
func (c *Client) Session() *session.Session {
	return c.gql.Session()
}

// Execute dispatches an arbitrary named operation through the transport.
// The catalog methods cover the known operations; Execute is the escape
// hatch for ones they do not.
func (c *Client) Execute(ctx context.Context, op graphql.Operation) (map[string]any, error) {
	return c.exec.Execute(ctx, op)
}

// ProbeSession reports whether the service still accepts s by running the
// cheapest authenticated operation with it. It uses a single-attempt
// transport so a dead session is detected without retry delays.
func (c *Client) ProbeSession(ctx context.Context, s session.Session) error {
	probe := graphql.NewClient(c.gqlURL, c.httpClient, 1, 0)
	probe.SetSession(&s)

	_, err := probe.Execute(ctx, graphql.Operation{
		Name:      "GetSubscriptionDetails",
		Document:  getSubscriptionDetailsDocument,
		Variables: map[string]any{},
	})

	return err
}
