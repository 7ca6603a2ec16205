package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	slogctx "github.com/veqryn/slog-context"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/erikrubstein/monarch-api/pkg/clienterr"
	"github.com/erikrubstein/monarch-api/pkg/csrf"
	"github.com/erikrubstein/monarch-api/pkg/session"
)

const (
	defaultMaxAttempts   = 3
	defaultRetryInterval = 500 * time.Millisecond
	defaultTimeout       = 30 * time.Second
)

// Client owns the single logical connection to the service's GraphQL
// endpoint. It attaches the current session to every outgoing request,
// retries transient failures a bounded number of times, and classifies
// every response into exactly one outcome.
//
// Execute calls are independent and safe to run concurrently; the attached
// session is swapped atomically, so no in-flight request ever observes a
// half-updated one.
type Client struct {
	endpoint      string
	httpClient    *http.Client
	maxAttempts   int
	retryInterval time.Duration
	tracer        trace.Tracer

	session atomic.Pointer[session.Session]
}

// NewClient returns a transport bound to the given GraphQL endpoint. Zero
// values select the defaults: a 30s-timeout HTTP client, 3 attempts, 500ms
// initial backoff.
func NewClient(endpoint string, httpClient *http.Client, maxAttempts int, retryInterval time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if retryInterval <= 0 {
		retryInterval = defaultRetryInterval
	}

	return &Client{
		endpoint:      endpoint,
		httpClient:    httpClient,
		maxAttempts:   maxAttempts,
		retryInterval: retryInterval,
		tracer:        otel.Tracer("monarch-api/graphql"),
	}
}

// SetSession attaches the session all subsequent requests authenticate
// with. The swap is atomic and visible to concurrent Execute calls.
func (c *Client) SetSession(s *session.Session) {
	c.session.Store(s)
}

// ClearSession detaches the current session.
func (c *Client) ClearSession() {
	c.session.Store(nil)
}

// Session returns the currently attached session, or nil.
func (c *Client) Session() *session.Session {
	return c.session.Load()
}

// Execute dispatches the operation and returns the decoded data payload.
// Transport failures and 5xx/429 responses are retried with exponential
// backoff until the attempt budget runs out; authentication failures and
// service-reported GraphQL errors surface immediately.
func (c *Client) Execute(ctx context.Context, op Operation) (map[string]any, error) {
	sess := c.session.Load()
	if sess == nil {
		return nil, clienterr.RequestFailed(op.Name, "authentication required: no session is attached", nil)
	}

	ctx = slogctx.With(ctx, "operation", op.Name)

	ctx, span := c.tracer.Start(ctx, "graphql.execute",
		trace.WithAttributes(attribute.String("graphql.operation.name", op.Name)))
	defer span.End()

	body, err := json.Marshal(request{
		OperationName: op.Name,
		Variables:     op.Variables,
		Query:         op.Document,
	})
	if err != nil {
		return nil, clienterr.RequestFailed(op.Name, "encoding request body", err)
	}

	start := time.Now()

	var result map[string]any
	attempt := func() error {
		data, err := c.post(ctx, sess, op.Name, body)
		if err != nil {
			return err
		}
		result = data
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryInterval

	err = backoff.Retry(attempt, backoff.WithContext(
		backoff.WithMaxRetries(policy, uint64(c.maxAttempts-1)), ctx))

	attrs := metric.WithAttributes(
		attribute.String("operation", op.Name),
		attribute.Bool("error", err != nil),
	)
	requestCounter.Add(ctx, 1, attrs)
	requestDuration.Record(ctx, time.Since(start).Milliseconds(), attrs)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		var ce *clienterr.Error
		if errors.As(err, &ce) {
			return nil, err
		}
		return nil, clienterr.RequestFailed(op.Name, "request retries exhausted", err)
	}

	slogctx.Debug(ctx, "Executed GraphQL operation")

	return result, nil
}

// post performs a single attempt. Retryable conditions come back as plain
// errors; terminal ones are wrapped in backoff.Permanent so the retry loop
// stops immediately.
func (c *Client) post(ctx context.Context, sess *session.Session, opName string, body []byte) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(clienterr.RequestFailed(opName, "creating request", err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Client-Platform", "web")
	req.Header.Set("Authorization", "Token "+sess.Token)
	req.Header.Set("device-uuid", sess.DeviceUUID)
	csrf.Attach(req.Header, sess.CSRFToken)
	for name, value := range sess.Cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, backoff.Permanent(clienterr.RequestFailed(opName,
			"the service rejected the session, a fresh login is required", nil))
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("service returned status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, backoff.Permanent(clienterr.RequestFailed(opName,
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil))
	}

	var decoded response
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(decoded.Errors) > 0 {
		messages := make([]string, 0, len(decoded.Errors))
		for _, e := range decoded.Errors {
			messages = append(messages, e.Message)
		}
		// data may be present alongside errors; it is never returned then
		return nil, backoff.Permanent(clienterr.RequestFailed(opName,
			"the service reported errors: "+strings.Join(messages, "; "), nil))
	}

	return decoded.Data, nil
}
