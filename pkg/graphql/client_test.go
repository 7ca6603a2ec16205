package graphql_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erikrubstein/monarch-api/pkg/clienterr"
	"github.com/erikrubstein/monarch-api/pkg/graphql"
	"github.com/erikrubstein/monarch-api/pkg/session"
)

func testSession() *session.Session {
	return &session.Session{
		Cookies:    map[string]string{"test_cookie": "test_value"},
		Token:      "test_token",
		DeviceUUID: "fffa1c45-d83b-4ecf-a72c-1bb372f839f6",
		CSRFToken:  "wq0eXALFRnJ4GBkfUMTyA8VK",
	}
}

func TestClient_Execute_Classification(t *testing.T) {
	writeJSON := func(w http.ResponseWriter, status int, body string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}

	tests := []struct {
		name      string
		handler   func(calls int64, w http.ResponseWriter, r *http.Request)
		wantCalls int64
		wantData  map[string]any
		errAssert assert.ErrorAssertionFunc
		errSubstr string
	}{
		{
			name: "Success returns the data payload unchanged",
			handler: func(calls int64, w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, `{"data": {"accounts": [{"id": "90000000030"}]}}`)
			},
			wantCalls: 1,
			wantData:  map[string]any{"accounts": []any{map[string]any{"id": "90000000030"}}},
			errAssert: assert.NoError,
		},
		{
			name: "Errors array fails the call even when data is present",
			handler: func(calls int64, w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, `{"data": {"accounts": []}, "errors": [{"message": "Something went wrong processing: accounts"}]}`)
			},
			wantCalls: 1,
			errAssert: assert.Error,
			errSubstr: "Something went wrong processing: accounts",
		},
		{
			name: "Unauthorized is terminal",
			handler: func(calls int64, w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusUnauthorized, `{"detail": "Invalid token."}`)
			},
			wantCalls: 1,
			errAssert: assert.Error,
			errSubstr: "fresh login",
		},
		{
			name: "Forbidden is terminal",
			handler: func(calls int64, w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusForbidden, `{}`)
			},
			wantCalls: 1,
			errAssert: assert.Error,
			errSubstr: "fresh login",
		},
		{
			name: "Server errors are retried until the attempt budget runs out",
			handler: func(calls int64, w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusInternalServerError, `{}`)
			},
			wantCalls: 3,
			errAssert: assert.Error,
			errSubstr: "retries exhausted",
		},
		{
			name: "Server error then success",
			handler: func(calls int64, w http.ResponseWriter, r *http.Request) {
				if calls == 1 {
					writeJSON(w, http.StatusBadGateway, `{}`)
					return
				}
				writeJSON(w, http.StatusOK, `{"data": {"ok": true}}`)
			},
			wantCalls: 2,
			wantData:  map[string]any{"ok": true},
			errAssert: assert.NoError,
		},
		{
			name: "Rate limiting is retried",
			handler: func(calls int64, w http.ResponseWriter, r *http.Request) {
				if calls == 1 {
					writeJSON(w, http.StatusTooManyRequests, `{}`)
					return
				}
				writeJSON(w, http.StatusOK, `{"data": {"ok": true}}`)
			},
			wantCalls: 2,
			wantData:  map[string]any{"ok": true},
			errAssert: assert.NoError,
		},
		{
			name: "Malformed response body is retried",
			handler: func(calls int64, w http.ResponseWriter, r *http.Request) {
				if calls == 1 {
					writeJSON(w, http.StatusOK, `{"data": {`)
					return
				}
				writeJSON(w, http.StatusOK, `{"data": {"ok": true}}`)
			},
			wantCalls: 2,
			wantData:  map[string]any{"ok": true},
			errAssert: assert.NoError,
		},
		{
			name: "Unexpected status is terminal",
			handler: func(calls int64, w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusTeapot, `{}`)
			},
			wantCalls: 1,
			errAssert: assert.Error,
			errSubstr: "unexpected status 418",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int64
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.handler(calls.Add(1), w, r)
			}))
			defer server.Close()

			client := graphql.NewClient(server.URL, nil, 3, time.Millisecond)
			client.SetSession(testSession())

			got, err := client.Execute(t.Context(), graphql.Operation{
				Name:      "GetAccounts",
				Document:  "query GetAccounts { accounts { id } }",
				Variables: map[string]any{},
			})

			tt.errAssert(t, err)
			assert.Equal(t, tt.wantCalls, calls.Load(), "unexpected number of HTTP attempts")

			if err != nil {
				assert.ErrorIs(t, err, clienterr.ErrRequestFailed)
				if tt.errSubstr != "" {
					assert.ErrorContains(t, err, tt.errSubstr)
				}
				assert.Nil(t, got, "no data may escape a failed call")
				return
			}

			if diff := cmp.Diff(tt.wantData, got); diff != "" {
				t.Errorf("data mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClient_Execute_RequiresSession(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := graphql.NewClient(server.URL, nil, 0, 0)

	_, err := client.Execute(t.Context(), graphql.Operation{Name: "GetAccounts"})
	assert.ErrorIs(t, err, clienterr.ErrRequestFailed)
	assert.ErrorContains(t, err, "authentication required")
	assert.Zero(t, calls.Load(), "no network call may be made without a session")
}

func TestClient_Execute_RequestShape(t *testing.T) {
	var (
		gotBody    map[string]any
		gotHeader  http.Header
		gotCookies []*http.Cookie
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		gotHeader = r.Header.Clone()
		gotCookies = r.Cookies()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {}}`))
	}))
	defer server.Close()

	client := graphql.NewClient(server.URL, nil, 0, 0)
	client.SetSession(testSession())

	vars := map[string]any{
		"id":     "170123456789012345",
		"limit":  float64(5),
		"filter": map[string]any{"search": "", "categories": []any{}},
	}
	_, err := client.Execute(t.Context(), graphql.Operation{
		Name:      "Common_DeleteAccount",
		Document:  "mutation Common_DeleteAccount($id: UUID!) { deleteAccount(id: $id) { deleted errors } }",
		Variables: vars,
	})
	require.NoError(t, err)

	want := map[string]any{
		"operationName": "Common_DeleteAccount",
		"variables":     vars,
		"query":         "mutation Common_DeleteAccount($id: UUID!) { deleteAccount(id: $id) { deleted errors } }",
	}
	if diff := cmp.Diff(want, gotBody); diff != "" {
		t.Errorf("request body mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "Token test_token", gotHeader.Get("Authorization"))
	assert.Equal(t, "web", gotHeader.Get("Client-Platform"))
	assert.Equal(t, "fffa1c45-d83b-4ecf-a72c-1bb372f839f6", gotHeader.Get("device-uuid"))
	assert.Equal(t, "wq0eXALFRnJ4GBkfUMTyA8VK", gotHeader.Get("x-csrftoken"))

	require.Len(t, gotCookies, 1)
	assert.Equal(t, "test_cookie", gotCookies[0].Name)
	assert.Equal(t, "test_value", gotCookies[0].Value)
}

func TestClient_Execute_ContextCancellation(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := graphql.NewClient(server.URL, nil, 0, 0)
	client.SetSession(testSession())

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := client.Execute(ctx, graphql.Operation{Name: "GetAccounts"})
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, clienterr.ErrRequestFailed)
	case <-time.After(5 * time.Second):
		t.Fatal("Execute did not honour context cancellation")
	}
}

func TestClient_SessionSwap(t *testing.T) {
	var tokens []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokens = append(tokens, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {}}`))
	}))
	defer server.Close()

	client := graphql.NewClient(server.URL, nil, 0, 0)

	first := testSession()
	client.SetSession(first)
	_, err := client.Execute(t.Context(), graphql.Operation{Name: "GetAccounts"})
	require.NoError(t, err)

	second := testSession()
	second.Token = "replacement_token"
	client.SetSession(second)
	_, err = client.Execute(t.Context(), graphql.Operation{Name: "GetAccounts"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Token test_token", "Token replacement_token"}, tokens)

	client.ClearSession()
	assert.Nil(t, client.Session())
}
