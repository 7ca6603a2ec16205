package business

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/erikrubstein/monarch-api/internal/config"
	"github.com/erikrubstein/monarch-api/pkg/session"
	sessionfile "github.com/erikrubstein/monarch-api/pkg/session/file"
)

const (
	testEmail    = "user@example.com"
	testPassword = "hunter2hunter2"
	testToken    = "b9eb23acf7b14e8d90af2c330ce85e4f"
)

// fakeService stands in for the remote API: a credential endpoint that
// hands out testToken and a GraphQL endpoint that serves canned data per
// operation name.
type fakeService struct {
	*httptest.Server

	rejectLogin bool
	data        map[string]map[string]any
}

func newFakeService(t *testing.T) *fakeService {
	t.Helper()

	f := &fakeService{data: map[string]map[string]any{}}

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		if f.rejectLogin {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]any{"detail": "Invalid credentials"})
			return
		}

		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "csrf-abc"})
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"token": testToken})
	})
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Token "+testToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var req struct {
			OperationName string `json:"operationName"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		data, ok := f.data[req.OperationName]
		if !ok {
			data = map[string]any{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)

	return f
}

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()

	return &config.Config{
		Service: config.Service{
			BaseURL:     baseURL,
			SessionFile: filepath.Join(t.TempDir(), "session.json"),
			Timeout:     5 * time.Second,
			Retry:       config.Retry{MaxAttempts: 1, Interval: time.Millisecond},
		},
		Logger: config.Logger{Level: "info", Format: "text"},
	}
}

// seedSession writes a valid saved session so commands can skip login.
func seedSession(t *testing.T, cfg *config.Config) {
	t.Helper()

	store := sessionfile.NewStore(cfg.Service.SessionFile)
	err := store.Save(t.Context(), session.Session{
		Token:      testToken,
		DeviceUUID: "7ff1c02e-9b78-4b0b-bf0a-098a5e1e70db",
		CSRFToken:  "csrf-abc",
		Cookies:    map[string]string{"csrftoken": "csrf-abc"},
	})
	require.NoError(t, err)
}

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}
	prev := stdout
	stdout = buf
	t.Cleanup(func() { stdout = prev })

	return buf
}
