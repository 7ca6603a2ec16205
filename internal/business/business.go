// Package business wires configuration, credentials and the client
// together into the entry points the CLI commands run.
package business

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/erikrubstein/monarch-api/internal/config"
	"github.com/erikrubstein/monarch-api/internal/prompt"
	"github.com/erikrubstein/monarch-api/pkg/monarch"
)

// stdout carries command output. Logs go to stderr, so piping the output
// into jq or a file stays clean. Tests swap this out to capture it.
var stdout io.Writer = os.Stdout

func newClient(cfg *config.Config) (*monarch.Client, error) {
	var httpClient *http.Client
	if cfg.Service.Timeout > 0 {
		httpClient = &http.Client{Timeout: cfg.Service.Timeout}
	}

	client, err := monarch.New(monarch.Config{
		BaseURL:       cfg.Service.BaseURL,
		SessionFile:   cfg.Service.SessionFile,
		HTTPClient:    httpClient,
		MaxAttempts:   cfg.Service.Retry.MaxAttempts,
		RetryInterval: cfg.Service.Retry.Interval,
		Prompter:      prompt.NewTerminal(),
	})
	if err != nil {
		return nil, fmt.Errorf("building the client: %w", err)
	}

	return client, nil
}

func loadSavedSession(ctx context.Context, client *monarch.Client) error {
	err := client.LoadSession(ctx)
	if err != nil {
		return fmt.Errorf("loading the saved session (run the login command first): %w", err)
	}

	return nil
}

func printJSON(v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}

	_, err = fmt.Fprintln(stdout, string(raw))

	return err
}
