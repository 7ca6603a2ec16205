package business

import (
	"context"
	"fmt"

	slogctx "github.com/veqryn/slog-context"

	"github.com/erikrubstein/monarch-api/internal/config"
	"github.com/erikrubstein/monarch-api/pkg/auth"
)

// LoginMain authenticates against the service and saves the session for
// the other commands. Credentials come from the environment or a .env
// file; anything missing is prompted for on the terminal.
func LoginMain(ctx context.Context, cfg *config.Config) error {
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	creds, err := config.LoadCredentials()
	if err != nil {
		return err
	}

	req := auth.Request{
		Credentials: auth.Credentials{
			Email:     creds.Email,
			Password:  creds.Password,
			MFASecret: creds.MFASecret,
		},
		Persist:    true,
		ReuseSaved: true,
	}

	err = client.InteractiveLogin(ctx, req)
	if err != nil {
		return fmt.Errorf("logging in: %w", err)
	}

	slogctx.Info(ctx, "Login succeeded, session saved",
		"device_uuid", client.Session().DeviceUUID)

	return nil
}

// LogoutMain invalidates and deletes the saved session.
func LogoutMain(ctx context.Context, cfg *config.Config) error {
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	err = client.Logout(ctx)
	if err != nil {
		return fmt.Errorf("logging out: %w", err)
	}

	slogctx.Info(ctx, "Session deleted")

	return nil
}
