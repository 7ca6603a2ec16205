package business

import (
	"context"
	"fmt"
	"time"

	slogctx "github.com/veqryn/slog-context"

	"github.com/erikrubstein/monarch-api/internal/config"
)

// RefreshMain asks the service to pull fresh data from all linked
// institutions and waits until the refresh settles or the timeout runs
// out. Zero timeout and interval mean the client's defaults.
func RefreshMain(ctx context.Context, cfg *config.Config, timeout, interval time.Duration) error {
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	if err := loadSavedSession(ctx, client); err != nil {
		return err
	}

	slogctx.Info(ctx, "Requesting an accounts refresh")

	err = client.RequestAccountsRefreshAndWait(ctx, nil, timeout, interval)
	if err != nil {
		return fmt.Errorf("refreshing accounts: %w", err)
	}

	slogctx.Info(ctx, "All accounts refreshed")

	return nil
}
