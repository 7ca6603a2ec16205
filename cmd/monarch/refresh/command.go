package refresh

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/erikrubstein/monarch-api/internal/business"
	"github.com/erikrubstein/monarch-api/internal/cmdutils"
	"github.com/erikrubstein/monarch-api/internal/config"
)

func Cmd(buildInfo string) *cobra.Command {
	var (
		timeout  time.Duration
		interval time.Duration
	)

	cmd := cmdutils.CobraCommand(
		"refresh",
		"Refresh all linked accounts",
		"Ask the service to pull fresh data from every linked institution and wait until the refresh settles.",
		buildInfo,
		cmdutils.RunAsJob,
		func(ctx context.Context, cfg *config.Config) error {
			return business.RefreshMain(ctx, cfg, timeout, interval)
		},
	)

	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "how long to wait for the refresh to finish")
	cmd.Flags().DurationVar(&interval, "interval", 10*time.Second, "how often to poll for completion")

	return cmd
}
