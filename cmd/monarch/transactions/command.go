package transactions

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/erikrubstein/monarch-api/internal/business"
	"github.com/erikrubstein/monarch-api/internal/cmdutils"
	"github.com/erikrubstein/monarch-api/internal/config"
)

func Cmd(buildInfo string) *cobra.Command {
	var opts business.TransactionsOptions

	cmd := cmdutils.CobraCommand(
		"transactions",
		"List transactions",
		"List a page of transactions as JSON, newest first.",
		buildInfo,
		cmdutils.RunAsJob,
		func(ctx context.Context, cfg *config.Config) error {
			return business.TransactionsMain(ctx, cfg, opts)
		},
	)

	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "page size (default 100)")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "rows to skip")
	cmd.Flags().StringVar(&opts.Search, "search", "", "free-text search")
	cmd.Flags().StringVar(&opts.StartDate, "start-date", "", "YYYY-MM-DD, requires --end-date")
	cmd.Flags().StringVar(&opts.EndDate, "end-date", "", "YYYY-MM-DD, requires --start-date")

	return cmd
}
