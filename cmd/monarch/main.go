package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	slogctx "github.com/veqryn/slog-context"

	"github.com/erikrubstein/monarch-api/cmd/monarch/accounts"
	"github.com/erikrubstein/monarch-api/cmd/monarch/budgets"
	"github.com/erikrubstein/monarch-api/cmd/monarch/cashflow"
	"github.com/erikrubstein/monarch-api/cmd/monarch/login"
	"github.com/erikrubstein/monarch-api/cmd/monarch/logout"
	"github.com/erikrubstein/monarch-api/cmd/monarch/refresh"
	"github.com/erikrubstein/monarch-api/cmd/monarch/transactions"
)

var (
	// BuildInfo will be set by the build system
	BuildInfo = "dev"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Monarch client version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Println(BuildInfo)
		return err
	},
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monarch",
		Short: "Monarch Money client",
		Long:  "Command line client for the Monarch Money personal finance service.",
	}

	cmd.AddCommand(
		versionCmd,
		login.Cmd(BuildInfo),
		logout.Cmd(BuildInfo),
		accounts.Cmd(BuildInfo),
		transactions.Cmd(BuildInfo),
		budgets.Cmd(BuildInfo),
		cashflow.Cmd(BuildInfo),
		refresh.Cmd(BuildInfo),
	)

	return cmd
}

func execute() error {
	ctx, cancelOnSignal := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer cancelOnSignal()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		slogctx.Error(ctx, "failed to run the command", "error", err)
		_, _ = fmt.Fprintln(os.Stderr, err)

		return err
	}

	return nil
}

func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}
