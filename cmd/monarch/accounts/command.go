package accounts

import (
	"github.com/spf13/cobra"

	"github.com/erikrubstein/monarch-api/internal/business"
	"github.com/erikrubstein/monarch-api/internal/cmdutils"
)

func Cmd(buildInfo string) *cobra.Command {
	return cmdutils.CobraCommand(
		"accounts",
		"List all accounts",
		"List all accounts of the household as JSON.",
		buildInfo,
		cmdutils.RunAsJob,
		business.AccountsMain,
	)
}
