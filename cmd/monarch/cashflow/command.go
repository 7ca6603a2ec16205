package cashflow

import (
	"github.com/spf13/cobra"

	"github.com/erikrubstein/monarch-api/internal/business"
	"github.com/erikrubstein/monarch-api/internal/cmdutils"
)

func Cmd(buildInfo string) *cobra.Command {
	return cmdutils.CobraCommand(
		"cashflow",
		"Show the cashflow summary",
		"Show the cashflow summary of the current month as JSON.",
		buildInfo,
		cmdutils.RunAsJob,
		business.CashflowMain,
	)
}
