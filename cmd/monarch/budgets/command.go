package budgets

import (
	"github.com/spf13/cobra"

	"github.com/erikrubstein/monarch-api/internal/business"
	"github.com/erikrubstein/monarch-api/internal/cmdutils"
)

func Cmd(buildInfo string) *cobra.Command {
	return cmdutils.CobraCommand(
		"budgets",
		"Show budgets",
		"Show the budgets around the current month as JSON.",
		buildInfo,
		cmdutils.RunAsJob,
		business.BudgetsMain,
	)
}
