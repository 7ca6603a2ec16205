package logout

import (
	"github.com/spf13/cobra"

	"github.com/erikrubstein/monarch-api/internal/business"
	"github.com/erikrubstein/monarch-api/internal/cmdutils"
)

func Cmd(buildInfo string) *cobra.Command {
	return cmdutils.CobraCommand(
		"logout",
		"Delete the saved session",
		"Delete the saved session so the next command starts from a fresh login.",
		buildInfo,
		cmdutils.RunAsJob,
		business.LogoutMain,
	)
}
