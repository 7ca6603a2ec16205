package login

import (
	"github.com/spf13/cobra"

	"github.com/erikrubstein/monarch-api/internal/business"
	"github.com/erikrubstein/monarch-api/internal/cmdutils"
)

func Cmd(buildInfo string) *cobra.Command {
	return cmdutils.CobraCommand(
		"login",
		"Log in and save the session",
		"Log in to Monarch Money, answering a multi-factor challenge when needed, and save the session for the other commands.",
		buildInfo,
		cmdutils.RunAsJob,
		business.LoginMain,
	)
}
