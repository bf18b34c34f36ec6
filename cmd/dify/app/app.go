// Package appcmder provides the app command for inspecting the configured app
// and rating its answers.
package appcmder

import (
	"github.com/spf13/cobra"
)

const appLongDesc string = `Inspect the app behind the configured API key.

Use subcommands to show app details or rate answers:
  dify app info                            Show name, mode and site settings
  dify app parameters                      Show the input variables and features
  dify app feedback <message-id> <rating>  Rate an answer (like, dislike, revoke)

Examples:
  dify app info
  dify app feedback 3a9e1c2b-6f70-4d5a-8e21-7b0c4d9f6a13 like`

const appShortDesc string = "Inspect the configured app"

func NewAppCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "app",
		Short: appShortDesc,
		Long:  appLongDesc,
	}

	cmd.AddCommand(newInfoCmd())
	cmd.AddCommand(newParametersCmd())
	cmd.AddCommand(newFeedbackCmd())

	return cmd
}
