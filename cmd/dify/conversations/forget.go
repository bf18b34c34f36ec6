package conversationscmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/dify/pkg/cliui"
	"github.com/papercomputeco/dify/pkg/dotdir"
	"github.com/papercomputeco/dify/pkg/setup"
)

const forgetLongDesc string = `Forget the conversation "dify chat --continue" resumes.

Only local state in the .dify/ directory changes; the conversation stays on
the platform. With --all the saved conversation of every app is forgotten.

Examples:
  dify conversations forget
  dify conversations forget --app support-bot
  dify conversations forget --all`

const forgetShortDesc string = "Forget the saved conversation"

func newForgetCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "forget",
		Short: forgetShortDesc,
		Long:  forgetLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup.Load(cmd, setup.CommonFlags...)
			if err != nil {
				return err
			}
			defer rt.Close()

			ddm := dotdir.NewManager()
			if all {
				if err := ddm.ClearConversations(rt.ConfigDir); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %s Forgot saved conversations of every app\n", cliui.SuccessMark)
				return nil
			}

			app := rt.Config.Client.App
			if err := ddm.SaveConversation(app, "", rt.ConfigDir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s Forgot saved conversation of %s\n", cliui.SuccessMark, cliui.IDStyle.Render(app))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Forget the saved conversation of every app")

	return cmd
}
