package conversationscmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/dify/pkg/cliui"
	"github.com/papercomputeco/dify/pkg/dotdir"
)

const deleteLongDesc string = `Delete a conversation.

If it is the conversation "dify chat --continue" would resume, the next
chat starts a new one.

Examples:
  dify conversations delete 5c1b7f0e-2a44-4d6b-9c3e-0f8a7d2b1e93`

const deleteShortDesc string = "Delete a conversation"

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <conversation-id>",
		Short: deleteShortDesc,
		Long:  deleteLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, dc, user, err := load(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := dc.DeleteConversation(cmd.Context(), args[0], user); err != nil {
				return err
			}

			ddm := dotdir.NewManager()
			app := rt.Config.Client.App
			current, err := ddm.Conversation(app, rt.ConfigDir)
			if err == nil && current == args[0] {
				err = ddm.SaveConversation(app, "", rt.ConfigDir)
			}
			if err != nil {
				rt.Logger.Warn("could not update conversation state", "error", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "  %s Deleted %s\n", cliui.SuccessMark, cliui.IDStyle.Render(args[0]))
			return nil
		},
	}

	return cmd
}
