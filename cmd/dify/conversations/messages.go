package conversationscmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/dify/pkg/client"
	"github.com/papercomputeco/dify/pkg/cliui"
	"github.com/papercomputeco/dify/pkg/utils"
)

type messagesCommander struct {
	firstID string
	limit   int
	full    bool
}

const messagesLongDesc string = `Show the messages of a conversation, oldest first.

Examples:
  dify conversations messages 5c1b7f0e-2a44-4d6b-9c3e-0f8a7d2b1e93
  dify conversations messages 5c1b7f0e-2a44-4d6b-9c3e-0f8a7d2b1e93 --full`

const messagesShortDesc string = "Show the messages of a conversation"

func newMessagesCmd() *cobra.Command {
	cmder := &messagesCommander{}

	cmd := &cobra.Command{
		Use:   "messages <conversation-id>",
		Short: messagesShortDesc,
		Long:  messagesLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, dc, user, err := load(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			list, err := dc.Messages(cmd.Context(), client.MessagesParams{
				ConversationID: args[0],
				User:           user,
				FirstID:        cmder.firstID,
				Limit:          cmder.limit,
			})
			if err != nil {
				return err
			}

			preview := func(s string) string {
				if cmder.full {
					return s
				}
				return utils.Truncate(s, 72)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out)
			for i, msg := range list.Data {
				fmt.Fprintf(out, "  %s %s %s\n",
					cliui.DimStyle.Render(fmt.Sprintf("%d.", i+1)),
					cliui.KeyStyle.Render("[user]"),
					preview(msg.Query),
				)
				fmt.Fprintf(out, "     %s %s\n",
					cliui.KeyStyle.Render("[assistant]"),
					preview(msg.Answer),
				)
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&cmder.firstID, "first-id", "", "Show messages before this one")
	cmd.Flags().IntVar(&cmder.limit, "limit", 20, "Messages per page")
	cmd.Flags().BoolVar(&cmder.full, "full", false, "Do not truncate messages")

	return cmd
}
