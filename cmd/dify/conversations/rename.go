package conversationscmder

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/dify/pkg/client"
	"github.com/papercomputeco/dify/pkg/cliui"
)

const renameLongDesc string = `Rename a conversation.

With --auto the platform generates a name from the conversation.

Examples:
  dify conversations rename 5c1b7f0e-2a44-4d6b-9c3e-0f8a7d2b1e93 "Refund questions"
  dify conversations rename 5c1b7f0e-2a44-4d6b-9c3e-0f8a7d2b1e93 --auto`

const renameShortDesc string = "Rename a conversation"

func newRenameCmd() *cobra.Command {
	var auto bool

	cmd := &cobra.Command{
		Use:   "rename <conversation-id> [name]",
		Short: renameShortDesc,
		Long:  renameLongDesc,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := client.RenameRequest{AutoGenerate: auto}
			switch {
			case len(args) == 2 && auto:
				return errors.New("give either a name or --auto, not both")
			case len(args) == 2:
				req.Name = args[1]
			case !auto:
				return errors.New("a name or --auto is required")
			}

			rt, dc, user, err := load(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			req.User = user
			conv, err := dc.RenameConversation(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "  %s Renamed %s to %s\n",
				cliui.SuccessMark,
				cliui.IDStyle.Render(conv.ID),
				cliui.NameStyle.Render(conv.Name),
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&auto, "auto", false, "Let the platform generate the name")

	return cmd
}
