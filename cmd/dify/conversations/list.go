package conversationscmder

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/dify/pkg/client"
	"github.com/papercomputeco/dify/pkg/cliui"
	"github.com/papercomputeco/dify/pkg/dotdir"
)

type listCommander struct {
	lastID string
	limit  int
	sortBy string
}

const listLongDesc string = `List conversations, most recently updated first.

The conversation "dify chat --continue" would resume is marked.

Examples:
  dify conversations list
  dify conversations list --limit 50 --sort-by created_at`

const listShortDesc string = "List conversations"

func newListCmd() *cobra.Command {
	cmder := &listCommander{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: listShortDesc,
		Long:  listLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, dc, user, err := load(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			list, err := dc.Conversations(cmd.Context(), client.ConversationsParams{
				User:   user,
				LastID: cmder.lastID,
				Limit:  cmder.limit,
				SortBy: cmder.sortBy,
			})
			if err != nil {
				return err
			}

			current, err := dotdir.NewManager().Conversation(rt.Config.Client.App, rt.ConfigDir)
			if err != nil {
				rt.Logger.Warn("could not load conversation state", "error", err)
			}

			out := cmd.OutOrStdout()
			if len(list.Data) == 0 {
				fmt.Fprintf(out, "  %s No conversations.\n", cliui.DimStyle.Render("●"))
				return nil
			}

			fmt.Fprintln(out)
			for _, conv := range list.Data {
				marker := " "
				if conv.ID == current {
					marker = cliui.SuccessMark
				}
				fmt.Fprintf(out, "  %s %s %s %s\n",
					marker,
					cliui.IDStyle.Render(conv.ID),
					cliui.NameStyle.Render(conv.Name),
					cliui.DimStyle.Render(time.Unix(conv.UpdatedAt, 0).Format(time.DateTime)),
				)
			}
			if list.HasMore {
				last := list.Data[len(list.Data)-1].ID
				fmt.Fprintf(out, "\n  %s\n", cliui.DimStyle.Render("More conversations available, use --last-id "+last))
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&cmder.lastID, "last-id", "", "List conversations after this one")
	cmd.Flags().IntVar(&cmder.limit, "limit", 20, "Conversations per page")
	cmd.Flags().StringVar(&cmder.sortBy, "sort-by", "", "Sort field, prefix with - for descending (default -updated_at)")

	return cmd
}
