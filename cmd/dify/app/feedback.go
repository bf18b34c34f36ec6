package appcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/dify/pkg/client"
	"github.com/papercomputeco/dify/pkg/cliui"
	"github.com/papercomputeco/dify/pkg/setup"
)

const feedbackLongDesc string = `Rate an answer.

The rating is one of like, dislike or revoke; revoke removes an earlier
rating.

Examples:
  dify app feedback 3a9e1c2b-6f70-4d5a-8e21-7b0c4d9f6a13 like
  dify app feedback 3a9e1c2b-6f70-4d5a-8e21-7b0c4d9f6a13 dislike --comment "outdated"`

const feedbackShortDesc string = "Rate an answer"

func newFeedbackCmd() *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:       "feedback <message-id> <like|dislike|revoke>",
		Short:     feedbackShortDesc,
		Long:      feedbackLongDesc,
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"like", "dislike", "revoke"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rating := args[1]
			switch rating {
			case "like", "dislike":
			case "revoke":
				rating = ""
			default:
				return fmt.Errorf("unknown rating %q (use like, dislike or revoke)", args[1])
			}

			rt, err := setup.Load(cmd, setup.CommonFlags...)
			if err != nil {
				return err
			}
			defer rt.Close()

			dc, err := rt.Client()
			if err != nil {
				return err
			}
			user, err := rt.User()
			if err != nil {
				return fmt.Errorf("resolving user: %w", err)
			}

			_, err = dc.FeedbackMessage(cmd.Context(), args[0], client.FeedbackRequest{
				Rating:  rating,
				User:    user,
				Content: comment,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "  %s Feedback saved for %s\n", cliui.SuccessMark, cliui.IDStyle.Render(args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&comment, "comment", "", "Feedback text")

	return cmd
}
