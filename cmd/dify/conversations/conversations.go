// Package conversationscmder provides the conversations command for managing
// the conversations of a chat app.
package conversationscmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/dify/pkg/client"
	"github.com/papercomputeco/dify/pkg/setup"
)

const conversationsLongDesc string = `Manage the conversations of a chat app.

Conversations belong to the end user sending the requests (--user, or the
id generated in the .dify/ directory).

Use subcommands to work with conversations:
  dify conversations list                 List conversations
  dify conversations messages <id>        Show the messages of a conversation
  dify conversations rename <id> [name]   Rename a conversation
  dify conversations delete <id>          Delete a conversation
  dify conversations forget               Forget the conversation --continue resumes

Examples:
  dify conversations list --limit 5
  dify conversations rename 5c1b7f0e-2a44-4d6b-9c3e-0f8a7d2b1e93 --auto`

const conversationsShortDesc string = "Manage chat conversations"

func NewConversationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "conversations",
		Aliases: []string{"conv"},
		Short:   conversationsShortDesc,
		Long:    conversationsLongDesc,
	}

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newMessagesCmd())
	cmd.AddCommand(newRenameCmd())
	cmd.AddCommand(newDeleteCmd())
	cmd.AddCommand(newForgetCmd())

	return cmd
}

// load builds the runtime, client and user every subcommand needs.
func load(cmd *cobra.Command) (*setup.Runtime, *client.Client, string, error) {
	rt, err := setup.Load(cmd, setup.CommonFlags...)
	if err != nil {
		return nil, nil, "", err
	}

	dc, err := rt.Client()
	if err != nil {
		_ = rt.Close()
		return nil, nil, "", err
	}

	user, err := rt.User()
	if err != nil {
		_ = rt.Close()
		return nil, nil, "", fmt.Errorf("resolving user: %w", err)
	}

	return rt, dc, user, nil
}
