// Package chatcmder provides the chat command for talking to chat, agent and
// chatflow apps.
package chatcmder

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/papercomputeco/dify/pkg/client"
	"github.com/papercomputeco/dify/pkg/cliui"
	"github.com/papercomputeco/dify/pkg/dotdir"
	"github.com/papercomputeco/dify/pkg/setup"
	"github.com/papercomputeco/dify/pkg/utils"
)

var (
	userPrompt      = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true).Render("you> ")
	assistantPrompt = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("assistant> ")
)

type chatCommander struct {
	continueLast   bool
	conversationID string
	chatflow       bool
	markdown       bool
	progress       bool
	inputs         map[string]string
	rawInputs      string
	files          []string

	rt     *setup.Runtime
	client *client.Client
	user   string
	out    io.Writer
	diag   io.Writer
}

const chatLongDesc string = `Chat with a chat, agent or chatflow app.

With a message argument a single answer is streamed and the command exits.
Without one an interactive session starts on stdin; type /new to start a new
conversation and /exit or Ctrl+D to quit.

The id of the last conversation is remembered per app (--app) in the .dify/
directory, so --continue picks up where the previous run left off.
Ctrl+C stops the answer being generated.

Examples:
  dify chat "What is the refund policy?"
  dify chat --continue "And for digital goods?"
  dify chat --chatflow --progress --input topic=go
  dify chat --file ./diagram.png "Describe this"`

const chatShortDesc string = "Chat with a chat, agent or chatflow app"

func NewChatCmd() *cobra.Command {
	cmder := &chatCommander{}

	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: chatShortDesc,
		Long:  chatLongDesc,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmder.continueLast && cmder.conversationID != "" {
				return fmt.Errorf("--continue and --conversation cannot be used together")
			}

			var err error
			cmder.rt, err = setup.Load(cmd, append(setup.CommonFlags, setup.StreamFlags...)...)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			defer cmder.rt.Close()

			cmder.out = cmd.OutOrStdout()
			cmder.diag = cmd.ErrOrStderr()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			if len(args) > 0 {
				return cmder.runOnce(ctx, strings.Join(args, " "))
			}
			return cmder.runInteractive(ctx, cmd.InOrStdin())
		},
	}

	cmd.Flags().BoolVarP(&cmder.continueLast, "continue", "c", false, "Continue the last conversation of this app")
	cmd.Flags().StringVar(&cmder.conversationID, "conversation", "", "Continue the given conversation")
	cmd.Flags().BoolVar(&cmder.chatflow, "chatflow", false, "The app is a chatflow; show workflow progress events")
	cmd.Flags().BoolVar(&cmder.markdown, "markdown", false, "Render the answer as markdown once complete")
	cmd.Flags().BoolVar(&cmder.progress, "progress", false, "Show node and agent progress on stderr")
	cmd.Flags().StringToStringVarP(&cmder.inputs, "input", "i", nil, "App input variable as key=value (repeatable)")
	cmd.Flags().StringVar(&cmder.rawInputs, "inputs", "", "App input variables as a JSON object")
	cmd.Flags().StringSliceVarP(&cmder.files, "file", "f", nil, "File path or URL to attach to the first message (repeatable)")
	setup.AddStreamFlags(cmd)

	return cmd
}

func (c *chatCommander) prepare() error {
	var err error
	c.client, err = c.rt.Client()
	if err != nil {
		return err
	}

	c.user, err = c.rt.User()
	if err != nil {
		return fmt.Errorf("resolving user: %w", err)
	}

	if c.continueLast {
		c.conversationID, err = dotdir.NewManager().Conversation(c.rt.Config.Client.App, c.rt.ConfigDir)
		if err != nil {
			return fmt.Errorf("loading conversation state: %w", err)
		}
	}
	return nil
}

func (c *chatCommander) runOnce(ctx context.Context, query string) error {
	if err := c.prepare(); err != nil {
		return err
	}

	req, err := c.request(ctx, query)
	if err != nil {
		return err
	}
	return c.ask(ctx, req)
}

func (c *chatCommander) runInteractive(ctx context.Context, in io.Reader) error {
	if err := c.prepare(); err != nil {
		return err
	}

	fmt.Fprintln(c.out)
	if c.conversationID != "" {
		fmt.Fprintf(c.out, "  %s Continuing %s\n",
			cliui.SuccessMark,
			cliui.IDStyle.Render(utils.Truncate(c.conversationID, 16)),
		)
	} else {
		fmt.Fprintf(c.out, "  %s New conversation\n", cliui.DimStyle.Render("●"))
	}
	fmt.Fprintf(c.out, "  %s %s\n\n", cliui.KeyStyle.Render("App:"), cliui.NameStyle.Render(c.rt.Config.Client.App))
	fmt.Fprintf(c.out, "  %s\n\n", cliui.DimStyle.Render("Type your message and press Enter. /new starts over, /exit or Ctrl+D quits."))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(c.out, userPrompt)
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		switch input {
		case "":
			continue
		case "/exit":
			fmt.Fprintln(c.out)
			return nil
		case "/new":
			c.conversationID = ""
			fmt.Fprintf(c.out, "  %s New conversation\n\n", cliui.DimStyle.Render("●"))
			continue
		}

		req, err := c.request(ctx, input)
		if err != nil {
			return err
		}

		fmt.Fprint(c.out, assistantPrompt)
		if err := c.ask(ctx, req); err != nil {
			if ctx.Err() != nil {
				return err
			}
			fmt.Fprintf(c.diag, "  %s %v\n", cliui.FailMark, err)
			continue
		}
		fmt.Fprintln(c.out)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	fmt.Fprintln(c.out)
	return nil
}

// request builds the next message. Files are only attached to the first one.
func (c *chatCommander) request(ctx context.Context, query string) (client.ChatRequest, error) {
	inputs, err := setup.Inputs(c.inputs, c.rawInputs)
	if err != nil {
		return client.ChatRequest{}, err
	}

	files, err := setup.AttachFiles(ctx, c.client, c.files, c.user)
	if err != nil {
		return client.ChatRequest{}, err
	}
	c.files = nil

	return client.ChatRequest{
		Query:          query,
		Inputs:         inputs,
		User:           c.user,
		ConversationID: c.conversationID,
		Files:          files,
	}, nil
}

// ask streams one answer and remembers the conversation it belongs to.
func (c *chatCommander) ask(ctx context.Context, req client.ChatRequest) error {
	printer := cliui.NewPrinter(c.out, c.diag, cliui.PrinterOptions{
		Markdown: c.markdown,
		Progress: c.progress,
		Width:    cliui.Width(c.out),
	})

	var err error
	if c.chatflow {
		err = c.client.StreamChatflow(ctx, req, printer)
	} else {
		err = c.client.StreamChat(ctx, req, printer)
	}
	if err != nil {
		return err
	}

	if ctx.Err() != nil && printer.TaskID != "" {
		c.stop(printer.TaskID)
	}
	if err := printer.Err(); err != nil {
		return err
	}

	if printer.ConversationID != "" && printer.ConversationID != c.conversationID {
		c.conversationID = printer.ConversationID
		err := dotdir.NewManager().SaveConversation(c.rt.Config.Client.App, c.conversationID, c.rt.ConfigDir)
		if err != nil {
			c.rt.Logger.Warn("could not save conversation state", "error", err)
		}
	}

	if usage := printer.Usage; usage != nil {
		c.rt.Logger.Debug("answer usage",
			"conversation_id", printer.ConversationID,
			"message_id", printer.MessageID,
			"total_tokens", usage.TotalTokens,
			"latency", usage.Latency,
		)
	}
	return nil
}

// stop asks the platform to stop generating after the user interrupted.
func (c *chatCommander) stop(taskID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := c.client.StopChatMessage(ctx, taskID, c.user); err != nil {
		c.rt.Logger.Warn("could not stop task", "task_id", taskID, "error", err)
		return
	}
	fmt.Fprintf(c.diag, "\n  %s Stopped task %s\n", cliui.WarnMark, cliui.IDStyle.Render(taskID))
}
