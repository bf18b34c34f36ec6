// Package completecmder provides the complete command for text generation
// apps.
package completecmder

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/dify/pkg/client"
	"github.com/papercomputeco/dify/pkg/cliui"
	"github.com/papercomputeco/dify/pkg/setup"
)

type completeCommander struct {
	markdown  bool
	inputs    map[string]string
	rawInputs string
	files     []string

	rt *setup.Runtime
}

const completeLongDesc string = `Run a text generation app and stream the result.

A text generation app takes all of its input as variables. A positional
argument is sent as the "query" variable, which is what the default prompt
template expects.

Examples:
  dify complete "Summarize the release notes"
  dify complete --input language=French --input text="Good morning"
  dify complete --inputs '{"topic":"caching"}' --markdown`

const completeShortDesc string = "Run a text generation app"

func NewCompleteCmd() *cobra.Command {
	cmder := &completeCommander{}

	cmd := &cobra.Command{
		Use:   "complete [query]",
		Short: completeShortDesc,
		Long:  completeLongDesc,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.rt, err = setup.Load(cmd, append(setup.CommonFlags, setup.StreamFlags...)...)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			defer cmder.rt.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return cmder.run(ctx, cmd, strings.Join(args, " "))
		},
	}

	cmd.Flags().BoolVar(&cmder.markdown, "markdown", false, "Render the result as markdown once complete")
	cmd.Flags().StringToStringVarP(&cmder.inputs, "input", "i", nil, "App input variable as key=value (repeatable)")
	cmd.Flags().StringVar(&cmder.rawInputs, "inputs", "", "App input variables as a JSON object")
	cmd.Flags().StringSliceVarP(&cmder.files, "file", "f", nil, "File path or URL to attach (repeatable)")
	setup.AddStreamFlags(cmd)

	return cmd
}

func (c *completeCommander) run(ctx context.Context, cmd *cobra.Command, query string) error {
	dc, err := c.rt.Client()
	if err != nil {
		return err
	}

	user, err := c.rt.User()
	if err != nil {
		return fmt.Errorf("resolving user: %w", err)
	}

	inputs, err := setup.Inputs(c.inputs, c.rawInputs)
	if err != nil {
		return err
	}
	if query != "" {
		inputs["query"] = query
	}

	files, err := setup.AttachFiles(ctx, dc, c.files, user)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printer := cliui.NewPrinter(out, cmd.ErrOrStderr(), cliui.PrinterOptions{
		Markdown: c.markdown,
		Width:    cliui.Width(out),
	})

	err = dc.StreamCompletion(ctx, client.CompletionRequest{Inputs: inputs, User: user, Files: files}, printer)
	if err != nil {
		return err
	}

	if ctx.Err() != nil && printer.TaskID != "" {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := dc.StopCompletion(stopCtx, printer.TaskID, user); err != nil {
			c.rt.Logger.Warn("could not stop task", "task_id", printer.TaskID, "error", err)
		}
	}

	return printer.Err()
}
