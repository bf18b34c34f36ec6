package workflowcmder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/dify/pkg/client"
	"github.com/papercomputeco/dify/pkg/cliui"
	"github.com/papercomputeco/dify/pkg/setup"
)

type runCommander struct {
	quiet     bool
	inputs    map[string]string
	rawInputs string
	files     []string

	rt *setup.Runtime
}

const runLongDesc string = `Run the workflow and stream its progress.

Node progress is written to stderr and text chunks to stdout as they arrive.
When the workflow produced no streamed text its outputs are printed as JSON.
Ctrl+C stops the run.

Examples:
  dify workflow run --input url=https://example.com
  dify workflow run --inputs '{"limit":3}' --quiet`

const runShortDesc string = "Run the workflow"

func newRunCmd() *cobra.Command {
	cmder := &runCommander{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: runShortDesc,
		Long:  runLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.rt, err = setup.Load(cmd, append(setup.CommonFlags, setup.StreamFlags...)...)
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer cmder.rt.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return cmder.run(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().BoolVarP(&cmder.quiet, "quiet", "q", false, "Do not show node progress")
	cmd.Flags().StringToStringVarP(&cmder.inputs, "input", "i", nil, "Workflow input variable as key=value (repeatable)")
	cmd.Flags().StringVar(&cmder.rawInputs, "inputs", "", "Workflow input variables as a JSON object")
	cmd.Flags().StringSliceVarP(&cmder.files, "file", "f", nil, "File path or URL to attach (repeatable)")
	setup.AddStreamFlags(cmd)

	return cmd
}

func (c *runCommander) run(ctx context.Context, out, diag io.Writer) error {
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

	files, err := setup.AttachFiles(ctx, dc, c.files, user)
	if err != nil {
		return err
	}

	printer := cliui.NewPrinter(out, diag, cliui.PrinterOptions{Progress: !c.quiet})
	err = dc.StreamWorkflow(ctx, client.WorkflowRunRequest{Inputs: inputs, User: user, Files: files}, printer)
	if err != nil {
		return err
	}

	if ctx.Err() != nil && printer.TaskID != "" {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := dc.StopWorkflow(stopCtx, printer.TaskID, user); err != nil {
			c.rt.Logger.Warn("could not stop task", "task_id", printer.TaskID, "error", err)
		}
	}

	if err := printer.Err(); err != nil {
		return err
	}

	if printer.Answer() == "" && len(printer.Outputs) > 0 {
		data, err := json.MarshalIndent(printer.Outputs, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding outputs: %w", err)
		}
		fmt.Fprintln(out, string(data))
	}

	if printer.WorkflowRunID != "" && !c.quiet {
		fmt.Fprintf(diag, "  %s %s\n", cliui.KeyStyle.Render("Run:"), cliui.IDStyle.Render(printer.WorkflowRunID))
	}
	return nil
}
